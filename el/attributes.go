package el

import (
	"strings"

	"github.com/quartzui/quartz/pkg/vdom"
)

// Class builds a class prop from one or more class names.
func Class(classes ...string) vdom.Props {
	return vdom.Props{"class": strings.Join(classes, " ")}
}

// ID builds an id prop.
func ID(id string) vdom.Props {
	return vdom.Props{"id": id}
}

// Key builds a reconciliation-key prop.
func Key(k any) vdom.Props {
	return vdom.Props{"key": k}
}

// Style builds an inline style prop.
func Style(style string) vdom.Props {
	return vdom.Props{"style": style}
}

// Href builds an href prop.
func Href(url string) vdom.Props {
	return vdom.Props{"href": url}
}

// Src builds a src prop.
func Src(url string) vdom.Props {
	return vdom.Props{"src": url}
}

// Attr builds a single arbitrary prop.
func Attr(key string, value any) vdom.Props {
	return vdom.Props{key: value}
}

// Attrs merges prop maps left to right; later maps win on conflicts.
func Attrs(maps ...vdom.Props) vdom.Props {
	merged := make(vdom.Props)
	for _, m := range maps {
		for k, v := range m {
			merged[k] = v
		}
	}
	return merged
}
