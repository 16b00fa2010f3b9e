package dom

import "strings"

// voidTags are elements serialized without a closing tag.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// HTML serializes the document body's content.
func (d *Document) HTML() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var buf strings.Builder
	for _, c := range d.Body.Children {
		writeNode(&buf, c)
	}
	return buf.String()
}

func writeNode(buf *strings.Builder, n *Node) {
	if n.Kind == TextNode {
		buf.WriteString(escapeHTML(n.Text))
		return
	}

	buf.WriteByte('<')
	buf.WriteString(n.Tag)
	for _, key := range sortedAttrKeys(n.Attrs) {
		buf.WriteByte(' ')
		buf.WriteString(key)
		buf.WriteString(`="`)
		buf.WriteString(escapeAttr(attrString(n.Attrs[key])))
		buf.WriteByte('"')
	}
	buf.WriteByte('>')

	if voidTags[n.Tag] {
		return
	}

	if len(n.Children) == 0 && n.Text != "" {
		buf.WriteString(escapeHTML(n.Text))
	}
	for _, c := range n.Children {
		writeNode(buf, c)
	}

	buf.WriteString("</")
	buf.WriteString(n.Tag)
	buf.WriteByte('>')
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

// escapeAttr escapes text for attribute values, additionally encoding
// whitespace that could break attribute parsing.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
