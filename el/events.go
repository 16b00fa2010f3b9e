package el

import (
	"strings"

	"github.com/quartzui/quartz/pkg/vdom"
)

// On builds an event-handler prop for the named event ("click" becomes
// the "onClick" prop).
func On(event string, fn func()) vdom.Props {
	if event == "" {
		return vdom.Props{}
	}
	key := "on" + strings.ToUpper(event[:1]) + event[1:]
	return vdom.Props{key: fn}
}

func OnClick(fn func()) vdom.Props  { return On("click", fn) }
func OnInput(fn func()) vdom.Props  { return On("input", fn) }
func OnChange(fn func()) vdom.Props { return On("change", fn) }
func OnSubmit(fn func()) vdom.Props { return On("submit", fn) }
func OnFocus(fn func()) vdom.Props  { return On("focus", fn) }
func OnBlur(fn func()) vdom.Props   { return On("blur", fn) }
