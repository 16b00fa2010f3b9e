// Package el provides the HTML element DSL for Quartz.
//
// It wraps vdom.H in per-tag constructors and small prop helpers so views
// read as markup:
//
//	el.Div(el.Class("card"), []*vdom.VNode{
//	    el.H1("Title"),
//	    el.Button(el.OnClick(save), "Save"),
//	})
//
// Constructors follow the vdom.H overload set: an optional props argument
// followed by optional children (string, *VNode, or []*VNode).
package el
