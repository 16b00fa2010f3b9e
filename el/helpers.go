package el

import "github.com/quartzui/quartz/pkg/vdom"

// Re-exports of the vdom building blocks views commonly need alongside the
// element constructors.

// Text creates a text node.
var Text = vdom.NewText

// Textf creates a formatted text node.
var Textf = vdom.NewTextf

// Fragment groups children without a wrapping element.
var Fragment = vdom.NewFragment

// If returns the node if the condition holds, nil otherwise.
var If = vdom.If

// IfElse selects between two nodes.
var IfElse = vdom.IfElse

// Map builds a child list from a slice, dropping nil results.
func Map[T any](items []T, fn func(item T, index int) *vdom.VNode) []*vdom.VNode {
	return vdom.Range(items, fn)
}
