// Package vdom provides the virtual node tree for Quartz.
//
// A VNode is an immutable-per-render description of one unit of renderable
// structure: an element, a text run, a fragment, or a component. Trees are
// constructed fresh on every render pass; the only mutable bridge between
// successive trees is the platform-node binding copied forward when two
// nodes are diffed as equivalent.
//
// # Construction
//
// H builds element and component nodes and resolves the two-argument
// ambiguity between props and children:
//
//	vdom.H("div", vdom.Props{"id": "app"}, "Hello")
//	vdom.H("ul", items)          // children, no props
//	vdom.H("span", "text only")  // text children, no props
//	vdom.H(myComponent)
//
// NewText and NewFragment build the two marker kinds.
//
// # Classification
//
// Each node carries a VKind discriminator plus a Flags bitmask fixed at
// construction (element vs component, text vs list children). The
// reconciler branches on these bits; it never re-inspects raw types.
package vdom
