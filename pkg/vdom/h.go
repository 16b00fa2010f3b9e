package vdom

import (
	"fmt"
	"log/slog"
)

// H constructs a virtual node.
//
// The type argument selects the variant: a string builds an element, a
// Component builds a component node. Arguments after the type follow the
// convenience overload set:
//
//	H(typ)                    // no props, no children
//	H(typ, props)             // props only (second arg is a Props map)
//	H(typ, children)          // children only (string, *VNode, or []*VNode)
//	H(typ, props, children)   // positional
//
// A two-argument call treats a non-list map argument as props and anything
// else as children. A three-argument call is always positional; pass nil
// props when there are none.
func H(typ any, args ...any) *VNode {
	n := &VNode{}

	switch t := typ.(type) {
	case string:
		n.Kind = KindElement
		n.Flags |= FlagElement
		n.Tag = t
	case Component:
		n.Kind = KindComponent
		n.Flags |= FlagComponent
		n.Comp = t
	default:
		slog.Warn("vdom: unsupported node type, rendering empty fragment",
			"type", fmt.Sprintf("%T", typ))
		n.Kind = KindFragment
		return n
	}

	switch len(args) {
	case 0:
	case 1:
		if props, ok := asProps(args[0]); ok {
			n.setProps(props)
		} else {
			n.setChildren(args[0])
		}
	default:
		if props, ok := asProps(args[0]); ok {
			n.setProps(props)
		}
		n.setChildren(args[1])
	}

	return n
}

// NewText creates a text marker node.
func NewText(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// NewTextf creates a formatted text marker node.
func NewTextf(format string, args ...any) *VNode {
	return NewText(fmt.Sprintf(format, args...))
}

// NewFragment creates a fragment marker node grouping children without a
// wrapping platform node.
func NewFragment(children ...*VNode) *VNode {
	n := &VNode{
		Kind:  KindFragment,
		Flags: FlagArrayChildren,
	}
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
	return n
}

func asProps(v any) (Props, bool) {
	switch p := v.(type) {
	case Props:
		return p, true
	case map[string]any:
		return Props(p), true
	case nil:
		return nil, true
	default:
		return nil, false
	}
}

func (n *VNode) setProps(props Props) {
	n.Props = props
	if props == nil {
		return
	}
	if k, ok := props["key"]; ok && k != nil {
		n.Key = fmt.Sprint(k)
	}
}

func (n *VNode) setChildren(children any) {
	switch c := children.(type) {
	case nil:
	case string:
		n.Text = c
		n.Flags |= FlagTextChildren
	case *VNode:
		if c != nil {
			n.Children = []*VNode{c}
			n.Flags |= FlagArrayChildren
		}
	case []*VNode:
		for _, child := range c {
			if child != nil {
				n.Children = append(n.Children, child)
			}
		}
		n.Flags |= FlagArrayChildren
	default:
		slog.Warn("vdom: unsupported children shape ignored",
			"type", fmt.Sprintf("%T", children))
	}
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// IfElse returns the first node if condition is true, the second otherwise.
func IfElse(condition bool, ifTrue, ifFalse *VNode) *VNode {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// Range maps a slice to VNodes, dropping nils.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	result := make([]*VNode, 0, len(items))
	for i, item := range items {
		if node := fn(item, i); node != nil {
			result = append(result, node)
		}
	}
	return result
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &funcComponent{render: render}
}

type funcComponent struct {
	render func() *VNode
}

func (f *funcComponent) Render() *VNode {
	return f.render()
}
