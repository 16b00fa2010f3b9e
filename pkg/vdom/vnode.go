package vdom

import "reflect"

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Flag is the classification bitmask derived at construction time from the
// node's type and children shape.
type Flag uint8

const (
	FlagElement Flag = 1 << iota
	FlagComponent
	FlagTextChildren
	FlagArrayChildren
)

// Props holds attributes and event handlers.
type Props map[string]any

// Component is anything that can render to a VNode. Components should be
// pointer values: the reconciler compares them by identity when deciding
// whether two component nodes are the same type.
type Component interface {
	Render() *VNode
}

// VNode is one virtual tree node.
type VNode struct {
	Kind  VKind
	Flags Flag

	Tag  string    // Element tag name (KindElement)
	Comp Component // Component descriptor (KindComponent)

	Props    Props
	Children []*VNode // List children (FlagArrayChildren)
	Text     string   // Text content (KindText) or text children (FlagTextChildren)
	Key      string   // Reconciliation key, "" when absent

	// El is the bound platform node once mounted. Copied from the old node
	// to the new node when the two are diffed as equivalent.
	El any

	// Instance is the bound component instance for KindComponent nodes.
	// Held as any to avoid an import cycle with the component runtime.
	Instance any
}

// HasFlag reports whether all bits of f are set.
func (n *VNode) HasFlag(f Flag) bool {
	return n.Flags&f == f
}

// SameType reports whether two nodes are "the same type" for diffing:
// equal type discriminator and equal key. This is the sole identity test
// the reconciler uses to decide reuse vs replace.
func SameType(a, b *VNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Key != b.Key {
		return false
	}
	switch a.Kind {
	case KindElement:
		return a.Tag == b.Tag
	case KindComponent:
		return sameComponent(a.Comp, b.Comp)
	default:
		return true
	}
}

// sameComponent compares component descriptors by identity. Pointer
// components of the same type compare by address; anything else falls back
// to a safe comparison that never panics on non-comparable values. The type
// check must come first: all pointers to zero-size values share one address,
// so the address alone cannot tell two component types apart.
func sameComponent(a, b Component) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)
	if av.Type() != bv.Type() {
		return false
	}
	if av.Kind() == reflect.Pointer {
		return av.Pointer() == bv.Pointer()
	}
	if !av.Type().Comparable() {
		return false
	}
	return a == b
}
