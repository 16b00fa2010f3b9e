package renderer

// Node is a platform node handle. The renderer never inspects it; it only
// threads handles between adapter calls and virtual-node bindings.
type Node = any

// Adapter is the platform backend contract consumed by the renderer. A
// backend implements primitive create/insert/remove/patch operations for a
// concrete rendering target (an in-memory document, a browser bridge, a
// test recorder).
type Adapter interface {
	// CreateElement creates an element node for the given tag.
	CreateElement(tag string) Node

	// CreateText creates a standalone text node.
	CreateText(content string) Node

	// SetText replaces the content of a text node.
	SetText(node Node, content string)

	// SetElementText replaces an element's children with raw text.
	SetElementText(el Node, content string)

	// Insert places node under parent, before anchor. A nil anchor means
	// append at the end.
	Insert(node, parent, anchor Node)

	// Remove detaches node from its parent.
	Remove(node Node)

	// PatchProp applies one prop change. A nil next signals removal.
	PatchProp(el Node, key string, prev, next any)
}
