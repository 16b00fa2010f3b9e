// Package dom provides an in-memory document backend for Quartz.
//
// Document implements renderer.Adapter: the reconciler's adapter calls
// build a server-side node tree that can be serialized to HTML or mirrored
// to a remote client as a stream of protocol ops. Event-handler props
// ("onClick" and friends) are stored on the node and invoked through
// Dispatch, which is how the live server routes client events back into
// component state.
package dom

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/quartzui/quartz/pkg/protocol"
	"github.com/quartzui/quartz/pkg/renderer"
)

// NodeKind discriminates document nodes.
type NodeKind uint8

const (
	ElementNode NodeKind = iota
	TextNode
)

// Node is one document node.
type Node struct {
	ID       uint64
	Kind     NodeKind
	Tag      string
	Text     string
	Attrs    map[string]any
	Children []*Node
	Parent   *Node

	handlers map[string]func()
}

// Document is an in-memory node tree. Body is the mount container.
type Document struct {
	mu     sync.Mutex
	nextID uint64
	nodes  map[uint64]*Node
	onOp   func(protocol.Op)

	// Body is the container applications mount into.
	Body *Node
}

// Option configures a Document.
type Option func(*Document)

// WithRecorder registers a callback receiving one protocol op per adapter
// mutation, in application order. Used by live sessions to mirror the
// document to a client.
func WithRecorder(fn func(protocol.Op)) Option {
	return func(d *Document) {
		d.onOp = fn
	}
}

// NewDocument creates an empty document.
func NewDocument(opts ...Option) *Document {
	d := &Document{
		nodes: make(map[uint64]*Node),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.Body = d.newNode(ElementNode)
	d.Body.Tag = "body"
	return d
}

func (d *Document) newNode(kind NodeKind) *Node {
	d.nextID++
	n := &Node{
		ID:   d.nextID,
		Kind: kind,
	}
	d.nodes[n.ID] = n
	return n
}

func (d *Document) record(op protocol.Op) {
	if d.onOp != nil {
		d.onOp(op)
	}
}

// Lookup returns the node with the given ID, or nil.
func (d *Document) Lookup(id uint64) *Node {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.nodes[id]
}

// CreateElement implements renderer.Adapter.
func (d *Document) CreateElement(tag string) renderer.Node {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := d.newNode(ElementNode)
	n.Tag = tag
	d.record(protocol.Op{Code: protocol.OpCreateElement, NodeID: n.ID, Tag: tag})
	return n
}

// CreateText implements renderer.Adapter.
func (d *Document) CreateText(content string) renderer.Node {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := d.newNode(TextNode)
	n.Text = content
	d.record(protocol.Op{Code: protocol.OpCreateText, NodeID: n.ID, Value: content})
	return n
}

// SetText implements renderer.Adapter.
func (d *Document) SetText(node renderer.Node, content string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := node.(*Node)
	n.Text = content
	d.record(protocol.Op{Code: protocol.OpSetText, NodeID: n.ID, Value: content})
}

// SetElementText implements renderer.Adapter. It drops any existing
// children and replaces them with raw text.
func (d *Document) SetElementText(el renderer.Node, content string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := el.(*Node)
	for _, c := range n.Children {
		d.detach(c)
	}
	n.Children = nil
	n.Text = content
	d.record(protocol.Op{Code: protocol.OpSetElementText, NodeID: n.ID, Value: content})
}

// Insert implements renderer.Adapter. A nil anchor appends.
func (d *Document) Insert(node, parent, anchor renderer.Node) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := node.(*Node)
	p := parent.(*Node)

	if n.Parent != nil {
		n.Parent.removeChild(n)
	}
	n.Parent = p

	op := protocol.Op{Code: protocol.OpInsert, NodeID: n.ID, ParentID: p.ID}
	if anchor != nil {
		if a, ok := anchor.(*Node); ok && a != nil {
			if idx := p.childIndex(a); idx >= 0 {
				p.Children = append(p.Children[:idx], append([]*Node{n}, p.Children[idx:]...)...)
				op.AnchorID = a.ID
				d.record(op)
				return
			}
		}
	}
	p.Children = append(p.Children, n)
	d.record(op)
}

// Remove implements renderer.Adapter. The node and its subtree are
// forgotten by the document.
func (d *Document) Remove(node renderer.Node) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := node.(*Node)
	if n.Parent != nil {
		n.Parent.removeChild(n)
		n.Parent = nil
	}
	d.detach(n)
	d.record(protocol.Op{Code: protocol.OpRemove, NodeID: n.ID})
}

// PatchProp implements renderer.Adapter. Function-valued props are event
// handlers keyed by their "onXxx" name; everything else is an attribute.
// A nil next removes the prop.
func (d *Document) PatchProp(el renderer.Node, key string, prev, next any) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := el.(*Node)

	if isEventKey(key) {
		event := eventName(key)
		if next == nil {
			delete(n.handlers, event)
			d.record(protocol.Op{Code: protocol.OpUnlisten, NodeID: n.ID, Key: event})
			return
		}
		handler, ok := next.(func())
		if !ok {
			return
		}
		if n.handlers == nil {
			n.handlers = make(map[string]func())
		}
		n.handlers[event] = handler
		if prev == nil {
			d.record(protocol.Op{Code: protocol.OpListen, NodeID: n.ID, Key: event})
		}
		return
	}

	if next == nil {
		delete(n.Attrs, key)
		d.record(protocol.Op{Code: protocol.OpRemoveAttr, NodeID: n.ID, Key: key})
		return
	}
	if n.Attrs == nil {
		n.Attrs = make(map[string]any)
	}
	n.Attrs[key] = next
	d.record(protocol.Op{Code: protocol.OpSetAttr, NodeID: n.ID, Key: key, Value: attrString(next)})
}

// Dispatch invokes the named event handler on the node with the given ID.
func (d *Document) Dispatch(nodeID uint64, event string) error {
	d.mu.Lock()
	n := d.nodes[nodeID]
	var handler func()
	if n != nil {
		handler = n.handlers[event]
	}
	d.mu.Unlock()

	if n == nil {
		return fmt.Errorf("dom: dispatch to unknown node %d", nodeID)
	}
	if handler == nil {
		return fmt.Errorf("dom: node %d has no %q handler", nodeID, event)
	}
	handler()
	return nil
}

// detach forgets a node and its subtree.
func (d *Document) detach(n *Node) {
	delete(d.nodes, n.ID)
	for _, c := range n.Children {
		d.detach(c)
	}
}

func (n *Node) removeChild(child *Node) {
	if idx := n.childIndex(child); idx >= 0 {
		n.Children = append(n.Children[:idx], n.Children[idx+1:]...)
	}
}

func (n *Node) childIndex(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

func isEventKey(key string) bool {
	return len(key) > 2 && strings.HasPrefix(key, "on")
}

func eventName(key string) string {
	return strings.ToLower(key[2:])
}

func attrString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(val)
	}
}

func sortedAttrKeys(attrs map[string]any) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
