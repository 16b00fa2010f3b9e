package vtest

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/quartzui/quartz/pkg/dom"
	"github.com/quartzui/quartz/pkg/protocol"
	"github.com/quartzui/quartz/pkg/renderer"
	"github.com/quartzui/quartz/pkg/scheduler"
	"github.com/quartzui/quartz/pkg/vdom"
)

// Harness is a mounted component under test: its own document, queue and
// renderer, with every document mutation recorded as a protocol op.
type Harness struct {
	Doc   *dom.Document
	Queue *scheduler.Queue

	rend *renderer.Renderer
	root *vdom.VNode

	mu  sync.Mutex
	ops []protocol.Op
}

// Mount renders the component into a fresh document and flushes the
// initial update queue.
func Mount(c vdom.Component) *Harness {
	h := &Harness{}
	h.Doc = dom.NewDocument(dom.WithRecorder(func(op protocol.Op) {
		h.mu.Lock()
		h.ops = append(h.ops, op)
		h.mu.Unlock()
	}))
	h.Queue = scheduler.NewQueue()
	h.rend = renderer.New(h.Doc, renderer.WithQueue(h.Queue))

	h.root = vdom.H(c)
	h.rend.Render(h.root, h.Doc.Body)
	h.Queue.Flush()
	return h
}

// HTML returns the current serialized document body.
func (h *Harness) HTML() string {
	return h.Doc.HTML()
}

// Flush drains pending component updates.
func (h *Harness) Flush() {
	h.Queue.Flush()
}

// Ops returns every protocol op recorded so far, in application order.
func (h *Harness) Ops() []protocol.Op {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]protocol.Op(nil), h.ops...)
}

// Trigger dispatches the named event to the last node that registered a
// listener for it, then flushes updates.
func (h *Harness) Trigger(event string) error {
	var nodeID uint64
	h.mu.Lock()
	for _, op := range h.ops {
		switch op.Code {
		case protocol.OpListen:
			if op.Key == event {
				nodeID = op.NodeID
			}
		case protocol.OpUnlisten:
			if op.Key == event && op.NodeID == nodeID {
				nodeID = 0
			}
		}
	}
	h.mu.Unlock()

	if nodeID == 0 {
		return fmt.Errorf("vtest: no %q listener registered", event)
	}
	if err := h.Doc.Dispatch(nodeID, event); err != nil {
		return err
	}
	h.Queue.Flush()
	return nil
}

// Unmount tears the component down, disposing its reactive binding.
func (h *Harness) Unmount() {
	h.rend.Unmount(h.root)
}

// RenderToString renders a virtual tree to HTML without keeping any state.
func RenderToString(node *vdom.VNode) string {
	d := dom.NewDocument()
	q := scheduler.NewQueue()
	r := renderer.New(d, renderer.WithQueue(q))

	r.Render(node, d.Body)
	q.Flush()
	html := d.HTML()
	r.Unmount(node)
	return html
}

// ExpectContains fails the test when the HTML lacks the substring.
func ExpectContains(t *testing.T, html, want string) {
	t.Helper()
	if !strings.Contains(html, want) {
		t.Errorf("expected HTML to contain %q, got:\n%s", want, html)
	}
}

// ExpectNotContains fails the test when the HTML includes the substring.
func ExpectNotContains(t *testing.T, html, unwanted string) {
	t.Helper()
	if strings.Contains(html, unwanted) {
		t.Errorf("expected HTML to not contain %q, got:\n%s", unwanted, html)
	}
}
