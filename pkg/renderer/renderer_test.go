package renderer_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/quartzui/quartz/pkg/reactive"
	"github.com/quartzui/quartz/pkg/renderer"
	"github.com/quartzui/quartz/pkg/runtime"
	"github.com/quartzui/quartz/pkg/scheduler"
	"github.com/quartzui/quartz/pkg/vdom"
)

// fakeNode is one node in the recording test backend.
type fakeNode struct {
	id       int
	tag      string
	text     string
	props    map[string]any
	children []*fakeNode
	parent   *fakeNode
}

// fakeHost implements renderer.Adapter over an in-memory tree, recording
// every call so tests can assert on exactly which operations ran.
type fakeHost struct {
	nextID int
	calls  []string
	root   *fakeNode
}

func newFakeHost() *fakeHost {
	h := &fakeHost{}
	h.root = h.newNode("root")
	return h
}

func (h *fakeHost) newNode(tag string) *fakeNode {
	h.nextID++
	return &fakeNode{id: h.nextID, tag: tag}
}

func (h *fakeHost) log(format string, args ...any) {
	h.calls = append(h.calls, fmt.Sprintf(format, args...))
}

func (h *fakeHost) CreateElement(tag string) renderer.Node {
	n := h.newNode(tag)
	h.log("createElement(%s)", tag)
	return n
}

func (h *fakeHost) CreateText(content string) renderer.Node {
	n := h.newNode("#text")
	n.text = content
	h.log("createText(%q)", content)
	return n
}

func (h *fakeHost) SetText(node renderer.Node, content string) {
	n := node.(*fakeNode)
	n.text = content
	h.log("setText(%q)", content)
}

func (h *fakeHost) SetElementText(el renderer.Node, content string) {
	n := el.(*fakeNode)
	n.children = nil
	n.text = content
	h.log("setElementText(%s, %q)", n.tag, content)
}

func (h *fakeHost) Insert(node, parent, anchor renderer.Node) {
	n := node.(*fakeNode)
	p := parent.(*fakeNode)

	if n.parent != nil {
		n.parent.removeChild(n)
	}
	n.parent = p

	if anchor != nil {
		if a, ok := anchor.(*fakeNode); ok && a != nil {
			for i, c := range p.children {
				if c == a {
					p.children = append(p.children[:i], append([]*fakeNode{n}, p.children[i:]...)...)
					h.log("insert(%s before %s)", n.label(), a.label())
					return
				}
			}
		}
	}
	p.children = append(p.children, n)
	h.log("insert(%s)", n.label())
}

func (h *fakeHost) Remove(node renderer.Node) {
	n := node.(*fakeNode)
	if n.parent != nil {
		n.parent.removeChild(n)
		n.parent = nil
	}
	h.log("remove(%s)", n.label())
}

func (h *fakeHost) PatchProp(el renderer.Node, key string, prev, next any) {
	n := el.(*fakeNode)
	if next == nil {
		delete(n.props, key)
		h.log("removeProp(%s.%s)", n.tag, key)
		return
	}
	if n.props == nil {
		n.props = make(map[string]any)
	}
	n.props[key] = next
	h.log("setProp(%s.%s)", n.tag, key)
}

func (n *fakeNode) removeChild(child *fakeNode) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *fakeNode) label() string {
	if n.tag == "#text" {
		return fmt.Sprintf("%q", n.text)
	}
	return n.tag
}

// dump serializes the subtree for structural assertions.
func (n *fakeNode) dump() string {
	if n.tag == "#text" {
		return n.text
	}
	var b strings.Builder
	b.WriteString("<" + n.tag + ">")
	b.WriteString(n.text)
	for _, c := range n.children {
		b.WriteString(c.dump())
	}
	b.WriteString("</" + n.tag + ">")
	return b.String()
}

func (h *fakeHost) dumpRoot() string {
	var b strings.Builder
	for _, c := range h.root.children {
		b.WriteString(c.dump())
	}
	return b.String()
}

func (h *fakeHost) reset() {
	h.calls = nil
}

func newTestRenderer(h *fakeHost) (*renderer.Renderer, *scheduler.Queue) {
	q := scheduler.NewQueue()
	return renderer.New(h, renderer.WithQueue(q)), q
}

func TestRenderer_MountElement(t *testing.T) {
	h := newFakeHost()
	r, _ := newTestRenderer(h)

	r.Render(vdom.H("div", vdom.Props{"class": "box"}, []*vdom.VNode{
		vdom.H("span", "hi"),
		vdom.NewText("there"),
	}), h.root)

	want := `<div><span>hi</span>there</div>`
	if got := h.dumpRoot(); got != want {
		t.Errorf("tree mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestRenderer_PatchText(t *testing.T) {
	h := newFakeHost()
	r, _ := newTestRenderer(h)

	prev := vdom.NewText("a")
	r.Render(prev, h.root)

	h.reset()
	next := vdom.NewText("b")
	r.Patch(prev, next, h.root)

	if len(h.calls) != 1 || h.calls[0] != `setText("b")` {
		t.Errorf("expected a single setText, got %v", h.calls)
	}

	// Identical text patches to nothing.
	h.reset()
	r.Patch(next, vdom.NewText("b"), h.root)
	if len(h.calls) != 0 {
		t.Errorf("expected no calls for identical text, got %v", h.calls)
	}
}

func TestRenderer_PropConvergence(t *testing.T) {
	h := newFakeHost()
	r, _ := newTestRenderer(h)

	prev := vdom.H("div", vdom.Props{"class": "a", "id": "x", "title": "t"})
	r.Render(prev, h.root)

	h.reset()
	next := vdom.H("div", vdom.Props{"class": "b", "id": "x", "role": "note"})
	r.Patch(prev, next, h.root)

	want := []string{
		"setProp(div.class)",    // changed
		"setProp(div.role)",     // added
		"removeProp(div.title)", // removed
	}
	if len(h.calls) != len(want) {
		t.Fatalf("expected calls %v, got %v", want, h.calls)
	}
	for i := range want {
		if h.calls[i] != want[i] {
			t.Errorf("call %d: expected %s, got %s", i, want[i], h.calls[i])
		}
	}
}

func TestRenderer_ReplaceOnTagChange(t *testing.T) {
	h := newFakeHost()
	r, _ := newTestRenderer(h)

	prev := vdom.H("div", "a")
	r.Render(prev, h.root)

	next := vdom.H("span", "a")
	r.Patch(prev, next, h.root)

	if got := h.dumpRoot(); got != "<span>a</span>" {
		t.Errorf("expected replacement, got %s", got)
	}
}

func TestRenderer_ChildrenTextToArray(t *testing.T) {
	h := newFakeHost()
	r, _ := newTestRenderer(h)

	prev := vdom.H("div", "plain")
	r.Render(prev, h.root)

	next := vdom.H("div", []*vdom.VNode{vdom.H("span", "a"), vdom.H("span", "b")})
	r.Patch(prev, next, h.root)

	if got := h.dumpRoot(); got != "<div><span>a</span><span>b</span></div>" {
		t.Errorf("expected array children, got %s", got)
	}
}

func TestRenderer_ChildrenArrayToText(t *testing.T) {
	h := newFakeHost()
	r, _ := newTestRenderer(h)

	prev := vdom.H("div", []*vdom.VNode{vdom.H("span", "a"), vdom.H("span", "b")})
	r.Render(prev, h.root)

	next := vdom.H("div", "flat")
	r.Patch(prev, next, h.root)

	if got := h.dumpRoot(); got != "<div>flat</div>" {
		t.Errorf("expected text children, got %s", got)
	}
}

func TestRenderer_ChildrenRemoved(t *testing.T) {
	h := newFakeHost()
	r, _ := newTestRenderer(h)

	prev := vdom.H("div", []*vdom.VNode{vdom.H("span", "a")})
	r.Render(prev, h.root)

	next := vdom.H("div")
	r.Patch(prev, next, h.root)

	if got := h.dumpRoot(); got != "<div></div>" {
		t.Errorf("expected empty element, got %s", got)
	}
}

func keyed(tag string, keys ...string) *vdom.VNode {
	children := make([]*vdom.VNode, len(keys))
	for i, k := range keys {
		children[i] = vdom.H("li", vdom.Props{"key": k}, k)
	}
	return vdom.H(tag, nil, children)
}

func TestRenderer_KeyedRemoveMiddle(t *testing.T) {
	h := newFakeHost()
	r, _ := newTestRenderer(h)

	prev := keyed("ul", "a", "b", "c")
	r.Render(prev, h.root)

	h.reset()
	next := keyed("ul", "a", "c")
	r.Patch(prev, next, h.root)

	if got := h.dumpRoot(); got != "<ul><li>a</li><li>c</li></ul>" {
		t.Fatalf("expected [a c], got %s", got)
	}
	// Prefix a and suffix c are reused in place; exactly one removal.
	removes := 0
	for _, call := range h.calls {
		if strings.HasPrefix(call, "remove(") {
			removes++
		}
		if strings.HasPrefix(call, "createElement") {
			t.Errorf("unexpected node creation: %v", h.calls)
		}
	}
	if removes != 1 {
		t.Errorf("expected exactly one removal, got %v", h.calls)
	}
}

func TestRenderer_KeyedInsertMiddle(t *testing.T) {
	h := newFakeHost()
	r, _ := newTestRenderer(h)

	prev := keyed("ul", "a", "c")
	r.Render(prev, h.root)

	h.reset()
	next := keyed("ul", "a", "b", "c")
	r.Patch(prev, next, h.root)

	if got := h.dumpRoot(); got != "<ul><li>a</li><li>b</li><li>c</li></ul>" {
		t.Fatalf("expected [a b c], got %s", got)
	}
	for _, call := range h.calls {
		if strings.HasPrefix(call, "remove(") {
			t.Errorf("unexpected removal during insert: %v", h.calls)
		}
	}
}

func TestRenderer_KeyedAppendAndTrim(t *testing.T) {
	h := newFakeHost()
	r, _ := newTestRenderer(h)

	prev := keyed("ul", "a")
	r.Render(prev, h.root)

	next := keyed("ul", "a", "b", "c")
	r.Patch(prev, next, h.root)
	if got := h.dumpRoot(); got != "<ul><li>a</li><li>b</li><li>c</li></ul>" {
		t.Fatalf("expected append, got %s", got)
	}

	last := keyed("ul", "a")
	r.Patch(next, last, h.root)
	if got := h.dumpRoot(); got != "<ul><li>a</li></ul>" {
		t.Errorf("expected trim, got %s", got)
	}
}

func TestRenderer_KeyedReverse(t *testing.T) {
	h := newFakeHost()
	r, _ := newTestRenderer(h)

	prev := keyed("ul", "a", "b", "c", "d")
	r.Render(prev, h.root)

	next := keyed("ul", "d", "c", "b", "a")
	r.Patch(prev, next, h.root)

	if got := h.dumpRoot(); got != "<ul><li>d</li><li>c</li><li>b</li><li>a</li></ul>" {
		t.Errorf("expected reversed order, got %s", got)
	}
}

func TestRenderer_Fragment(t *testing.T) {
	h := newFakeHost()
	r, _ := newTestRenderer(h)

	prev := vdom.NewFragment(vdom.H("p", "one"), vdom.H("p", "two"))
	r.Render(prev, h.root)

	if got := h.dumpRoot(); got != "<p>one</p><p>two</p>" {
		t.Fatalf("expected fragment children inline, got %s", got)
	}

	next := vdom.NewFragment(vdom.H("p", "one"), vdom.H("p", "2"))
	r.Patch(prev, next, h.root)
	if got := h.dumpRoot(); got != "<p>one</p><p>2</p>" {
		t.Errorf("expected patched fragment, got %s", got)
	}
}

// counterComp is a stateful test component driven by a ref.
type counterComp struct {
	count  *reactive.Ref[int]
	events *[]string
}

func (c *counterComp) Render() *vdom.VNode {
	return vdom.H("p", vdom.NewTextf("count: %d", c.count.Get()))
}

func (c *counterComp) Setup(i *runtime.Instance) {
	phases := []runtime.HookPhase{
		runtime.HookBeforeMount, runtime.HookMounted,
		runtime.HookBeforeUpdate, runtime.HookUpdated,
		runtime.HookBeforeUnmount, runtime.HookUnmounted,
	}
	for _, p := range phases {
		phase := p
		i.On(phase, func() {
			*c.events = append(*c.events, phase.String())
		})
	}
}

func TestRenderer_ComponentMountAndUpdate(t *testing.T) {
	h := newFakeHost()
	r, q := newTestRenderer(h)

	var events []string
	comp := &counterComp{count: reactive.NewRef(0), events: &events}
	node := vdom.H(comp)

	r.Render(node, h.root)
	if got := h.dumpRoot(); got != "<p>count: 0</p>" {
		t.Fatalf("expected initial render, got %s", got)
	}
	if len(events) != 2 || events[0] != "beforeMount" || events[1] != "mounted" {
		t.Fatalf("expected mount hooks, got %v", events)
	}

	// A write re-renders through the queue, not synchronously.
	comp.count.Set(1)
	if got := h.dumpRoot(); got != "<p>count: 0</p>" {
		t.Fatalf("render happened before flush: %s", got)
	}
	q.Flush()
	if got := h.dumpRoot(); got != "<p>count: 1</p>" {
		t.Fatalf("expected re-render after flush, got %s", got)
	}
	if len(events) != 4 || events[2] != "beforeUpdate" || events[3] != "updated" {
		t.Errorf("expected update hooks, got %v", events)
	}
}

func TestRenderer_ComponentCoalescesWrites(t *testing.T) {
	h := newFakeHost()
	r, q := newTestRenderer(h)

	var events []string
	comp := &counterComp{count: reactive.NewRef(0), events: &events}
	r.Render(vdom.H(comp), h.root)

	h.reset()
	comp.count.Set(1)
	comp.count.Set(2)
	comp.count.Set(3)
	q.Flush()

	if got := h.dumpRoot(); got != "<p>count: 3</p>" {
		t.Fatalf("expected final value, got %s", got)
	}
	// One re-render for the whole burst: a single text update.
	if len(h.calls) != 1 {
		t.Errorf("expected one adapter call for the burst, got %v", h.calls)
	}
}

func TestRenderer_ComponentUnmountStopsUpdates(t *testing.T) {
	h := newFakeHost()
	r, q := newTestRenderer(h)

	var events []string
	comp := &counterComp{count: reactive.NewRef(0), events: &events}
	node := vdom.H(comp)
	r.Render(node, h.root)

	r.Unmount(node)
	if got := h.dumpRoot(); got != "" {
		t.Fatalf("expected empty tree after unmount, got %s", got)
	}
	if len(events) != 4 || events[2] != "beforeUnmount" || events[3] != "unmounted" {
		t.Fatalf("expected unmount hooks, got %v", events)
	}

	// Writes after unmount reach nobody.
	h.reset()
	comp.count.Set(9)
	q.Flush()
	if len(h.calls) != 0 {
		t.Errorf("unmounted component still rendered: %v", h.calls)
	}
}

func TestRenderer_NestedComponentReleasedWithParent(t *testing.T) {
	h := newFakeHost()
	r, q := newTestRenderer(h)

	var events []string
	inner := &counterComp{count: reactive.NewRef(0), events: &events}

	outer := vdom.H("div", []*vdom.VNode{vdom.H(inner)})
	r.Render(outer, h.root)
	if got := h.dumpRoot(); got != "<div><p>count: 0</p></div>" {
		t.Fatalf("expected nested mount, got %s", got)
	}

	r.Unmount(outer)

	// The nested component's binding must be disposed even though only the
	// outer element was removed from the platform tree.
	h.reset()
	inner.count.Set(5)
	q.Flush()
	if len(h.calls) != 0 {
		t.Errorf("nested component binding survived parent unmount: %v", h.calls)
	}
}

func TestRenderer_ComponentUpdateFromParent(t *testing.T) {
	h := newFakeHost()
	r, _ := newTestRenderer(h)

	comp := &greetComp{}
	prev := vdom.H(comp, vdom.Props{"name": "ada"})
	r.Render(prev, h.root)
	if got := h.dumpRoot(); got != "<p>hi ada</p>" {
		t.Fatalf("expected prop render, got %s", got)
	}

	next := vdom.H(comp, vdom.Props{"name": "grace"})
	r.Patch(prev, next, h.root)
	if got := h.dumpRoot(); got != "<p>hi grace</p>" {
		t.Errorf("expected updated props, got %s", got)
	}
}

// greetComp renders from props captured at setup.
type greetComp struct {
	inst *runtime.Instance
}

func (g *greetComp) Setup(i *runtime.Instance) { g.inst = i }

func (g *greetComp) Render() *vdom.VNode {
	name, _ := g.inst.Prop("name").(string)
	return vdom.H("p", vdom.NewTextf("hi %s", name))
}
