package renderer

import (
	"log/slog"
	"reflect"
	"sort"

	"github.com/quartzui/quartz/pkg/reactive"
	"github.com/quartzui/quartz/pkg/runtime"
	"github.com/quartzui/quartz/pkg/scheduler"
	"github.com/quartzui/quartz/pkg/vdom"
)

// Renderer diffs virtual trees and issues minimal adapter calls. One
// renderer serves one platform backend; component re-renders triggered by
// reactive writes are coalesced through its scheduler queue.
type Renderer struct {
	host   Adapter
	queue  *scheduler.Queue
	logger *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithQueue routes component update jobs through the given queue instead
// of the package default.
func WithQueue(q *scheduler.Queue) Option {
	return func(r *Renderer) {
		r.queue = q
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = l.With("component", "renderer")
	}
}

// New creates a renderer over the given platform adapter.
func New(host Adapter, opts ...Option) *Renderer {
	r := &Renderer{
		host:   host,
		queue:  scheduler.Default,
		logger: slog.Default().With("component", "renderer"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Queue returns the update queue this renderer enqueues into. The host
// drains it after its synchronous work (event dispatch, test step).
func (r *Renderer) Queue() *scheduler.Queue {
	return r.queue
}

// Render mounts the virtual tree into the container.
func (r *Renderer) Render(n *vdom.VNode, container Node) {
	r.patch(nil, n, container, nil)
}

// Patch reconciles a previously rendered tree against its replacement.
// prev must be the tree most recently rendered into the container.
func (r *Renderer) Patch(prev, next *vdom.VNode, container Node) {
	r.patch(prev, next, container, nil)
}

// patch reconciles one node position. n1 is the previous node (nil when
// mounting fresh), n2 the next. anchor is the platform node new content
// must be inserted before; nil appends.
func (r *Renderer) patch(n1, n2 *vdom.VNode, container Node, anchor Node) {
	if n1 == n2 {
		return
	}

	if n1 != nil && !vdom.SameType(n1, n2) {
		r.Unmount(n1)
		n1 = nil
	}

	switch n2.Kind {
	case vdom.KindText:
		r.processText(n1, n2, container, anchor)
	case vdom.KindFragment:
		r.processFragment(n1, n2, container, anchor)
	default:
		if n2.HasFlag(vdom.FlagElement) {
			r.processElement(n1, n2, container, anchor)
		} else if n2.HasFlag(vdom.FlagComponent) {
			r.processComponent(n1, n2, container, anchor)
		}
	}
}

func (r *Renderer) processText(n1, n2 *vdom.VNode, container Node, anchor Node) {
	if n1 == nil {
		n2.El = r.host.CreateText(n2.Text)
		r.host.Insert(n2.El, container, anchor)
		return
	}
	n2.El = n1.El
	if n1.Text != n2.Text {
		r.host.SetText(n2.El, n2.Text)
	}
}

func (r *Renderer) processFragment(n1, n2 *vdom.VNode, container Node, anchor Node) {
	if n1 == nil {
		r.mountChildren(n2.Children, container, anchor)
		return
	}
	r.patchChildren(n1, n2, container, anchor)
}

func (r *Renderer) processElement(n1, n2 *vdom.VNode, container Node, anchor Node) {
	if n1 == nil {
		r.mountElement(n2, container, anchor)
		return
	}
	r.patchElement(n1, n2)
}

func (r *Renderer) mountElement(n *vdom.VNode, container Node, anchor Node) {
	el := r.host.CreateElement(n.Tag)
	n.El = el

	if n.HasFlag(vdom.FlagTextChildren) {
		r.host.SetElementText(el, n.Text)
	} else if n.HasFlag(vdom.FlagArrayChildren) {
		r.mountChildren(n.Children, el, nil)
	}

	for _, key := range sortedPropKeys(n.Props) {
		r.host.PatchProp(el, key, nil, n.Props[key])
	}

	r.host.Insert(el, container, anchor)
}

func (r *Renderer) mountChildren(children []*vdom.VNode, container Node, anchor Node) {
	for _, c := range children {
		r.patch(nil, c, container, anchor)
	}
}

func (r *Renderer) patchElement(n1, n2 *vdom.VNode) {
	el := n1.El
	n2.El = el
	r.patchProps(el, n1.Props, n2.Props)
	r.patchChildren(n1, n2, el, nil)
}

// patchProps converges the element to exactly the new prop set: one
// PatchProp call per changed or added key, one removal per vanished key,
// no calls for unchanged keys.
func (r *Renderer) patchProps(el Node, oldProps, newProps vdom.Props) {
	for _, key := range sortedPropKeys(newProps) {
		next := newProps[key]
		prev, had := oldProps[key]
		if !had || propChanged(prev, next) {
			r.host.PatchProp(el, key, prev, next)
		}
	}
	for _, key := range sortedPropKeys(oldProps) {
		if _, kept := newProps[key]; !kept {
			r.host.PatchProp(el, key, oldProps[key], nil)
		}
	}
}

// patchChildren handles the four old/new children shape combinations.
func (r *Renderer) patchChildren(n1, n2 *vdom.VNode, container Node, anchor Node) {
	switch {
	case n2.HasFlag(vdom.FlagTextChildren):
		if n1.HasFlag(vdom.FlagArrayChildren) {
			r.unmountChildren(n1.Children)
		}
		if n1.Text != n2.Text {
			r.host.SetElementText(container, n2.Text)
		}

	case n2.HasFlag(vdom.FlagArrayChildren):
		if n1.HasFlag(vdom.FlagTextChildren) {
			r.host.SetElementText(container, "")
			r.mountChildren(n2.Children, container, anchor)
			return
		}
		if n1.HasFlag(vdom.FlagArrayChildren) {
			r.patchKeyedChildren(n1.Children, n2.Children, container, anchor)
			return
		}
		r.mountChildren(n2.Children, container, anchor)

	default:
		// New node has no children.
		if n1.HasFlag(vdom.FlagArrayChildren) {
			r.unmountChildren(n1.Children)
		} else if n1.HasFlag(vdom.FlagTextChildren) {
			r.host.SetElementText(container, "")
		}
	}
}

// patchKeyedChildren reconciles two child lists. Shared prefix and suffix
// runs are patched in place; a leftover new range is mounted before the
// node that follows it, a leftover old range is unmounted. An unresolved
// middle section on both sides is unmounted and remounted in order; no
// move-based reuse is attempted there.
func (r *Renderer) patchKeyedChildren(c1, c2 []*vdom.VNode, container Node, parentAnchor Node) {
	i := 0
	e1 := len(c1) - 1
	e2 := len(c2) - 1

	// Shared prefix.
	for i <= e1 && i <= e2 && vdom.SameType(c1[i], c2[i]) {
		r.patch(c1[i], c2[i], container, parentAnchor)
		i++
	}

	// Shared suffix.
	for i <= e1 && i <= e2 && vdom.SameType(c1[e1], c2[e2]) {
		r.patch(c1[e1], c2[e2], container, parentAnchor)
		e1--
		e2--
	}

	switch {
	case i > e1:
		// Old range exhausted: mount the remaining new nodes before
		// whatever now occupies the position after the new range.
		if i <= e2 {
			anchor := parentAnchor
			if next := e2 + 1; next < len(c2) {
				anchor = c2[next].El
			}
			for ; i <= e2; i++ {
				r.patch(nil, c2[i], container, anchor)
			}
		}

	case i > e2:
		// New range exhausted: unmount the remaining old nodes.
		for ; i <= e1; i++ {
			r.Unmount(c1[i])
		}

	default:
		// Unresolved middle on both sides.
		for j := i; j <= e1; j++ {
			r.Unmount(c1[j])
		}
		anchor := parentAnchor
		if next := e2 + 1; next < len(c2) {
			anchor = c2[next].El
		}
		for j := i; j <= e2; j++ {
			r.patch(nil, c2[j], container, anchor)
		}
	}
}

func (r *Renderer) processComponent(n1, n2 *vdom.VNode, container Node, anchor Node) {
	if n1 == nil {
		r.mountComponent(n2, container, anchor)
		return
	}
	r.updateComponent(n1, n2)
}

func (r *Renderer) mountComponent(n *vdom.VNode, container Node, anchor Node) {
	inst := runtime.NewInstance(n)
	n.Instance = inst

	inst.Setup()
	runtime.CallHook(inst, runtime.HookBeforeMount)

	update := func() any {
		if !inst.IsMounted {
			sub := inst.RenderSubTree()
			inst.SubTree = sub
			r.patch(nil, sub, container, anchor)
			inst.VNode.El = elementOf(sub)
			inst.IsMounted = true
			runtime.CallHook(inst, runtime.HookMounted)
			return nil
		}

		runtime.CallHook(inst, runtime.HookBeforeUpdate)
		prev := inst.SubTree
		next := inst.RenderSubTree()
		inst.SubTree = next
		r.patch(prev, next, container, anchor)
		inst.VNode.El = elementOf(next)
		runtime.CallHook(inst, runtime.HookUpdated)
		return nil
	}

	// Deferred binding: reactive writes enqueue one update job per
	// instance instead of re-rendering synchronously, so a burst of
	// writes coalesces into a single re-render at the next flush.
	inst.Update = reactive.NewComputation(update, reactive.WithScheduler(func(c *reactive.Computation) {
		r.queue.Enqueue(scheduler.Job{ID: c.ID(), Run: func() { c.Run() }})
	}))
	inst.Update.Run()
}

func (r *Renderer) updateComponent(n1, n2 *vdom.VNode) {
	inst, ok := n1.Instance.(*runtime.Instance)
	if !ok || inst == nil {
		r.logger.Error("component node missing bound instance on update")
		return
	}
	n2.Instance = inst
	n2.El = n1.El
	inst.SetNext(n2)
	inst.Update.Run()
}

// Unmount removes a rendered node. Components unmount their subtree and
// release their reactive binding before the unmounted notification;
// fragments unmount every child; elements and text nodes remove their
// bound platform node.
func (r *Renderer) Unmount(n *vdom.VNode) {
	if n == nil {
		return
	}

	switch n.Kind {
	case vdom.KindComponent:
		inst, _ := n.Instance.(*runtime.Instance)
		if inst == nil {
			return
		}
		runtime.CallHook(inst, runtime.HookBeforeUnmount)
		r.Unmount(inst.SubTree)
		if inst.Update != nil {
			inst.Update.Stop()
		}
		inst.IsMounted = false
		runtime.CallHook(inst, runtime.HookUnmounted)

	case vdom.KindFragment:
		r.unmountChildren(n.Children)

	default:
		// Nested components under this element still hold live reactive
		// bindings; release them before dropping the platform subtree in
		// one Remove call.
		if n.HasFlag(vdom.FlagArrayChildren) {
			r.releaseChildren(n.Children)
		}
		if n.El != nil {
			r.host.Remove(n.El)
		}
	}
}

func (r *Renderer) unmountChildren(children []*vdom.VNode) {
	for _, c := range children {
		r.Unmount(c)
	}
}

// releaseChildren disposes component bindings in a subtree that is being
// removed wholesale, without issuing per-node adapter removals.
func (r *Renderer) releaseChildren(children []*vdom.VNode) {
	for _, c := range children {
		if c == nil {
			continue
		}
		switch c.Kind {
		case vdom.KindComponent:
			inst, _ := c.Instance.(*runtime.Instance)
			if inst == nil {
				continue
			}
			runtime.CallHook(inst, runtime.HookBeforeUnmount)
			if inst.SubTree != nil {
				r.releaseChildren([]*vdom.VNode{inst.SubTree})
			}
			if inst.Update != nil {
				inst.Update.Stop()
			}
			inst.IsMounted = false
			runtime.CallHook(inst, runtime.HookUnmounted)
		default:
			if c.HasFlag(vdom.FlagArrayChildren) || c.Kind == vdom.KindFragment {
				r.releaseChildren(c.Children)
			}
		}
	}
}

// elementOf returns the platform node a subtree is anchored to. Fragments
// have no platform node of their own.
func elementOf(n *vdom.VNode) Node {
	if n == nil || n.Kind == vdom.KindFragment {
		return nil
	}
	return n.El
}

func sortedPropKeys(props vdom.Props) []string {
	if len(props) == 0 {
		return nil
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		if k == "key" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// propChanged reports whether a prop value differs. Function-valued props
// (event handlers) are never comparable with ==; they count as changed
// only when identity differs.
func propChanged(prev, next any) bool {
	pv := reflect.ValueOf(prev)
	nv := reflect.ValueOf(next)
	if pv.Kind() == reflect.Func || nv.Kind() == reflect.Func {
		if pv.Kind() != nv.Kind() {
			return true
		}
		return pv.Pointer() != nv.Pointer()
	}
	switch p := prev.(type) {
	case nil:
		return next != nil
	case string:
		n, ok := next.(string)
		return !ok || p != n
	case int:
		n, ok := next.(int)
		return !ok || p != n
	case int64:
		n, ok := next.(int64)
		return !ok || p != n
	case float64:
		n, ok := next.(float64)
		return !ok || p != n
	case bool:
		n, ok := next.(bool)
		return !ok || p != n
	default:
		return !reflect.DeepEqual(prev, next)
	}
}
