package runtime_test

import (
	"testing"

	"github.com/quartzui/quartz/pkg/runtime"
	"github.com/quartzui/quartz/pkg/vdom"
)

type plain struct{}

func (p *plain) Render() *vdom.VNode { return vdom.NewText("plain") }

type withSetup struct {
	setups int
	inst   *runtime.Instance
}

func (w *withSetup) Render() *vdom.VNode { return vdom.NewText("setup") }

func (w *withSetup) Setup(i *runtime.Instance) {
	w.setups++
	w.inst = i
}

func TestNewInstance_CapturesPropsAndSlots(t *testing.T) {
	child := vdom.H("span", "slotted")
	n := vdom.H(&plain{}, vdom.Props{"name": "ada"}, child)

	inst := runtime.NewInstance(n)

	if inst.Prop("name") != "ada" {
		t.Errorf("expected prop ada, got %v", inst.Prop("name"))
	}
	if inst.Prop("missing") != nil {
		t.Errorf("expected nil for missing prop")
	}

	slot := inst.Slot(runtime.DefaultSlot)
	if len(slot) != 1 || slot[0] != child {
		t.Errorf("expected child in default slot, got %v", slot)
	}
}

func TestInstance_SetNext(t *testing.T) {
	comp := &plain{}
	inst := runtime.NewInstance(vdom.H(comp, vdom.Props{"n": 1}))

	next := vdom.H(comp, vdom.Props{"n": 2})
	inst.SetNext(next)

	if inst.Prop("n") != 2 {
		t.Errorf("expected adopted props, got %v", inst.Prop("n"))
	}
	if inst.VNode != next {
		t.Error("expected instance to point at the new node")
	}
	if inst.Slots != nil {
		t.Error("expected slots cleared when new node has no children")
	}
}

func TestInstance_Setup(t *testing.T) {
	comp := &withSetup{}
	inst := runtime.NewInstance(vdom.H(comp))

	inst.Setup()

	if comp.setups != 1 {
		t.Fatalf("expected setup to run once, got %d", comp.setups)
	}
	if comp.inst != inst {
		t.Error("setup received the wrong instance")
	}
	if runtime.Current() != nil {
		t.Error("current instance leaked out of setup")
	}
}

func TestInstance_SetupSkippedWithoutContract(t *testing.T) {
	inst := runtime.NewInstance(vdom.H(&plain{}))
	inst.Setup() // must not panic
}

func TestInstance_RenderSubTree(t *testing.T) {
	inst := runtime.NewInstance(vdom.H(&plain{}))

	sub := inst.RenderSubTree()
	if sub.Kind != vdom.KindText || sub.Text != "plain" {
		t.Errorf("expected component output, got kind=%s text=%q", sub.Kind, sub.Text)
	}
}

type nilRender struct{}

func (n *nilRender) Render() *vdom.VNode { return nil }

func TestInstance_NilRenderDegradesToFragment(t *testing.T) {
	inst := runtime.NewInstance(vdom.H(&nilRender{}))

	sub := inst.RenderSubTree()
	if sub == nil || sub.Kind != vdom.KindFragment {
		t.Errorf("expected empty fragment for nil render output, got %v", sub)
	}
}

func TestCallHook_Order(t *testing.T) {
	inst := runtime.NewInstance(vdom.H(&plain{}))

	var order []int
	inst.On(runtime.HookMounted, func() { order = append(order, 1) })
	inst.On(runtime.HookMounted, func() { order = append(order, 2) })

	runtime.CallHook(inst, runtime.HookMounted)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("expected registration order [1 2], got %v", order)
	}
}

func TestCallHook_RecoversPanic(t *testing.T) {
	inst := runtime.NewInstance(vdom.H(&plain{}))

	ran := false
	inst.On(runtime.HookMounted, func() { panic("boom") })
	inst.On(runtime.HookMounted, func() { ran = true })

	runtime.CallHook(inst, runtime.HookMounted)
	if !ran {
		t.Error("panicking hook prevented its sibling from running")
	}
}

func TestCallHook_NilInstance(t *testing.T) {
	runtime.CallHook(nil, runtime.HookMounted) // must not panic
}

type hookRegistrar struct {
	mounted int
}

func (h *hookRegistrar) Render() *vdom.VNode { return vdom.NewText("") }

func (h *hookRegistrar) Setup(i *runtime.Instance) {
	runtime.OnMounted(func() { h.mounted++ })
}

func TestPackageHooks_AttachDuringSetup(t *testing.T) {
	comp := &hookRegistrar{}
	inst := runtime.NewInstance(vdom.H(comp))

	inst.Setup()
	runtime.CallHook(inst, runtime.HookMounted)

	if comp.mounted != 1 {
		t.Errorf("expected package-level hook to attach, got %d calls", comp.mounted)
	}
}

func TestPackageHooks_NoopOutsideSetup(t *testing.T) {
	runtime.OnMounted(func() {}) // diagnostic no-op, must not panic
}

func TestHookPhase_String(t *testing.T) {
	cases := map[runtime.HookPhase]string{
		runtime.HookBeforeMount:   "beforeMount",
		runtime.HookMounted:       "mounted",
		runtime.HookBeforeUpdate:  "beforeUpdate",
		runtime.HookUpdated:       "updated",
		runtime.HookBeforeUnmount: "beforeUnmount",
		runtime.HookUnmounted:     "unmounted",
		runtime.HookPhase(99):     "unknown",
	}
	for phase, want := range cases {
		if got := phase.String(); got != want {
			t.Errorf("phase %d: expected %q, got %q", phase, want, got)
		}
	}
}
