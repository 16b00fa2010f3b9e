package vtest_test

import (
	"testing"

	"github.com/quartzui/quartz/pkg/protocol"
	"github.com/quartzui/quartz/pkg/reactive"
	"github.com/quartzui/quartz/pkg/vdom"
	"github.com/quartzui/quartz/pkg/vtest"
)

type clicker struct {
	count *reactive.Ref[int]
}

func newClicker() *clicker {
	return &clicker{count: reactive.NewRef(0)}
}

func (c *clicker) Render() *vdom.VNode {
	return vdom.H("div", []*vdom.VNode{
		vdom.H("p", vdom.NewTextf("count: %d", c.count.Get())),
		vdom.H("button", vdom.Props{
			"onClick": func() { c.count.Update(func(n int) int { return n + 1 }) },
		}, "inc"),
	})
}

func TestHarness_MountAndTrigger(t *testing.T) {
	h := vtest.Mount(newClicker())
	defer h.Unmount()

	vtest.ExpectContains(t, h.HTML(), "count: 0")

	if err := h.Trigger("click"); err != nil {
		t.Fatalf("trigger failed: %v", err)
	}
	vtest.ExpectContains(t, h.HTML(), "count: 1")

	if err := h.Trigger("click"); err != nil {
		t.Fatalf("trigger failed: %v", err)
	}
	vtest.ExpectContains(t, h.HTML(), "count: 2")
}

func TestHarness_TriggerUnknownEvent(t *testing.T) {
	h := vtest.Mount(newClicker())
	defer h.Unmount()

	if err := h.Trigger("submit"); err == nil {
		t.Error("expected error for event with no listener")
	}
}

func TestHarness_RecordsOps(t *testing.T) {
	h := vtest.Mount(newClicker())
	defer h.Unmount()

	var listens int
	for _, op := range h.Ops() {
		if op.Code == protocol.OpListen {
			listens++
		}
	}
	if listens != 1 {
		t.Errorf("expected one listen op, got %d", listens)
	}
}

func TestHarness_WritesCoalesceUntilFlush(t *testing.T) {
	c := newClicker()
	h := vtest.Mount(c)
	defer h.Unmount()

	c.count.Set(5)
	vtest.ExpectContains(t, h.HTML(), "count: 0")

	h.Flush()
	vtest.ExpectContains(t, h.HTML(), "count: 5")
}

func TestRenderToString_IsStateless(t *testing.T) {
	html := vtest.RenderToString(vdom.H("p", "once"))
	if html != "<p>once</p>" {
		t.Errorf("unexpected render: %s", html)
	}
}
