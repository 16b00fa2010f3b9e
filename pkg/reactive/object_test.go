package reactive_test

import (
	"testing"

	"github.com/quartzui/quartz/pkg/reactive"
)

func TestReactive_WrapIsIdempotent(t *testing.T) {
	m := map[string]any{"n": 1}

	a := reactive.Reactive(m)
	b := reactive.Reactive(m)
	if a != b {
		t.Error("wrapping the same map twice returned different wrappers")
	}

	c := reactive.Reactive(a)
	if c != a {
		t.Error("wrapping a wrapper returned a new wrapper")
	}

	if !reactive.IsReactive(a) {
		t.Error("expected IsReactive to report true")
	}
	if reactive.IsReadonly(a) {
		t.Error("expected IsReadonly to report false")
	}
}

func TestReactive_NonMapPassthrough(t *testing.T) {
	v := reactive.Reactive(42)
	if v != 42 {
		t.Errorf("expected non-map input returned unchanged, got %v", v)
	}
}

func TestObject_GetTracksAndSetTriggers(t *testing.T) {
	obj := reactive.Reactive(map[string]any{"n": 1}).(*reactive.Object)

	runs := 0
	var seen any
	reactive.Effect(func() {
		runs++
		seen = obj.Get("n")
	})

	obj.Set("n", 2)

	if runs != 2 {
		t.Fatalf("expected 2 runs, got %d", runs)
	}
	if seen != 2 {
		t.Errorf("expected effect to observe 2, got %v", seen)
	}
}

func TestObject_SameValueWriteDoesNotNotify(t *testing.T) {
	obj := reactive.Reactive(map[string]any{"n": 1}).(*reactive.Object)

	runs := 0
	reactive.Effect(func() {
		runs++
		obj.Get("n")
	})

	obj.Set("n", 1)
	if runs != 1 {
		t.Errorf("same-value write notified subscribers: %d runs", runs)
	}
}

func TestObject_UnrelatedKeyDoesNotNotify(t *testing.T) {
	obj := reactive.Reactive(map[string]any{"a": 1, "b": 2}).(*reactive.Object)

	runs := 0
	reactive.Effect(func() {
		runs++
		obj.Get("a")
	})

	obj.Set("b", 3)
	if runs != 1 {
		t.Errorf("write to unrelated key notified subscribers: %d runs", runs)
	}
}

func TestObject_NewKeyNotifiesEnumeration(t *testing.T) {
	obj := reactive.Reactive(map[string]any{"a": 1}).(*reactive.Object)

	lens := 0
	var n int
	reactive.Effect(func() {
		lens++
		n = obj.Len()
	})

	obj.Set("b", 2)
	if lens != 2 {
		t.Fatalf("expected enumeration subscriber to re-run, got %d runs", lens)
	}
	if n != 2 {
		t.Errorf("expected len 2, got %d", n)
	}

	// Changing an existing value must not touch enumeration subscribers.
	obj.Set("b", 3)
	if lens != 2 {
		t.Errorf("value change notified enumeration subscriber: %d runs", lens)
	}
}

func TestObject_DeleteNotifies(t *testing.T) {
	obj := reactive.Reactive(map[string]any{"a": 1}).(*reactive.Object)

	hasRuns := 0
	var has bool
	reactive.Effect(func() {
		hasRuns++
		has = obj.Has("a")
	})

	if !obj.Delete("a") {
		t.Fatal("expected Delete to report true for existing key")
	}
	if hasRuns != 2 || has {
		t.Errorf("expected Has subscriber to observe removal, runs=%d has=%v", hasRuns, has)
	}

	if obj.Delete("a") {
		t.Error("expected Delete of missing key to report false")
	}
	if hasRuns != 2 {
		t.Errorf("missing-key delete notified subscribers: %d runs", hasRuns)
	}
}

func TestObject_KeysSortedAndTracked(t *testing.T) {
	obj := reactive.Reactive(map[string]any{"b": 1, "a": 2}).(*reactive.Object)

	var keys []string
	runs := 0
	reactive.Effect(func() {
		runs++
		keys = obj.Keys()
	})

	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("expected sorted keys [a b], got %v", keys)
	}

	obj.Set("c", 3)
	if runs != 2 {
		t.Fatalf("key addition did not re-run Keys subscriber")
	}
	if len(keys) != 3 || keys[2] != "c" {
		t.Errorf("expected keys [a b c], got %v", keys)
	}
}

func TestObject_NestedMapIsDeeplyReactive(t *testing.T) {
	obj := reactive.Reactive(map[string]any{
		"user": map[string]any{"name": "ada"},
	}).(*reactive.Object)

	var name any
	runs := 0
	reactive.Effect(func() {
		runs++
		nested := obj.Get("user").(*reactive.Object)
		name = nested.Get("name")
	})

	nested := obj.Get("user").(*reactive.Object)
	nested.Set("name", "grace")

	if runs != 2 {
		t.Fatalf("nested write did not re-run effect: %d runs", runs)
	}
	if name != "grace" {
		t.Errorf("expected grace, got %v", name)
	}
}

func TestReadonly_RejectsWrites(t *testing.T) {
	m := map[string]any{"n": 1}
	ro := reactive.Readonly(m).(*reactive.Object)

	if !reactive.IsReadonly(ro) {
		t.Fatal("expected readonly wrapper")
	}
	if reactive.IsReactive(ro) {
		t.Error("readonly wrapper reported as reactive")
	}

	ro.Set("n", 2)
	if ro.Get("n") != 1 {
		t.Error("write through readonly wrapper mutated the value")
	}
	if ro.Delete("n") {
		t.Error("delete through readonly wrapper succeeded")
	}
}

func TestReadonly_NestedViewIsReadonly(t *testing.T) {
	ro := reactive.Readonly(map[string]any{
		"user": map[string]any{"name": "ada"},
	}).(*reactive.Object)

	nested, ok := ro.Get("user").(*reactive.Object)
	if !ok {
		t.Fatal("expected nested map to come back wrapped")
	}
	if !nested.IsReadonly() {
		t.Error("nested view of a readonly object is writable")
	}
}

func TestReadonly_DistinctFromReactiveView(t *testing.T) {
	m := map[string]any{"n": 1}

	rw := reactive.Reactive(m).(*reactive.Object)
	ro := reactive.Readonly(m).(*reactive.Object)
	if rw == ro {
		t.Fatal("reactive and readonly views of the same map are the same wrapper")
	}

	// Both views read the same underlying data.
	rw.Set("n", 2)
	if ro.Get("n") != 2 {
		t.Errorf("readonly view did not observe write, got %v", ro.Get("n"))
	}
}

func TestObject_RawBypassesTracking(t *testing.T) {
	obj := reactive.Reactive(map[string]any{"n": 1}).(*reactive.Object)

	runs := 0
	reactive.Effect(func() {
		runs++
		_ = obj.Raw()["n"]
	})

	obj.Set("n", 2)
	if runs != 1 {
		t.Errorf("raw read subscribed the effect: %d runs", runs)
	}
}
