// Package vtest provides test helpers for Quartz components.
//
// A Harness mounts a component into an in-memory document with its own
// update queue, so tests can trigger events, flush updates, and assert on
// the serialized HTML:
//
//	h := vtest.Mount(&Counter{})
//	defer h.Unmount()
//
//	if err := h.Trigger("click"); err != nil { ... }
//	vtest.ExpectContains(t, h.HTML(), "count: 1")
package vtest
