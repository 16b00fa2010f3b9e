// Package reactive provides the dependency-tracking core for Quartz.
//
// Reads and writes against reactive containers flow through a process-wide
// dependency graph. Reading a value while a Computation is running subscribes
// that computation; writing a value notifies every subscribed computation.
//
// # Core Types
//
// Ref[T] is a single-slot reactive container:
//
//	count := reactive.NewRef(0)
//	value := count.Get()  // Read (subscribes the running computation)
//	count.Set(5)          // Write (notifies subscribers)
//
// Object wraps a map so every key becomes individually observable:
//
//	state := reactive.Reactive(map[string]any{"count": 0}).(*reactive.Object)
//	state.Get("count")
//	state.Set("count", 1)
//
// Computed[T] is a cached derived value:
//
//	doubled := reactive.NewComputed(func() int { return count.Get() * 2 })
//	doubled.Get()  // Recomputes only after a dependency changed
//
// Effect runs side effects when dependencies change:
//
//	runner := reactive.Effect(func() {
//	    fmt.Println("count is", count.Get())
//	})
//	runner.Stop()
//
// # Tracking Model
//
// The active computation is held on an explicit per-goroutine stack, so a
// computation that causes another computation to run before returning (a
// computed read inside an effect, for example) attributes dependency reads
// to the innermost computation and restores the outer one afterward.
//
// A computation's subscriptions are cleared and rebuilt on every run, so
// dependencies picked up in conditional branches no longer taken do not
// linger.
package reactive
