package reactive

import (
	"reflect"
	"runtime"
	"sort"
	"sync"
	"weak"
)

// Object is an observed map wrapper. Go has no transparent property
// interception, so the wrapper exposes typed accessors that route every
// read through Track and every mutating write through Trigger. Callers must
// go through the wrapper; mutating the raw map directly bypasses tracking.
type Object struct {
	target   map[string]any
	readonly bool
	graph    *Graph
}

// wrapCache memoizes wrappers by the identity of the underlying map, so
// wrapping the same map twice yields the same *Object while the wrapper is
// reachable. Entries hold weak pointers and are evicted by a GC cleanup, so
// the cache pins neither the wrapper nor the wrapped map. Readonly wrappers
// are cached separately because they are distinct views.
type wrapCache struct {
	mu       sync.Mutex
	reactive map[uintptr]weak.Pointer[Object]
	readonly map[uintptr]weak.Pointer[Object]
}

var cache = &wrapCache{
	reactive: make(map[uintptr]weak.Pointer[Object]),
	readonly: make(map[uintptr]weak.Pointer[Object]),
}

// Reactive wraps a map so its keys become individually observable.
// Wrapping is idempotent: an already-wrapped object is returned as-is and
// the same underlying map always yields the same wrapper. Non-map input
// gets a diagnostic and is returned unchanged.
func Reactive(target any) any {
	switch t := target.(type) {
	case *Object:
		return t
	case map[string]any:
		return wrapMap(t, false)
	default:
		logger.Warn("value cannot be made reactive", "type", reflect.TypeOf(target))
		return target
	}
}

// Readonly wraps a map in a read-only observed view. Reads behave like
// Reactive reads (including recursive readonly wrapping of nested maps);
// writes and deletes are rejected with a diagnostic.
func Readonly(target any) any {
	switch t := target.(type) {
	case *Object:
		if t.readonly {
			return t
		}
		return wrapMap(t.target, true)
	case map[string]any:
		return wrapMap(t, true)
	default:
		logger.Warn("value cannot be made readonly", "type", reflect.TypeOf(target))
		return target
	}
}

func wrapMap(m map[string]any, readonly bool) *Object {
	ptr := reflect.ValueOf(m).Pointer()

	cache.mu.Lock()
	defer cache.mu.Unlock()

	byPtr := cache.reactive
	if readonly {
		byPtr = cache.readonly
	}
	if wp, ok := byPtr[ptr]; ok {
		if o := wp.Value(); o != nil {
			return o
		}
	}

	o := &Object{
		target:   m,
		readonly: readonly,
		graph:    DefaultGraph,
	}
	byPtr[ptr] = weak.Make(o)

	// The cleanup must not check its own entry blindly: the map address can
	// be reused and re-wrapped before the cleanup for the old wrapper runs.
	runtime.AddCleanup(o, func(key uintptr) {
		cache.mu.Lock()
		defer cache.mu.Unlock()
		if wp, ok := byPtr[key]; ok && wp.Value() == nil {
			delete(byPtr, key)
		}
	}, ptr)
	return o
}

// IsReactive reports whether v is a mutable observed wrapper.
func IsReactive(v any) bool {
	o, ok := v.(*Object)
	return ok && !o.readonly
}

// IsReadonly reports whether v is a read-only observed wrapper.
func IsReadonly(v any) bool {
	o, ok := v.(*Object)
	return ok && o.readonly
}

// Raw returns the underlying map. Reads through it are not tracked.
func (o *Object) Raw() map[string]any {
	return o.target
}

// IsReadonly reports whether this wrapper rejects mutation.
func (o *Object) IsReadonly() bool {
	return o.readonly
}

// Get returns the value for key, registering a dependency for the running
// computation. A nested map value is wrapped on demand, so deep reactivity
// is established lazily at read time rather than eagerly at construction.
func (o *Object) Get(key string) any {
	if !o.readonly {
		o.graph.Track(o, key)
	}

	v := o.target[key]
	if nested, ok := v.(map[string]any); ok {
		return wrapMap(nested, o.readonly)
	}
	return v
}

// Set writes the value for key. Subscribers are notified only when the
// value actually changed; adding a new key additionally fires the
// enumeration dependency.
func (o *Object) Set(key string, value any) {
	if o.readonly {
		logger.Warn("set on readonly object ignored", "key", key)
		return
	}

	old, had := o.target[key]
	o.target[key] = value

	if !had {
		o.graph.Trigger(o, key)
		o.graph.Trigger(o, KeyIterate)
		return
	}
	if valueChanged(old, value) {
		o.graph.Trigger(o, key)
	}
}

// Has reports whether key exists, registering a dependency on it.
func (o *Object) Has(key string) bool {
	if !o.readonly {
		o.graph.Track(o, key)
	}
	_, ok := o.target[key]
	return ok
}

// Keys returns the keys in sorted order. The read is tracked under the
// coarse enumeration dependency, which fires on any key addition or
// removal rather than on individual value changes.
func (o *Object) Keys() []string {
	if !o.readonly {
		o.graph.Track(o, KeyIterate)
	}

	keys := make([]string, 0, len(o.target))
	for k := range o.target {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of keys, tracked like Keys.
func (o *Object) Len() int {
	if !o.readonly {
		o.graph.Track(o, KeyIterate)
	}
	return len(o.target)
}

// Delete removes key if present, notifying its subscribers and the
// enumeration dependency. Reports whether the key existed.
func (o *Object) Delete(key string) bool {
	if o.readonly {
		logger.Warn("delete on readonly object ignored", "key", key)
		return false
	}

	if _, had := o.target[key]; !had {
		return false
	}
	delete(o.target, key)
	o.graph.Trigger(o, key)
	o.graph.Trigger(o, KeyIterate)
	return true
}
