package reactive

// anyRef is the type-erased view of a ref-like container. Implemented by
// Ref[T], ObjectRef, and Computed[T].
type anyRef interface {
	refMarker()
	getAny() any
	setAny(any)
}

// Ref is a single-slot reactive container for values that are not maps.
// It registers itself in the dependency graph under its own identity.
type Ref[T any] struct {
	value T
	graph *Graph

	// equal determines whether a write changed the value. Defaults to ==
	// for comparable kinds and reflect.DeepEqual otherwise.
	equal func(T, T) bool
}

// NewRef creates a ref holding the given initial value.
func NewRef[T any](initial T) *Ref[T] {
	return &Ref[T]{
		value: initial,
		graph: DefaultGraph,
	}
}

// Get returns the current value and subscribes the running computation.
func (r *Ref[T]) Get() T {
	r.graph.Track(r, KeyValue)
	return r.value
}

// Peek returns the current value without subscribing.
func (r *Ref[T]) Peek() T {
	return r.value
}

// Set updates the value and notifies subscribers if it changed.
func (r *Ref[T]) Set(value T) {
	if r.equals(r.value, value) {
		return
	}
	r.value = value
	r.graph.Trigger(r, KeyValue)
}

// Update applies fn to the current value and stores the result.
func (r *Ref[T]) Update(fn func(T) T) {
	r.Set(fn(r.value))
}

// WithEquals configures a custom equality function and returns the ref.
func (r *Ref[T]) WithEquals(fn func(T, T) bool) *Ref[T] {
	r.equal = fn
	return r
}

func (r *Ref[T]) equals(a, b T) bool {
	if r.equal != nil {
		return r.equal(a, b)
	}
	return defaultEquals(a, b)
}

func (r *Ref[T]) refMarker()   {}
func (r *Ref[T]) getAny() any  { return r.Get() }
func (r *Ref[T]) setAny(v any) { r.Set(v.(T)) }

// IsRef reports whether v is a ref-like container (Ref, ObjectRef, or
// Computed).
func IsRef(v any) bool {
	_, ok := v.(anyRef)
	return ok
}

// Unref returns the inner value of a ref-like container, or v unchanged.
// The read is tracked like any other ref read.
func Unref(v any) any {
	if r, ok := v.(anyRef); ok {
		return r.getAny()
	}
	return v
}

// ObjectRef is a ref view over a single key of an observed Object. Reads
// and writes stay connected to the object's dependency entries, so the
// view can be passed around without losing reactivity.
type ObjectRef struct {
	obj *Object
	key string
}

// ToRef creates a ref view over one key of an observed object.
func ToRef(o *Object, key string) *ObjectRef {
	return &ObjectRef{obj: o, key: key}
}

// ToRefs creates a ref view for every current key of an observed object.
func ToRefs(o *Object) map[string]*ObjectRef {
	refs := make(map[string]*ObjectRef, len(o.target))
	for k := range o.target {
		refs[k] = &ObjectRef{obj: o, key: k}
	}
	return refs
}

// Get reads through to the underlying object key.
func (r *ObjectRef) Get() any {
	return r.obj.Get(r.key)
}

// Set writes through to the underlying object key.
func (r *ObjectRef) Set(v any) {
	r.obj.Set(r.key, v)
}

func (r *ObjectRef) refMarker()   {}
func (r *ObjectRef) getAny() any  { return r.Get() }
func (r *ObjectRef) setAny(v any) { r.Set(v) }

// RefProxy is an auto-unwrapping view over a map whose values may be refs.
// Get returns the unwrapped value; Set writes into an existing ref slot
// instead of replacing it, unless the new value is itself a ref.
type RefProxy struct {
	target map[string]any
}

// ProxyRefs wraps a map of possibly-ref values in an auto-unwrapping view.
func ProxyRefs(target map[string]any) *RefProxy {
	return &RefProxy{target: target}
}

// Get returns the value for key, unwrapping a ref if one is stored.
func (p *RefProxy) Get(key string) any {
	return Unref(p.target[key])
}

// Set stores value under key. When the existing slot holds a ref and the
// new value is not a ref, the write goes into the ref's slot.
func (p *RefProxy) Set(key string, value any) {
	if existing, ok := p.target[key].(anyRef); ok && !IsRef(value) {
		existing.setAny(value)
		return
	}
	p.target[key] = value
}
