package reactive

// Computed is a cached derived value backed by a deferred computation and a
// dirty flag.
//
// The getter does not run at construction. The first Get computes and
// caches; later Gets return the cache until a dependency notifies. That
// notification flips the dirty flag and forwards a single trigger to this
// Computed's own readers; further notifications while already dirty are
// coalesced into nothing.
type Computed[T any] struct {
	value  T
	dirty  bool
	getter func() T
	setter func(T)
	comp   *Computation
	graph  *Graph
}

// NewComputed creates a read-only computed value from a getter.
func NewComputed[T any](getter func() T) *Computed[T] {
	return newComputed(getter, nil)
}

// NewWritableComputed creates a computed value whose Set forwards to the
// given setter.
func NewWritableComputed[T any](getter func() T, setter func(T)) *Computed[T] {
	return newComputed(getter, setter)
}

func newComputed[T any](getter func() T, setter func(T)) *Computed[T] {
	c := &Computed[T]{
		dirty:  true,
		getter: getter,
		setter: setter,
		graph:  DefaultGraph,
	}
	c.comp = NewComputation(func() any {
		return getter()
	}, WithScheduler(func(*Computation) {
		// Coalesce: only the first transition to dirty notifies readers.
		if !c.dirty {
			c.dirty = true
			c.graph.Trigger(c, KeyValue)
		}
	}))
	return c
}

// Get returns the computed value, recomputing it if a dependency changed
// since the last read. The read subscribes the running computation to this
// Computed regardless of whether a recompute happened.
func (c *Computed[T]) Get() T {
	c.graph.Track(c, KeyValue)

	if c.dirty {
		c.value = c.comp.Run().(T)
		c.dirty = false
	}
	return c.value
}

// Set invokes the configured setter. Without one the write is ignored with
// a diagnostic: computed values are read-only by default.
func (c *Computed[T]) Set(v T) {
	if c.setter == nil {
		logger.Warn("set on computed without setter ignored")
		return
	}
	c.setter(v)
}

// Stop disposes the inner computation. After Stop the computed no longer
// reacts to dependency changes; Get returns the cached value, computing it
// first if still dirty.
func (c *Computed[T]) Stop() {
	c.comp.Stop()
}

func (c *Computed[T]) refMarker()  {}
func (c *Computed[T]) getAny() any { return c.Get() }
func (c *Computed[T]) setAny(v any) {
	c.Set(v.(T))
}
