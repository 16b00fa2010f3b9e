package reactive

import "sync/atomic"

// globalIDCounter is the source of unique IDs for computations.
var globalIDCounter uint64

func nextID() uint64 {
	return atomic.AddUint64(&globalIDCounter, 1)
}

// Scheduler replaces "run immediately" with a custom re-run policy for a
// computation. When a dependency triggers, the scheduler receives the
// computation instead of the graph calling Run directly.
type Scheduler func(*Computation)

// Computation is a re-runnable unit of work. While it runs it is the
// implicit subscriber for every dependency read inside it.
type Computation struct {
	id uint64
	fn func() any

	// active is flipped off by Stop. A stopped computation still runs its
	// function when invoked directly, but registers no dependencies.
	active bool

	// deps are the subscriber sets this computation currently belongs to.
	// Cleared and rebuilt at the start of every run.
	deps []*depSet

	scheduler Scheduler
	onStop    func()
	graph     *Graph
}

// ComputationOption configures a Computation at construction time.
type ComputationOption func(*Computation)

// WithScheduler defers re-runs to the given scheduler instead of running
// the computation synchronously on trigger.
func WithScheduler(s Scheduler) ComputationOption {
	return func(c *Computation) {
		c.scheduler = s
	}
}

// WithGraph binds the computation to a graph other than the default.
func WithGraph(g *Graph) ComputationOption {
	return func(c *Computation) {
		c.graph = g
	}
}

// OnStop registers a callback invoked once when the computation is stopped.
func OnStop(fn func()) ComputationOption {
	return func(c *Computation) {
		c.onStop = fn
	}
}

// NewComputation creates a computation without running it.
func NewComputation(fn func() any, opts ...ComputationOption) *Computation {
	c := &Computation{
		id:     nextID(),
		fn:     fn,
		active: true,
		graph:  DefaultGraph,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the unique identifier for this computation. Used by the
// scheduler queue to deduplicate update jobs.
func (c *Computation) ID() uint64 {
	return c.id
}

// Active reports whether the computation still participates in tracking.
func (c *Computation) Active() bool {
	return c.active
}

// Run executes the wrapped function and returns its result.
//
// An active computation first drops every subscription from its previous
// run, then runs with itself on the tracking stack so reads re-subscribe
// it. Stack restoration is deferred so it happens on every exit path,
// including a panicking function.
//
// A stopped computation just invokes the function without touching the
// dependency machinery.
func (c *Computation) Run() any {
	if !c.active {
		return c.fn()
	}

	c.graph.cleanup(c)

	pushComputation(c)
	defer popComputation()
	return c.fn()
}

// Stop removes the computation from every subscriber set and marks it
// inactive. Idempotent.
func (c *Computation) Stop() {
	if !c.active {
		return
	}
	c.graph.cleanup(c)
	c.active = false
	if c.onStop != nil {
		c.onStop()
	}
}

// effectConfig carries Effect-only construction options.
type effectConfig struct {
	lazy bool
	opts []ComputationOption
}

// EffectOption configures an Effect.
type EffectOption func(*effectConfig)

// Lazy defers the first run; the caller invokes Run when ready.
func Lazy() EffectOption {
	return func(cfg *effectConfig) {
		cfg.lazy = true
	}
}

// EffectScheduler is WithScheduler in Effect-option form.
func EffectScheduler(s Scheduler) EffectOption {
	return func(cfg *effectConfig) {
		cfg.opts = append(cfg.opts, WithScheduler(s))
	}
}

// EffectOnStop is OnStop in Effect-option form.
func EffectOnStop(fn func()) EffectOption {
	return func(cfg *effectConfig) {
		cfg.opts = append(cfg.opts, OnStop(fn))
	}
}

// EffectGraph is WithGraph in Effect-option form.
func EffectGraph(g *Graph) EffectOption {
	return func(cfg *effectConfig) {
		cfg.opts = append(cfg.opts, WithGraph(g))
	}
}

// Effect creates a computation around fn and, unless Lazy is given, runs it
// immediately. The returned computation is the runner handle: call Run to
// re-execute manually, Stop to dispose.
//
// Example:
//
//	count := reactive.NewRef(0)
//	runner := reactive.Effect(func() {
//	    fmt.Println("count is", count.Get())
//	})
//	count.Set(1) // effect re-runs
//	runner.Stop()
func Effect(fn func(), opts ...EffectOption) *Computation {
	cfg := &effectConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	c := NewComputation(func() any {
		fn()
		return nil
	}, cfg.opts...)

	if !cfg.lazy {
		c.Run()
	}
	return c
}
