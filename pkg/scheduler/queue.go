// Package scheduler provides the batched update queue for Quartz.
//
// Component re-render bindings use a deferred computation whose scheduler
// enqueues an update job here. A synchronous burst of writes therefore
// coalesces into one job per component, and the host drains the queue once
// the burst has unwound.
//
// The queue is host-driven by default: the embedder (server session loop,
// test, CLI) calls Flush after its synchronous work. A "post to the end of
// the current turn" primitive can be injected with WithTrigger for hosts
// that have a real event loop.
package scheduler

import "sync"

// Job is one queued unit of work. Jobs are deduplicated by ID while queued:
// enqueuing an ID that is already waiting is a no-op.
type Job struct {
	ID  uint64
	Run func()
}

// TriggerFunc posts a flush to the host's notion of "end of the current
// synchronous turn".
type TriggerFunc func(flush func())

// Queue is a FIFO job queue with single-flight flushing.
type Queue struct {
	mu       sync.Mutex
	jobs     []Job
	queued   map[uint64]struct{}
	pending  bool
	flushing bool
	after    []func()
	trigger  TriggerFunc
}

// Option configures a Queue.
type Option func(*Queue)

// WithTrigger installs the deferral primitive used to schedule a flush when
// the first job of a burst arrives. Without it the host calls Flush itself.
func WithTrigger(t TriggerFunc) Option {
	return func(q *Queue) {
		q.trigger = t
	}
}

// NewQueue creates an empty queue.
func NewQueue(opts ...Option) *Queue {
	q := &Queue{
		queued: make(map[uint64]struct{}),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Default is the queue used when no explicit queue is wired.
var Default = NewQueue()

// Enqueue appends the job unless one with the same ID is already waiting.
// With a trigger installed, the first enqueue of a burst schedules a single
// flush.
func (q *Queue) Enqueue(j Job) {
	q.mu.Lock()
	if _, dup := q.queued[j.ID]; dup {
		q.mu.Unlock()
		return
	}
	q.queued[j.ID] = struct{}{}
	q.jobs = append(q.jobs, j)

	fire := q.trigger != nil && !q.pending && !q.flushing
	if fire {
		q.pending = true
	}
	q.mu.Unlock()

	if fire {
		q.trigger(q.Flush)
	}
}

// Len returns the number of jobs currently waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

// Flush drains the queue in enqueue order. A job enqueued by a running job
// during the flush is appended and runs before the flush completes. The
// pending flag clears when the drain finishes.
func (q *Queue) Flush() {
	q.mu.Lock()
	if q.flushing {
		q.mu.Unlock()
		return
	}
	q.flushing = true
	q.mu.Unlock()

	for {
		q.mu.Lock()
		if len(q.jobs) == 0 {
			q.pending = false
			q.flushing = false
			after := q.after
			q.after = nil
			q.mu.Unlock()

			for _, fn := range after {
				fn()
			}
			return
		}
		j := q.jobs[0]
		q.jobs = q.jobs[1:]
		delete(q.queued, j.ID)
		q.mu.Unlock()

		j.Run()
	}
}

// NextTick runs fn after the current flush completes. With no flush pending
// or running, fn runs immediately.
func (q *Queue) NextTick(fn func()) {
	q.mu.Lock()
	if q.pending || q.flushing || len(q.jobs) > 0 {
		q.after = append(q.after, fn)
		q.mu.Unlock()
		return
	}
	q.mu.Unlock()
	fn()
}
