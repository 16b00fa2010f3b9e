package reactive

import (
	"sync"
)

// KeyValue is the dependency key used by single-slot containers (Ref,
// Computed) when they register themselves in the graph.
const KeyValue = "value"

// KeyIterate is the synthetic dependency key recorded for enumeration reads
// (Keys, Len). It fires on key addition and removal rather than on value
// changes of a specific key.
const KeyIterate = "$iterate"

// depSet is the set of computations subscribed to one (target, key) pair.
type depSet struct {
	target any
	key    string

	// subs is keyed by computation ID so unsubscription is O(1).
	subs map[uint64]*Computation
}

// Graph is the process-wide dependency registry. It maps an observed target
// to a per-key set of subscribed computations.
//
// A (target, key, computation) triple is present iff the computation's most
// recent run read that key. Empty sets are deleted eagerly so the graph does
// not pin targets that are no longer observed.
type Graph struct {
	mu      sync.Mutex
	targets map[any]map[string]*depSet
}

// NewGraph creates an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{
		targets: make(map[any]map[string]*depSet),
	}
}

// DefaultGraph is the graph used by the package-level constructors. It lives
// for the whole process.
var DefaultGraph = NewGraph()

// Track subscribes the currently running computation to (target, key).
// If no computation is running this is a no-op.
func (g *Graph) Track(target any, key string) {
	c := currentComputation()
	if c == nil || !c.active {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	keys := g.targets[target]
	if keys == nil {
		keys = make(map[string]*depSet)
		g.targets[target] = keys
	}

	set := keys[key]
	if set == nil {
		set = &depSet{
			target: target,
			key:    key,
			subs:   make(map[uint64]*Computation),
		}
		keys[key] = set
	}

	if _, ok := set.subs[c.id]; ok {
		return
	}
	set.subs[c.id] = c
	c.deps = append(c.deps, set)
}

// Trigger notifies every computation subscribed to (target, key).
// Unknown targets and keys are silent no-ops.
//
// The subscriber set is snapshotted before iteration: a computation
// re-running inside the loop re-subscribes and must not perturb the walk.
// The computation currently running is skipped so a write made inside its
// own execution cannot recurse into itself.
func (g *Graph) Trigger(target any, key string) {
	g.mu.Lock()
	var subs []*Computation
	if keys := g.targets[target]; keys != nil {
		if set := keys[key]; set != nil {
			subs = make([]*Computation, 0, len(set.subs))
			for _, c := range set.subs {
				subs = append(subs, c)
			}
		}
	}
	g.mu.Unlock()

	running := currentComputation()
	for _, c := range subs {
		if c == running {
			continue
		}
		if c.scheduler != nil {
			c.scheduler(c)
		} else {
			c.Run()
		}
	}
}

// cleanup removes the computation from every set it subscribed to during its
// last run and clears its subscription list.
func (g *Graph) cleanup(c *Computation) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, set := range c.deps {
		delete(set.subs, c.id)
		if len(set.subs) == 0 {
			if keys := g.targets[set.target]; keys != nil {
				delete(keys, set.key)
				if len(keys) == 0 {
					delete(g.targets, set.target)
				}
			}
		}
	}
	c.deps = c.deps[:0]
}

// Track registers a dependency in the default graph.
func Track(target any, key string) {
	DefaultGraph.Track(target, key)
}

// Trigger notifies subscribers in the default graph.
func Trigger(target any, key string) {
	DefaultGraph.Trigger(target, key)
}
