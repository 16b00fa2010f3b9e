package runtime

import (
	"sync"

	"github.com/quartzui/quartz/pkg/reactive"
	"github.com/quartzui/quartz/pkg/vdom"
)

// Instance is the per-mount bookkeeping for one component: its props and
// slots, the previously rendered subtree, the reactive update binding, and
// the registered lifecycle hooks.
type Instance struct {
	// Comp is the component descriptor from the virtual node.
	Comp vdom.Component

	// VNode is the component's own virtual node in the parent tree.
	VNode *vdom.VNode

	// Props is the prop bag passed by the parent. Replaced wholesale on
	// every parent-driven update.
	Props vdom.Props

	// Slots holds child nodes grouped by slot name. Children of the
	// component node land in the default slot.
	Slots map[string][]*vdom.VNode

	// SubTree is the root of the previously rendered output.
	SubTree *vdom.VNode

	// IsMounted flips to true after the first mount completes.
	IsMounted bool

	// Update is the deferred computation driving re-renders. Stopped on
	// unmount so a destroyed component's render never runs again.
	Update *reactive.Computation

	hooks map[HookPhase][]func()
}

// DefaultSlot is the slot name children of a component node land in.
const DefaultSlot = "default"

// NewInstance creates an instance for the given component node, capturing
// props and slotting its children.
func NewInstance(n *vdom.VNode) *Instance {
	inst := &Instance{
		Comp:  n.Comp,
		VNode: n,
		Props: n.Props,
		hooks: make(map[HookPhase][]func()),
	}
	if len(n.Children) > 0 {
		inst.Slots = map[string][]*vdom.VNode{
			DefaultSlot: n.Children,
		}
	}
	return inst
}

// Prop returns the named prop, or nil when absent.
func (i *Instance) Prop(key string) any {
	if i.Props == nil {
		return nil
	}
	return i.Props[key]
}

// Slot returns the nodes for the named slot.
func (i *Instance) Slot(name string) []*vdom.VNode {
	return i.Slots[name]
}

// SetNext repoints the instance at a new component node from a parent
// re-render, adopting its props and slots.
func (i *Instance) SetNext(n *vdom.VNode) {
	i.VNode = n
	i.Props = n.Props
	if len(n.Children) > 0 {
		i.Slots = map[string][]*vdom.VNode{DefaultSlot: n.Children}
	} else {
		i.Slots = nil
	}
}

// RenderSubTree invokes the component's render contract. A nil component
// or nil render output degrades to an empty fragment with a diagnostic,
// never an error.
func (i *Instance) RenderSubTree() *vdom.VNode {
	if i.Comp == nil {
		logger.Warn("component missing render function")
		return vdom.NewFragment()
	}
	sub := i.Comp.Render()
	if sub == nil {
		return vdom.NewFragment()
	}
	return sub
}

// SetupComponent is the optional stateful setup contract. Setup runs once
// at mount, before the first render, with the instance current so hook
// registration attaches to it.
type SetupComponent interface {
	vdom.Component
	Setup(*Instance)
}

// Setup runs the component's setup contract if it has one.
func (i *Instance) Setup() {
	s, ok := i.Comp.(SetupComponent)
	if !ok {
		return
	}
	prev := swapCurrentInstance(i)
	defer swapCurrentInstance(prev)
	s.Setup(i)
}

// currentInstance is the instance whose setup is running, so package-level
// hook registration knows where to attach.
var (
	currentMu       sync.Mutex
	currentInstance *Instance
)

func swapCurrentInstance(i *Instance) *Instance {
	currentMu.Lock()
	defer currentMu.Unlock()
	prev := currentInstance
	currentInstance = i
	return prev
}

// Current returns the instance currently in setup, or nil outside setup.
func Current() *Instance {
	currentMu.Lock()
	defer currentMu.Unlock()
	return currentInstance
}
