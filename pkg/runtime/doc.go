// Package runtime provides component instance bookkeeping for Quartz.
//
// An Instance binds one mounted component to its props, slots, previously
// rendered subtree, and reactive update computation. The reconciler creates
// instances when it mounts component nodes and drives their update path;
// this package owns the state and the lifecycle hook machinery.
//
// Components implement vdom.Component. A component that also implements
// SetupComponent gets a one-time Setup call at mount, during which the
// package-level hook registration functions (OnMounted, OnBeforeUnmount,
// ...) attach to the mounting instance:
//
//	type Counter struct {
//	    count *reactive.Ref[int]
//	}
//
//	func (c *Counter) Setup(inst *runtime.Instance) {
//	    c.count = reactive.NewRef(0)
//	    runtime.OnMounted(func() { log.Println("counter mounted") })
//	}
//
//	func (c *Counter) Render() *vdom.VNode {
//	    return vdom.H("span", fmt.Sprint(c.count.Get()))
//	}
package runtime
