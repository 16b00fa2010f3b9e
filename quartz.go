// Package quartz is the public entry point for the Quartz reactive UI
// runtime.
//
// Quartz combines a dependency-tracking reactivity layer (pkg/reactive)
// with a virtual-tree reconciler (pkg/renderer) and a component runtime
// (pkg/runtime). Applications describe UI as components rendering virtual
// nodes; reads of reactive state during render subscribe the component, and
// writes re-render exactly what depended on them.
//
//	app := quartz.CreateApp(&Counter{})
//	doc := dom.NewDocument()
//	app.Mount(doc, doc.Body)
package quartz

import (
	"github.com/quartzui/quartz/pkg/reactive"
	"github.com/quartzui/quartz/pkg/renderer"
	"github.com/quartzui/quartz/pkg/scheduler"
	"github.com/quartzui/quartz/pkg/vdom"
)

// App is a mountable application: a root component plus the renderer
// configuration used when mounting it.
type App struct {
	root vdom.Component
	opts []renderer.Option

	renderer *renderer.Renderer
	vnode    *vdom.VNode
}

// CreateApp creates an application around a root component.
func CreateApp(root vdom.Component, opts ...renderer.Option) *App {
	return &App{
		root: root,
		opts: opts,
	}
}

// Mount renders the root component into the container using the given
// platform adapter and returns the renderer driving the app. Subsequent
// reactive writes re-render through the renderer's queue; the host flushes
// it after each synchronous burst.
func (a *App) Mount(adapter renderer.Adapter, container renderer.Node) *renderer.Renderer {
	a.renderer = renderer.New(adapter, a.opts...)
	a.vnode = vdom.H(a.root)
	a.renderer.Render(a.vnode, container)
	return a.renderer
}

// Unmount tears the application down, disposing component bindings.
func (a *App) Unmount() {
	if a.renderer == nil || a.vnode == nil {
		return
	}
	a.renderer.Unmount(a.vnode)
	a.vnode = nil
}

// Re-exports of the common surface so simple applications import one
// package.

// VNode is the virtual tree node.
type VNode = vdom.VNode

// Props holds element attributes and event handlers.
type Props = vdom.Props

// Component is anything that can render to a VNode.
type Component = vdom.Component

// Adapter is the platform backend contract.
type Adapter = renderer.Adapter

// H constructs a virtual node.
var H = vdom.H

// NewText creates a text node.
var NewText = vdom.NewText

// NewFragment creates a fragment node.
var NewFragment = vdom.NewFragment

// Reactive wraps a map in an observed object.
var Reactive = reactive.Reactive

// Readonly wraps a map in a read-only observed view.
var Readonly = reactive.Readonly

// Effect creates and runs a reactive computation.
var Effect = reactive.Effect

// Flush drains the default update queue.
func Flush() {
	scheduler.Default.Flush()
}
