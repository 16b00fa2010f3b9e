// Package renderer implements the Quartz reconciler.
//
// A Renderer consumes a platform Adapter and implements mount, patch, and
// unmount over virtual node trees. Diffing reuses platform nodes whenever
// the old and new virtual nodes are the same type (equal type and key) and
// replaces them otherwise. Child lists are reconciled with shared prefix
// and suffix trimming; the unresolved middle section is unmounted and
// remounted in order.
//
// Component nodes bind a deferred reactive computation at mount. Writes to
// reactive state read during render enqueue the component's update job into
// the renderer's scheduler queue; the host flushes the queue once its
// synchronous work has unwound, so a burst of writes produces one re-render.
package renderer
