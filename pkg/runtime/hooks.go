package runtime

import "log/slog"

// logger receives lifecycle diagnostics: hook panics and misuse warnings.
var logger = slog.Default().With("component", "runtime")

// SetLogger replaces the diagnostic logger.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l.With("component", "runtime")
	}
}

// HookPhase identifies a lifecycle point.
type HookPhase uint8

const (
	HookBeforeMount HookPhase = iota + 1
	HookMounted
	HookBeforeUpdate
	HookUpdated
	HookBeforeUnmount
	HookUnmounted
)

// String returns a human-readable name for the phase.
func (p HookPhase) String() string {
	switch p {
	case HookBeforeMount:
		return "beforeMount"
	case HookMounted:
		return "mounted"
	case HookBeforeUpdate:
		return "beforeUpdate"
	case HookUpdated:
		return "updated"
	case HookBeforeUnmount:
		return "beforeUnmount"
	case HookUnmounted:
		return "unmounted"
	default:
		return "unknown"
	}
}

// On registers a hook on the instance for the given phase.
func (i *Instance) On(phase HookPhase, fn func()) {
	if fn == nil {
		return
	}
	i.hooks[phase] = append(i.hooks[phase], fn)
}

// CallHook invokes every hook registered for the phase, in registration
// order. A panicking hook is recovered and logged with its phase; it never
// prevents sibling hooks or the surrounding mount/update/unmount sequence
// from completing.
func CallHook(i *Instance, phase HookPhase) {
	if i == nil {
		return
	}
	for _, fn := range i.hooks[phase] {
		runHook(fn, phase)
	}
}

func runHook(fn func(), phase HookPhase) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("lifecycle hook panicked", "phase", phase.String(), "panic", r)
		}
	}()
	fn()
}

// register attaches a hook to the instance currently in setup. Calling a
// registration function outside setup is a diagnostic no-op.
func register(phase HookPhase, fn func()) {
	inst := Current()
	if inst == nil {
		logger.Warn("lifecycle hook registered outside component setup", "phase", phase.String())
		return
	}
	inst.On(phase, fn)
}

// OnBeforeMount registers a hook run immediately before the first render.
func OnBeforeMount(fn func()) { register(HookBeforeMount, fn) }

// OnMounted registers a hook run after the first mount completes.
func OnMounted(fn func()) { register(HookMounted, fn) }

// OnBeforeUpdate registers a hook run before a non-initial re-render.
func OnBeforeUpdate(fn func()) { register(HookBeforeUpdate, fn) }

// OnUpdated registers a hook run after a re-render's patch completes.
func OnUpdated(fn func()) { register(HookUpdated, fn) }

// OnBeforeUnmount registers a hook run before the component unmounts.
func OnBeforeUnmount(fn func()) { register(HookBeforeUnmount, fn) }

// OnUnmounted registers a hook run after the component unmounts.
func OnUnmounted(fn func()) { register(HookUnmounted, fn) }
