package reactive

import "log/slog"

// logger receives misuse diagnostics (reactive() on a non-map, write to a
// setterless computed, write on a readonly object). These are developer
// warnings, never errors: the operation degrades gracefully.
var logger = slog.Default().With("component", "reactive")

// SetLogger replaces the diagnostic logger. Intended for embedders that
// route logs through their own handler.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l.With("component", "reactive")
	}
}
