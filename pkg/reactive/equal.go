package reactive

import "reflect"

// valueChanged reports whether a write should notify subscribers.
// Uses == for common comparable types and reflect.DeepEqual otherwise.
func valueChanged(old, next any) bool {
	switch ov := old.(type) {
	case nil:
		return next != nil
	case int:
		nv, ok := next.(int)
		return !ok || ov != nv
	case int64:
		nv, ok := next.(int64)
		return !ok || ov != nv
	case uint64:
		nv, ok := next.(uint64)
		return !ok || ov != nv
	case float64:
		nv, ok := next.(float64)
		return !ok || ov != nv
	case string:
		nv, ok := next.(string)
		return !ok || ov != nv
	case bool:
		nv, ok := next.(bool)
		return !ok || ov != nv
	default:
		return !reflect.DeepEqual(old, next)
	}
}

// defaultEquals is the generic equality used by Ref and Computed when no
// custom comparison is configured. For interface-typed containers the two
// sides can hold different dynamic types, so every assertion is the
// two-value form.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case nil:
		return any(b) == nil
	case int:
		bv, ok := any(b).(int)
		return ok && av == bv
	case int64:
		bv, ok := any(b).(int64)
		return ok && av == bv
	case uint64:
		bv, ok := any(b).(uint64)
		return ok && av == bv
	case float64:
		bv, ok := any(b).(float64)
		return ok && av == bv
	case string:
		bv, ok := any(b).(string)
		return ok && av == bv
	case bool:
		bv, ok := any(b).(bool)
		return ok && av == bv
	default:
		return reflect.DeepEqual(a, b)
	}
}
