package reactive

import (
	"runtime"
	"sync"
)

// trackState holds the computation stack for one goroutine. Each goroutine
// driving reactive work gets its own stack, so concurrent sessions do not
// attribute dependency reads to each other's computations.
type trackState struct {
	stack []*Computation
}

// trackStates stores per-goroutine tracking state.
var trackStates sync.Map

// goroutineID returns a unique identifier for the current goroutine by
// parsing the runtime stack header. Implementation detail; never exposed.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// The stack starts with "goroutine <id> ".
	var id uint64
	for i := 10; i < n; i++ {
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

func getTrackState() *trackState {
	gid := goroutineID()
	if st, ok := trackStates.Load(gid); ok {
		return st.(*trackState)
	}
	st := &trackState{}
	trackStates.Store(gid, st)
	return st
}

// currentComputation returns the innermost running computation for this
// goroutine, or nil when no tracking is active.
func currentComputation() *Computation {
	st := getTrackState()
	if len(st.stack) == 0 {
		return nil
	}
	return st.stack[len(st.stack)-1]
}

// pushComputation makes c the attribution target for dependency reads.
func pushComputation(c *Computation) {
	st := getTrackState()
	st.stack = append(st.stack, c)
}

// popComputation restores the previous attribution target. The stack (rather
// than a single variable) is what keeps nested runs correct: an inner
// computation finishing must hand tracking back to the outer one.
func popComputation() {
	st := getTrackState()
	if n := len(st.stack); n > 0 {
		st.stack[n-1] = nil
		st.stack = st.stack[:n-1]
	}
}

// Untracked runs fn without attributing reads to any computation.
func Untracked(fn func()) {
	pushComputation(nil)
	defer popComputation()
	fn()
}
