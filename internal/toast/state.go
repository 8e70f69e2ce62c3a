package toast

// State is a toast's lifecycle state.
type State int

const (
	// StateEntering is the initial state: attached and animating in.
	StateEntering State = iota
	// StateVisible is the steady state while the auto-dismiss timer runs.
	StateVisible
	// StatePaused means the pointer is over the toast and no timer is armed.
	StatePaused
	// StateExiting means dismissal has started and cannot be cancelled.
	StateExiting
	// StateRemoved is terminal: the toast is detached.
	StateRemoved
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateEntering:
		return "entering"
	case StateVisible:
		return "visible"
	case StatePaused:
		return "paused"
	case StateExiting:
		return "exiting"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Active reports whether a toast in this state is still hosted by the container.
func (s State) Active() bool {
	return s != StateRemoved
}

// Event drives a lifecycle transition.
type Event int

const (
	// EventFrame is the first animation frame after attach.
	EventFrame Event = iota
	// EventPointerEnter is the pointer moving onto the toast.
	EventPointerEnter
	// EventPointerLeave is the pointer moving off the toast.
	EventPointerLeave
	// EventTimeout is the auto-dismiss timer firing.
	EventTimeout
	// EventFadeOut is the exit delay elapsing.
	EventFadeOut
	// EventDetach is the removal delay elapsing.
	EventDetach
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventFrame:
		return "frame"
	case EventPointerEnter:
		return "pointer-enter"
	case EventPointerLeave:
		return "pointer-leave"
	case EventTimeout:
		return "timeout"
	case EventFadeOut:
		return "fade-out"
	case EventDetach:
		return "detach"
	default:
		return "unknown"
	}
}

// transitions is the complete lifecycle table. Pairs not listed are ignored.
var transitions = map[State]map[Event]State{
	StateEntering: {
		EventFrame:        StateVisible,
		EventPointerEnter: StatePaused,
		EventTimeout:      StateExiting,
	},
	StateVisible: {
		EventPointerEnter: StatePaused,
		EventTimeout:      StateExiting,
	},
	StatePaused: {
		EventPointerLeave: StateVisible,
	},
	StateExiting: {
		EventFadeOut: StateExiting,
		EventDetach:  StateRemoved,
	},
}

// Next returns the state reached from s on e, and whether e applies to s.
func Next(s State, e Event) (State, bool) {
	next, ok := transitions[s][e]
	if !ok {
		return s, false
	}
	return next, true
}
