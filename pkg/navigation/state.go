package navigation

import "strings"

// State is the interaction state owned by a single panel.
// Pinned always implies Expanded.
type State struct {
	Expanded bool `json:"expanded"`
	Pinned   bool `json:"pinned"`
}

// Open reports whether the panel is drawn at full width with inline labels.
func (s State) Open() bool {
	return s.Expanded || s.Pinned
}

// Valid reports whether the state is one of the three reachable states.
func (s State) Valid() bool {
	return !s.Pinned || s.Expanded
}

// Phase names the reachable states of the panel.
type Phase int

const (
	PhaseCollapsed Phase = iota
	PhaseExpandedUnpinned
	PhasePinnedExpanded
)

var phaseNames = map[Phase]string{
	PhaseCollapsed:        "collapsed",
	PhaseExpandedUnpinned: "expanded_unpinned",
	PhasePinnedExpanded:   "pinned_expanded",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// State returns the flags that represent the phase.
func (p Phase) State() State {
	switch p {
	case PhaseExpandedUnpinned:
		return State{Expanded: true}
	case PhasePinnedExpanded:
		return State{Expanded: true, Pinned: true}
	default:
		return State{}
	}
}

// Phase maps the flags back to a phase. The second value is false for the
// unreachable combination of pinned and collapsed.
func (s State) Phase() (Phase, bool) {
	switch {
	case s.Pinned && s.Expanded:
		return PhasePinnedExpanded, true
	case s.Pinned:
		return PhasePinnedExpanded, false
	case s.Expanded:
		return PhaseExpandedUnpinned, true
	default:
		return PhaseCollapsed, true
	}
}

// Event is an input accepted by the panel state machine.
type Event int

const (
	EventPointerEnter Event = iota + 1
	EventPointerLeave
	EventTogglePin
)

var eventNames = map[Event]string{
	EventPointerEnter: "pointer-enter",
	EventPointerLeave: "pointer-leave",
	EventTogglePin:    "pin",
}

func (e Event) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return "unknown"
}

// ParseEvent resolves the wire name of an event.
func ParseEvent(name string) (Event, error) {
	normalized := strings.TrimSpace(strings.ToLower(name))
	for event, eventName := range eventNames {
		if eventName == normalized {
			return event, nil
		}
	}
	return 0, ErrUnknownEvent
}

// transitions is the full table of the machine. Unpinning returns to
// ExpandedUnpinned: the expanded flag is left as it was until the next leave.
var transitions = map[Phase]map[Event]Phase{
	PhaseCollapsed: {
		EventPointerEnter: PhaseExpandedUnpinned,
		EventPointerLeave: PhaseCollapsed,
		EventTogglePin:    PhasePinnedExpanded,
	},
	PhaseExpandedUnpinned: {
		EventPointerEnter: PhaseExpandedUnpinned,
		EventPointerLeave: PhaseCollapsed,
		EventTogglePin:    PhasePinnedExpanded,
	},
	PhasePinnedExpanded: {
		EventPointerEnter: PhasePinnedExpanded,
		EventPointerLeave: PhasePinnedExpanded,
		EventTogglePin:    PhaseExpandedUnpinned,
	},
}

// Transition applies an event to a state and returns the next state. It is a
// pure function; unknown events leave the state untouched.
func Transition(s State, e Event) State {
	phase, _ := s.Phase()
	next, ok := transitions[phase][e]
	if !ok {
		return s
	}
	return next.State()
}
