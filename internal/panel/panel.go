// Package panel tracks the chat panel's visibility cycle and unread count.
package panel

// Visibility is the panel's presentation state. Transitions cycle
// closed → opening → open → closing → closed; opening and closing exist only
// to sequence enter/exit presentation and always resolve.
type Visibility int

const (
	Closed Visibility = iota
	Opening
	Open
	Closing
)

func (v Visibility) String() string {
	switch v {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return "unknown"
	}
}

// State holds the panel machine. It is not safe for concurrent use; the
// session controller serializes access.
type State struct {
	vis    Visibility
	unread int
}

// New returns a closed panel with no unread messages.
func New() *State {
	return &State{vis: Closed}
}

// Visibility returns the current state.
func (s *State) Visibility() Visibility {
	return s.vis
}

// EffectivelyOpen reports whether the panel counts as open for unread
// suppression. Opening counts: the user has already asked to see the
// transcript.
func (s *State) EffectivelyOpen() bool {
	return s.vis == Open || s.vis == Opening
}

// RequestOpen starts the open transition. Requests while transitioning or
// already open are ignored. An accepted request clears the unread count.
func (s *State) RequestOpen() bool {
	if s.vis != Closed {
		return false
	}
	s.vis = Opening
	s.unread = 0
	return true
}

// RequestClose starts the close transition. Requests while transitioning or
// already closed are ignored.
func (s *State) RequestClose() bool {
	if s.vis != Open {
		return false
	}
	s.vis = Closing
	return true
}

// FinishTransition resolves an in-progress transition. No-op in a terminal
// state.
func (s *State) FinishTransition() {
	switch s.vis {
	case Opening:
		s.vis = Open
	case Closing:
		s.vis = Closed
	}
}

// MarkUnread increments the unread count unless the panel is effectively
// open.
func (s *State) MarkUnread() {
	if !s.EffectivelyOpen() {
		s.unread++
	}
}

// Unread returns the unread message count.
func (s *State) Unread() int {
	return s.unread
}
