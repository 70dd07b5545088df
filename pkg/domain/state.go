package domain

// State is the persisted snapshot of one conversation: the reservation
// being collected plus the dialog execution state. It is loaded at the
// start of every turn and saved before the turn returns, so "suspend"
// means "return to the caller and resume from here later", never a
// blocked goroutine.
type State struct {
	// ConversationID identifies the owning conversation.
	ConversationID string `json:"conversation_id"`

	// Greeted records that the welcome message has been sent. The
	// first contact on a conversation only greets; no routing happens
	// on that turn.
	Greeted bool `json:"greeted,omitempty"`

	// Reservation holds the slots collected so far.
	Reservation ReservationState `json:"reservation"`

	// Dialog is the waterfall execution state.
	Dialog DialogState `json:"dialog"`

	// History tracks the steps visited, for debugging and tests.
	History []Step `json:"history,omitempty"`
}

// NewState creates a clean state for a conversation. A fresh or unknown
// conversation ID always yields this default rather than an error.
func NewState(conversationID string) *State {
	return &State{
		ConversationID: conversationID,
		Dialog:         DialogState{Status: DialogEmpty},
	}
}

// Clone returns a deep copy, so stores and callers cannot alias each
// other's mutable state.
func (s *State) Clone() *State {
	cp := *s
	cp.History = append([]Step(nil), s.History...)
	return &cp
}
