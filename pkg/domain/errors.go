package domain

import "errors"

// ErrSessionNotFound is returned when a conversation ID cannot be found
// in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrNoActivePrompt is returned when a resume is attempted while no
// step is suspended.
var ErrNoActivePrompt = errors.New("no active prompt")

// ErrInvalidInput marks a recoverable validation failure: the raw text
// did not match the suspended slot's expected shape. It never escapes
// the sequencer as a turn error; the step re-prompts instead.
var ErrInvalidInput = errors.New("invalid input")
