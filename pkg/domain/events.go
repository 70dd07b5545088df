package domain

import (
	"context"
	"time"
)

// EventType defines the category of a lifecycle event.
type EventType string

const (
	EventTurnStart  EventType = "turn_start"
	EventPrompt     EventType = "prompt"
	EventSlotFilled EventType = "slot_filled"
	EventReply      EventType = "reply"
	EventDialogEnd  EventType = "dialog_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp      time.Time `json:"timestamp"`
	Type           EventType `json:"type"`
	ConversationID string    `json:"conversation_id"`
}

// TurnEvent marks the start of turn processing.
type TurnEvent struct {
	EventBase
	Kind   InputKind `json:"kind"`
	Intent string    `json:"intent,omitempty"`
}

// StepEvent marks a prompt being issued (or re-issued after invalid
// input) for a waterfall step.
type StepEvent struct {
	EventBase
	Step  Step `json:"step"`
	Retry bool `json:"retry,omitempty"`
}

// SlotEvent marks a slot receiving a validated value.
type SlotEvent struct {
	EventBase
	Slot Slot `json:"slot"`
}

// DialogEvent marks a dialog reaching a terminal status.
type DialogEvent struct {
	EventBase
	Status    DialogStatus `json:"status"`
	Confirmed bool         `json:"confirmed,omitempty"`
}

// LifecycleHooks defines callbacks for bot observability. All fields
// are optional; nil hooks are skipped.
type LifecycleHooks struct {
	OnTurnStart  func(context.Context, *TurnEvent)
	OnPrompt     func(context.Context, *StepEvent)
	OnSlotFilled func(context.Context, *SlotEvent)
	OnReply      func(context.Context, *TurnEvent)
	OnDialogEnd  func(context.Context, *DialogEvent)
}
