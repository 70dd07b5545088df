package domain

import (
	"fmt"
	"strings"
)

// Slot identifies a single piece of information the dialog collects.
type Slot string

const (
	SlotTime      Slot = "time"
	SlotPartySize Slot = "party_size"
	SlotName      Slot = "name"
)

// ReservationState is the reservation-in-progress record for one
// conversation. A field counts as present once a non-empty value has
// been written to it; steps that find their slot present skip their
// own prompt.
type ReservationState struct {
	// Time is the requested reservation time, natural-language or
	// normalized ("2026-08-26 19:00").
	Time string `json:"time,omitempty"`

	// PartySize is the number of guests, kept as the validated raw
	// text (e.g. "4").
	PartySize string `json:"party_size,omitempty"`

	// Name is the full name the reservation is held under.
	Name string `json:"name,omitempty"`
}

// HasTime reports whether the time slot has been filled.
func (r *ReservationState) HasTime() bool { return strings.TrimSpace(r.Time) != "" }

// HasPartySize reports whether the party-size slot has been filled.
func (r *ReservationState) HasPartySize() bool { return strings.TrimSpace(r.PartySize) != "" }

// HasName reports whether the name slot has been filled.
func (r *ReservationState) HasName() bool { return strings.TrimSpace(r.Name) != "" }

// Set writes a slot value. Validation is the caller's responsibility;
// Set itself never rejects input.
func (r *ReservationState) Set(slot Slot, value string) error {
	switch slot {
	case SlotTime:
		r.Time = value
	case SlotPartySize:
		r.PartySize = value
	case SlotName:
		r.Name = value
	default:
		return fmt.Errorf("unknown slot %q", slot)
	}
	return nil
}

// Summary renders the human-readable recap used by the confirmation
// prompt.
func (r *ReservationState) Summary() string {
	return fmt.Sprintf("a reservation for %s for %s people", r.Time, r.PartySize)
}
