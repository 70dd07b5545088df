package dialog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmoraisb/maitred/pkg/domain"
)

// Prompt is the capability a waterfall step needs: render its question,
// and validate-and-apply the raw answer. Implementations are stateless;
// all mutable data lives in the conversation state.
type Prompt interface {
	// Step identifies the waterfall position this prompt owns.
	Step() domain.Step

	// Skippable reports whether the step may be skipped when its slot
	// is already filled. The confirmation step always prompts.
	Skippable() bool

	// Filled reports whether the step's slot is already present.
	Filled(state *domain.State) bool

	// Render produces the step's question.
	Render(state *domain.State) domain.Reply

	// Retry produces the re-prompt issued after invalid input.
	Retry(state *domain.State) domain.Reply

	// Apply validates raw input and writes it into the state. On
	// validation failure it returns an error wrapping
	// domain.ErrInvalidInput and leaves the state unchanged.
	Apply(state *domain.State, raw string) error
}

const (
	msgAskTime       = "What time would you like the reservation for?"
	msgAskPartySize  = "How many people will be dining?"
	msgRetryNumber   = "I need a whole number of guests. How many people should I book for?"
	msgAskName       = "What name should I put on the reservation?"
	msgRetryYesNo    = "Please answer yes or no."
	msgEmptyAnswer   = "Sorry, I didn't catch that."
	confirmQuestion  = "I have %s. Shall I book it? (yes/no)"
	msgBooked        = "All set, %s. Your table for %s people is booked for %s. See you then!"
	msgDeclined      = "No problem, I won't book anything. Have a great day!"
	msgDialogTrouble = "Sorry, something went wrong on my end. Let's start over whenever you're ready."
)

// timePrompt collects the reservation time. Free-text pass-through:
// anything non-empty is accepted as-is.
type timePrompt struct{}

func (timePrompt) Step() domain.Step { return domain.StepTime }

func (timePrompt) Skippable() bool { return true }

func (timePrompt) Filled(state *domain.State) bool { return state.Reservation.HasTime() }

func (timePrompt) Render(*domain.State) domain.Reply { return domain.TextReply(msgAskTime) }

func (timePrompt) Retry(*domain.State) domain.Reply {
	return domain.TextReply(msgEmptyAnswer + " " + msgAskTime)
}

func (timePrompt) Apply(state *domain.State, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("time: %w", domain.ErrInvalidInput)
	}
	return state.Reservation.Set(domain.SlotTime, raw)
}

// partySizePrompt collects the number of guests. Valid iff the raw text
// parses as a non-negative integer.
type partySizePrompt struct{}

func (partySizePrompt) Step() domain.Step { return domain.StepPartySize }

func (partySizePrompt) Skippable() bool { return true }

func (partySizePrompt) Filled(state *domain.State) bool { return state.Reservation.HasPartySize() }

func (partySizePrompt) Render(*domain.State) domain.Reply { return domain.TextReply(msgAskPartySize) }

func (partySizePrompt) Retry(*domain.State) domain.Reply { return domain.TextReply(msgRetryNumber) }

func (partySizePrompt) Apply(state *domain.State, raw string) error {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fmt.Errorf("party size %q: %w", raw, domain.ErrInvalidInput)
	}
	return state.Reservation.Set(domain.SlotPartySize, raw)
}

// namePrompt collects the reservation name. Free-text pass-through.
type namePrompt struct{}

func (namePrompt) Step() domain.Step { return domain.StepName }

func (namePrompt) Skippable() bool { return true }

func (namePrompt) Filled(state *domain.State) bool { return state.Reservation.HasName() }

func (namePrompt) Render(*domain.State) domain.Reply { return domain.TextReply(msgAskName) }

func (namePrompt) Retry(*domain.State) domain.Reply {
	return domain.TextReply(msgEmptyAnswer + " " + msgAskName)
}

func (namePrompt) Apply(state *domain.State, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("name: %w", domain.ErrInvalidInput)
	}
	return state.Reservation.Set(domain.SlotName, raw)
}

// confirmPrompt presents the collected slots and expects a yes/no
// answer. It is never skipped.
type confirmPrompt struct{}

func (confirmPrompt) Step() domain.Step { return domain.StepConfirm }

func (confirmPrompt) Skippable() bool { return false }

func (confirmPrompt) Filled(*domain.State) bool { return false }

func (confirmPrompt) Render(state *domain.State) domain.Reply {
	return domain.TextReply(fmt.Sprintf(confirmQuestion, state.Reservation.Summary()))
}

func (c confirmPrompt) Retry(state *domain.State) domain.Reply {
	return domain.TextReply(msgRetryYesNo + " " + c.Render(state).Text)
}

func (confirmPrompt) Apply(state *domain.State, raw string) error {
	answer, err := parseConfirmation(raw)
	if err != nil {
		return err
	}
	state.Dialog.Confirmed = answer
	return nil
}

// parseConfirmation normalizes a yes/no-style answer.
func parseConfirmation(raw string) (bool, error) {
	clean := strings.ToLower(strings.TrimSpace(raw))
	switch clean {
	case "y", "yes", "true", "1":
		return true, nil
	case "n", "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("confirmation %q: %w", raw, domain.ErrInvalidInput)
}
