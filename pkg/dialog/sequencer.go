package dialog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmoraisb/maitred/internal/logging"
	"github.com/dmoraisb/maitred/pkg/domain"
)

// Sequencer drives the waterfall. It owns DialogState exclusively:
// callers start, resume or cancel it, and read Status to branch.
//
// The sequencer never blocks waiting for the user. "Waiting" is a
// status written into the persisted state; execution resumes on the
// next turn from that snapshot.
type Sequencer struct {
	prompts []Prompt
	hooks   domain.LifecycleHooks
	logger  *slog.Logger
}

// Option configures the Sequencer.
type Option func(*Sequencer)

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Sequencer) {
		s.hooks = hooks
	}
}

// WithLogger sets a structured logger for the sequencer.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sequencer) {
		s.logger = logger
	}
}

// NewSequencer creates the reservation waterfall in its fixed order:
// Time, PartySize, Name, Confirm.
func NewSequencer(opts ...Option) *Sequencer {
	s := &Sequencer{
		prompts: []Prompt{timePrompt{}, partySizePrompt{}, namePrompt{}, confirmPrompt{}},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Begin starts the waterfall for a conversation. Steps whose slots are
// already filled (seeded from the initial utterance) are skipped in the
// same pass, so the first prompt the user sees is the first unsatisfied
// step, not necessarily step one.
func (s *Sequencer) Begin(ctx context.Context, state *domain.State) ([]domain.Reply, error) {
	state.Dialog.Status = domain.DialogWaiting
	state.Dialog.Confirmed = false
	return s.advance(ctx, state, 0)
}

// Resume feeds the inbound text to the suspended step. Invalid input
// re-issues the step's retry prompt and stays waiting on the same step;
// valid input is written to the reservation and the waterfall advances.
func (s *Sequencer) Resume(ctx context.Context, state *domain.State, raw string) ([]domain.Reply, error) {
	if state.Dialog.Status != domain.DialogWaiting {
		return nil, domain.ErrNoActivePrompt
	}

	idx := s.indexOf(state.Dialog.Step)
	if idx < 0 {
		// No handler for the recorded step: reset rather than stay stuck.
		s.logger.Warn("no prompt for suspended step, cancelling dialog",
			"conversation_id", state.ConversationID,
			"step", state.Dialog.Step,
		)
		return []domain.Reply{s.Cancel(ctx, state)}, nil
	}

	prompt := s.prompts[idx]
	if err := prompt.Apply(state, raw); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			s.emitPrompt(ctx, state, prompt.Step(), true)
			return []domain.Reply{prompt.Retry(state)}, nil
		}
		return nil, fmt.Errorf("apply step %s: %w", prompt.Step(), err)
	}

	if prompt.Step() == domain.StepConfirm {
		return s.finish(ctx, state)
	}

	s.emitSlotFilled(ctx, state, prompt.Step())
	return s.advance(ctx, state, idx+1)
}

// Cancel discards all dialog execution state for the conversation and
// returns the notice shown to the user. The reservation record is left
// intact so a later dialog can still skip satisfied steps.
func (s *Sequencer) Cancel(ctx context.Context, state *domain.State) domain.Reply {
	state.Dialog.Reset()
	state.Dialog.Status = domain.DialogCancelled
	s.emitDialogEnd(ctx, state)
	state.Dialog.Status = domain.DialogEmpty
	return domain.TextReply(msgDialogTrouble)
}

// advance walks the waterfall from the given index, skipping filled
// steps, and suspends on the first one that needs an answer.
func (s *Sequencer) advance(ctx context.Context, state *domain.State, from int) ([]domain.Reply, error) {
	for i := from; i < len(s.prompts); i++ {
		prompt := s.prompts[i]
		if prompt.Skippable() && prompt.Filled(state) {
			state.History = append(state.History, prompt.Step())
			continue
		}

		state.Dialog.Step = prompt.Step()
		state.History = append(state.History, prompt.Step())
		s.emitPrompt(ctx, state, prompt.Step(), false)
		return []domain.Reply{prompt.Render(state)}, nil
	}

	// Every prompt skipped; nothing left to ask. The confirm step is
	// never skippable, so this is unreachable in practice. Reset
	// defensively rather than leaving the dialog stuck.
	s.logger.Warn("waterfall exhausted without a prompt, cancelling dialog",
		"conversation_id", state.ConversationID,
	)
	return []domain.Reply{s.Cancel(ctx, state)}, nil
}

// finish is the terminal step: it branches on the confirmation answer
// and closes the dialog.
func (s *Sequencer) finish(ctx context.Context, state *domain.State) ([]domain.Reply, error) {
	state.Dialog.Step = domain.StepDone
	state.History = append(state.History, domain.StepDone)
	state.Dialog.Status = domain.DialogComplete

	var reply domain.Reply
	if state.Dialog.Confirmed {
		r := state.Reservation
		reply = domain.TextReply(fmt.Sprintf(msgBooked, r.Name, r.PartySize, r.Time))
	} else {
		reply = domain.TextReply(msgDeclined)
	}

	s.emitDialogEnd(ctx, state)
	return []domain.Reply{reply}, nil
}

// End releases the completed dialog so the next unrelated message is
// treated as a fresh turn.
func (s *Sequencer) End(state *domain.State) {
	state.Dialog.Reset()
}

func (s *Sequencer) indexOf(step domain.Step) int {
	for i, p := range s.prompts {
		if p.Step() == step {
			return i
		}
	}
	return -1
}

func (s *Sequencer) emitPrompt(ctx context.Context, state *domain.State, step domain.Step, retry bool) {
	if s.hooks.OnPrompt == nil {
		return
	}
	s.hooks.OnPrompt(ctx, &domain.StepEvent{
		EventBase: eventBase(domain.EventPrompt, state.ConversationID),
		Step:      step,
		Retry:     retry,
	})
}

func (s *Sequencer) emitSlotFilled(ctx context.Context, state *domain.State, step domain.Step) {
	if s.hooks.OnSlotFilled == nil {
		return
	}
	s.hooks.OnSlotFilled(ctx, &domain.SlotEvent{
		EventBase: eventBase(domain.EventSlotFilled, state.ConversationID),
		Slot:      domain.Slot(step),
	})
}

func (s *Sequencer) emitDialogEnd(ctx context.Context, state *domain.State) {
	if s.hooks.OnDialogEnd == nil {
		return
	}
	s.hooks.OnDialogEnd(ctx, &domain.DialogEvent{
		EventBase: eventBase(domain.EventDialogEnd, state.ConversationID),
		Status:    state.Dialog.Status,
		Confirmed: state.Dialog.Confirmed,
	})
}

func eventBase(t domain.EventType, conversationID string) domain.EventBase {
	return domain.EventBase{
		Timestamp:      time.Now().UTC(),
		Type:           t,
		ConversationID: conversationID,
	}
}
