package maitred

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmoraisb/maitred/internal/logging"
	"github.com/dmoraisb/maitred/pkg/dialog"
	"github.com/dmoraisb/maitred/pkg/domain"
	"github.com/dmoraisb/maitred/pkg/intent"
	"github.com/dmoraisb/maitred/pkg/ports"
	"github.com/dmoraisb/maitred/pkg/session"
)

// WelcomeText is the fixed greeting sent on a conversation's first
// contact. No routing happens on that turn.
const WelcomeText = "Welcome! I can book you a table, show you the menu, or answer questions about the restaurant."

// FallbackText is the reply of last resort, sent when neither an intent
// nor a knowledge-base answer matched.
const FallbackText = "Sorry, I didn't understand that. Could you rephrase?"

// Bot is the turn controller: it orchestrates one inbound message end
// to end, resuming an in-flight dialog when one exists and routing by
// intent otherwise. State is always persisted before a turn returns.
type Bot struct {
	sessions   *session.Manager
	sequencer  *dialog.Sequencer
	router     *intent.Router
	recognizer ports.Recognizer
	kb         ports.Answerer
	speech     ports.SpeechGenerator
	locker     ports.DistributedLocker
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
}

// Option configures the Bot.
type Option func(*Bot)

// WithRecognizer sets the intent recognizer. Without one every message
// outside an active dialog goes to the fallback tier.
func WithRecognizer(r ports.Recognizer) Option {
	return func(b *Bot) {
		b.recognizer = r
	}
}

// WithKnowledgeBase sets the fallback question answerer.
func WithKnowledgeBase(a ports.Answerer) Option {
	return func(b *Bot) {
		b.kb = a
	}
}

// WithSpeech sets the speech markup generator applied to every reply.
func WithSpeech(g ports.SpeechGenerator) Option {
	return func(b *Bot) {
		b.speech = g
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(b *Bot) {
		b.hooks = hooks
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bot) {
		b.logger = logger
	}
}

// WithLocker enables distributed locking for multi-replica deployments.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(b *Bot) {
		b.locker = locker
	}
}

// WithRouter overrides the intent router.
func WithRouter(r *intent.Router) Option {
	return func(b *Bot) {
		b.router = r
	}
}

// New creates a Bot backed by the given session store. A nil store is a
// configuration error: fatal at startup, never recovered mid-turn.
func New(store ports.SessionStore, opts ...Option) (*Bot, error) {
	if store == nil {
		return nil, errors.New("maitred: session store is required")
	}

	b := &Bot{
		router: intent.NewRouter(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}

	sessionOpts := []session.Option{session.WithLogger(b.logger)}
	if b.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(b.locker))
	}
	b.sessions = session.NewManager(store, sessionOpts...)
	b.sequencer = dialog.NewSequencer(
		dialog.WithHooks(b.hooks),
		dialog.WithLogger(b.logger),
	)
	return b, nil
}

// Turn processes one inbound event for a conversation and returns the
// replies to deliver. Turns for the same conversation are serialized;
// turns for different conversations run independently.
func (b *Bot) Turn(ctx context.Context, input domain.TurnInput) ([]domain.Reply, error) {
	if input.ConversationID == "" {
		return nil, errors.New("maitred: conversation ID is required")
	}
	if input.Kind == "" {
		input.Kind = domain.KindMessage
	}

	var replies []domain.Reply
	err := b.sessions.WithLock(ctx, input.ConversationID, func(ctx context.Context) error {
		store := b.sessions.Store()

		state, err := store.Load(ctx, input.ConversationID)
		if errors.Is(err, domain.ErrSessionNotFound) {
			state = domain.NewState(input.ConversationID)
		} else if err != nil {
			return fmt.Errorf("load conversation: %w", err)
		}

		replies, err = b.processTurn(ctx, state, input)

		// Persist before returning, regardless of which branch ran.
		if saveErr := store.Save(ctx, input.ConversationID, state); saveErr != nil {
			if err == nil {
				err = fmt.Errorf("save conversation: %w", saveErr)
			} else {
				b.logger.Error("failed to save conversation state",
					"conversation_id", input.ConversationID,
					"err", saveErr,
				)
			}
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	b.decorate(replies, input.Locale)
	b.emitReply(ctx, input)
	return replies, nil
}

func (b *Bot) processTurn(ctx context.Context, state *domain.State, input domain.TurnInput) ([]domain.Reply, error) {
	// First contact: greet and stop. No dialog or routing this turn.
	if input.Kind == domain.KindJoin {
		b.emitTurnStart(ctx, input, "")
		if state.Greeted {
			return nil, nil
		}
		state.Greeted = true
		return []domain.Reply{domain.TextReply(WelcomeText)}, nil
	}

	state.Greeted = true

	var replies []domain.Reply
	switch state.Dialog.Status {
	case domain.DialogWaiting:
		b.emitTurnStart(ctx, input, "")
		resumed, err := b.sequencer.Resume(ctx, state, input.Text)
		if err != nil {
			return nil, fmt.Errorf("resume dialog: %w", err)
		}
		if state.Dialog.Status == domain.DialogComplete {
			b.sequencer.End(state)
		}
		replies = resumed

	case domain.DialogEmpty:
		// No active dialog; the router decides below and the turn-start
		// event carries the recognized intent.

	default:
		// Unrecognized status: cancel all dialog state rather than
		// leaving the conversation stuck.
		b.emitTurnStart(ctx, input, "")
		b.logger.Warn("unexpected dialog status, cancelling",
			"conversation_id", state.ConversationID,
			"status", state.Dialog.Status,
		)
		replies = []domain.Reply{b.sequencer.Cancel(ctx, state)}
	}

	if len(replies) > 0 || state.Dialog.Active() {
		return replies, nil
	}

	return b.route(ctx, state, input)
}

// route consults the recognizer and the intent router for a turn no
// dialog claimed.
func (b *Bot) route(ctx context.Context, state *domain.State, input domain.TurnInput) ([]domain.Reply, error) {
	res := b.recognize(ctx, input.Text)

	var intentName string
	if res != nil {
		intentName = string(res.TopIntent)
	}
	b.emitTurnStart(ctx, input, intentName)

	action := b.router.Route(res, state.Dialog.Active())
	switch action.Kind {
	case intent.ActionReply:
		return action.Replies, nil

	case intent.ActionStartDialog:
		if action.Seed.Time != "" {
			_ = state.Reservation.Set(domain.SlotTime, action.Seed.Time)
		}
		if action.Seed.PartySize != "" {
			_ = state.Reservation.Set(domain.SlotPartySize, action.Seed.PartySize)
		}
		return b.sequencer.Begin(ctx, state)

	default:
		return b.fallback(ctx, input.Text), nil
	}
}

// recognize calls the external recognizer. Failures and nil results are
// both treated as "no intent", never as turn errors.
func (b *Bot) recognize(ctx context.Context, utterance string) *domain.RecognitionResult {
	if b.recognizer == nil {
		return nil
	}
	res, err := b.recognizer.Recognize(ctx, utterance)
	if err != nil {
		b.logger.Warn("recognizer failed, falling back", "err", err)
		return nil
	}
	return res
}

// fallback is the last tier: knowledge base first, then the fixed
// didn't-understand reply. The bot never ends a message turn silently.
func (b *Bot) fallback(ctx context.Context, question string) []domain.Reply {
	if b.kb != nil {
		answers, err := b.kb.Answers(ctx, question)
		if err != nil {
			b.logger.Warn("knowledge base failed, using generic reply", "err", err)
		} else if len(answers) > 0 {
			return []domain.Reply{domain.TextReply(answers[0].Text)}
		}
	}
	return []domain.Reply{domain.TextReply(FallbackText)}
}

// decorate fills speech markup for outgoing replies. Generator errors
// degrade to plain text.
func (b *Bot) decorate(replies []domain.Reply, locale string) {
	if b.speech == nil {
		return
	}
	for i := range replies {
		speak, err := b.speech.Generate(replies[i].Text, locale)
		if err != nil {
			b.logger.Debug("speech generation failed, degrading to text", "err", err)
			continue
		}
		replies[i].Speak = speak
	}
}

func (b *Bot) emitTurnStart(ctx context.Context, input domain.TurnInput, intentName string) {
	if b.hooks.OnTurnStart == nil {
		return
	}
	b.hooks.OnTurnStart(ctx, &domain.TurnEvent{
		EventBase: domain.EventBase{
			Timestamp:      time.Now().UTC(),
			Type:           domain.EventTurnStart,
			ConversationID: input.ConversationID,
		},
		Kind:   input.Kind,
		Intent: intentName,
	})
}

func (b *Bot) emitReply(ctx context.Context, input domain.TurnInput) {
	if b.hooks.OnReply == nil {
		return
	}
	b.hooks.OnReply(ctx, &domain.TurnEvent{
		EventBase: domain.EventBase{
			Timestamp:      time.Now().UTC(),
			Type:           domain.EventReply,
			ConversationID: input.ConversationID,
		},
		Kind: input.Kind,
	})
}

// Sessions exposes the session manager, mainly for hosts that need to
// inspect or clear conversations.
func (b *Bot) Sessions() *session.Manager {
	return b.sessions
}
