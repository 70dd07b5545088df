package maitred_test

import (
	"context"
	"testing"

	"github.com/dmoraisb/maitred"
	"github.com/dmoraisb/maitred/pkg/adapters/memory"
	"github.com/dmoraisb/maitred/pkg/domain"
	"github.com/dmoraisb/maitred/pkg/kb"
	"github.com/dmoraisb/maitred/pkg/recognizer"
	"github.com/dmoraisb/maitred/pkg/speech"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBot(t *testing.T, opts ...maitred.Option) *maitred.Bot {
	t.Helper()
	base := []maitred.Option{maitred.WithRecognizer(recognizer.New())}
	bot, err := maitred.New(memory.NewStore(), append(base, opts...)...)
	require.NoError(t, err)
	return bot
}

// say sends one message and returns the single reply's text.
func say(t *testing.T, bot *maitred.Bot, conversationID, text string) string {
	t.Helper()
	replies, err := bot.Turn(context.Background(), domain.Message(conversationID, text))
	require.NoError(t, err)
	require.Len(t, replies, 1)
	return replies[0].Text
}

func loadState(t *testing.T, bot *maitred.Bot, conversationID string) *domain.State {
	t.Helper()
	state, err := bot.Sessions().Load(context.Background(), conversationID)
	require.NoError(t, err)
	return state
}

func TestTurn_Welcome(t *testing.T) {
	bot := newTestBot(t)
	ctx := context.Background()

	replies, err := bot.Turn(ctx, domain.Join("conv-1"))
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, maitred.WelcomeText, replies[0].Text)

	// A second join is idempotent: no repeated greeting.
	replies, err = bot.Turn(ctx, domain.Join("conv-1"))
	require.NoError(t, err)
	assert.Empty(t, replies)
}

func TestTurn_ReservationScenario(t *testing.T) {
	bot := newTestBot(t)
	id := "conv-reserve"

	// The initial utterance already carries time and party size, so the
	// dialog opens on the name step.
	reply := say(t, bot, id, "I'd like to reserve a table for 2 tomorrow")
	assert.Contains(t, reply, "What name")

	reply = say(t, bot, id, "Jane")
	assert.Contains(t, reply, "tomorrow")
	assert.Contains(t, reply, "2")
	assert.Contains(t, reply, "Shall I book it?")

	reply = say(t, bot, id, "yes")
	assert.Contains(t, reply, "All set, Jane")
	assert.Contains(t, reply, "tomorrow")

	state := loadState(t, bot, id)
	assert.Equal(t, domain.DialogEmpty, state.Dialog.Status)
	assert.Equal(t, "tomorrow", state.Reservation.Time)
	assert.Equal(t, "2", state.Reservation.PartySize)
	assert.Equal(t, "Jane", state.Reservation.Name)
}

func TestTurn_FullWaterfallWithRetry(t *testing.T) {
	bot := newTestBot(t)
	id := "conv-waterfall"

	reply := say(t, bot, id, "book a table")
	assert.Contains(t, reply, "What time")

	reply = say(t, bot, id, "7pm tonight")
	assert.Contains(t, reply, "How many people")

	// Invalid party size re-prompts and stays on the same step.
	reply = say(t, bot, id, "lots")
	assert.Contains(t, reply, "whole number")
	assert.Equal(t, domain.StepPartySize, loadState(t, bot, id).Dialog.Step)

	reply = say(t, bot, id, "4")
	assert.Contains(t, reply, "What name")

	reply = say(t, bot, id, "Ana")
	assert.Contains(t, reply, "Shall I book it?")

	reply = say(t, bot, id, "no")
	assert.Contains(t, reply, "I won't book anything")

	// Declining still closes the dialog; the details survive for a
	// future attempt.
	state := loadState(t, bot, id)
	assert.Equal(t, domain.DialogEmpty, state.Dialog.Status)
	assert.Equal(t, "4", state.Reservation.PartySize)
	assert.Equal(t, "Ana", state.Reservation.Name)
}

func TestTurn_ActiveDialogConsumesIntents(t *testing.T) {
	bot := newTestBot(t)
	id := "conv-interrupt"

	say(t, bot, id, "book a table for 2 tonight")

	// Mid-dialog, an utterance that would otherwise route as an intent
	// is treated as the step's answer.
	reply := say(t, bot, id, "show me the menu")
	assert.Contains(t, reply, "Shall I book it?")
	assert.Equal(t, "show me the menu", loadState(t, bot, id).Reservation.Name)
}

func TestTurn_MenuAndPromotions(t *testing.T) {
	bot := newTestBot(t)
	ctx := context.Background()

	replies, err := bot.Turn(ctx, domain.Message("conv-menu", "what's on the menu?"))
	require.NoError(t, err)
	require.Len(t, replies, 1)
	require.NotNil(t, replies[0].Card)
	assert.NotEmpty(t, replies[0].Card.Items)

	reply := say(t, bot, "conv-promo", "any promotions running?")
	assert.NotEmpty(t, reply)

	// Informational intents never open a dialog.
	assert.Equal(t, domain.DialogEmpty, loadState(t, bot, "conv-menu").Dialog.Status)
}

func TestTurn_FallbackTiers(t *testing.T) {
	catalog, err := kb.NewDefault()
	require.NoError(t, err)
	bot := newTestBot(t, maitred.WithKnowledgeBase(catalog))

	// Knowledge base answers first.
	reply := say(t, bot, "conv-kb", "what are your opening hours?")
	assert.Contains(t, reply, "open Tuesday through Sunday")

	// Nothing matched anywhere: the fixed fallback, never silence.
	reply = say(t, bot, "conv-kb", "flibbertigibbet quux")
	assert.Equal(t, maitred.FallbackText, reply)
}

func TestTurn_FallbackWithoutKnowledgeBase(t *testing.T) {
	bot := newTestBot(t)
	reply := say(t, bot, "conv-nokb", "what are your opening hours?")
	assert.Equal(t, maitred.FallbackText, reply)
}

func TestTurn_CorruptDialogStatusCancels(t *testing.T) {
	bot := newTestBot(t)
	ctx := context.Background()
	id := "conv-corrupt"

	state := domain.NewState(id)
	state.Reservation.Time = "tonight"
	state.Dialog.Status = domain.DialogStatus("???")
	require.NoError(t, bot.Sessions().Save(ctx, id, state))

	reply := say(t, bot, id, "hello?")
	assert.Contains(t, reply, "something went wrong")

	// Dialog state is cleared, the reservation record is not.
	state = loadState(t, bot, id)
	assert.Equal(t, domain.DialogEmpty, state.Dialog.Status)
	assert.Equal(t, "tonight", state.Reservation.Time)
}

func TestTurn_SpeechDecoration(t *testing.T) {
	bot := newTestBot(t, maitred.WithSpeech(speech.New()))
	ctx := context.Background()

	input := domain.Message("conv-speech", "show me the menu")
	input.Locale = "pt-BR"
	replies, err := bot.Turn(ctx, input)
	require.NoError(t, err)
	require.NotEmpty(t, replies)
	assert.Contains(t, replies[0].Speak, `xml:lang="pt-BR"`)
	assert.Contains(t, replies[0].Speak, "<speak")
}

func TestTurn_TurnStartCarriesIntent(t *testing.T) {
	var events []*domain.TurnEvent
	bot := newTestBot(t, maitred.WithHooks(domain.LifecycleHooks{
		OnTurnStart: func(_ context.Context, e *domain.TurnEvent) {
			events = append(events, e)
		},
	}))
	ctx := context.Background()
	id := "conv-events"

	_, err := bot.Turn(ctx, domain.Join(id))
	require.NoError(t, err)

	say(t, bot, id, "book a table for 2 tonight")
	// Mid-dialog turn: no routing, so no intent on the event.
	say(t, bot, id, "Jane")

	require.Len(t, events, 3)
	assert.Equal(t, domain.KindJoin, events[0].Kind)
	assert.Empty(t, events[0].Intent)
	assert.Equal(t, string(domain.IntentReserveTable), events[1].Intent)
	assert.Equal(t, domain.KindMessage, events[2].Kind)
	assert.Empty(t, events[2].Intent)
}

func TestTurn_InputValidation(t *testing.T) {
	bot := newTestBot(t)

	_, err := bot.Turn(context.Background(), domain.TurnInput{Text: "hi"})
	assert.Error(t, err)

	_, err = maitred.New(nil)
	assert.Error(t, err)
}

func TestTurn_UnknownConversationGetsDefaultState(t *testing.T) {
	bot := newTestBot(t)

	// First contact by message (no join) still works from a fresh
	// default state.
	reply := say(t, bot, "never-seen", "book a table")
	assert.Contains(t, reply, "What time")

	state := loadState(t, bot, "never-seen")
	assert.True(t, state.Greeted)
	assert.Equal(t, domain.DialogWaiting, state.Dialog.Status)
}
