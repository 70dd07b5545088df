package dialog_test

import (
	"context"
	"testing"

	"github.com/dmoraisb/maitred/pkg/dialog"
	"github.com/dmoraisb/maitred/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequencer_FullWaterfall(t *testing.T) {
	ctx := context.Background()
	seq := dialog.NewSequencer()
	state := domain.NewState("conv-1")

	// Begin: nothing filled, first prompt is the time question.
	replies, err := seq.Begin(ctx, state)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "time")
	assert.Equal(t, domain.DialogWaiting, state.Dialog.Status)
	assert.Equal(t, domain.StepTime, state.Dialog.Step)

	// Time answer advances to party size.
	replies, err = seq.Resume(ctx, state, "tomorrow 19:00")
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "people")
	assert.Equal(t, "tomorrow 19:00", state.Reservation.Time)
	assert.Equal(t, domain.StepPartySize, state.Dialog.Step)

	// Party size, then name.
	replies, err = seq.Resume(ctx, state, "2")
	require.NoError(t, err)
	assert.Contains(t, replies[0].Text, "name")
	assert.Equal(t, "2", state.Reservation.PartySize)

	replies, err = seq.Resume(ctx, state, "Jane")
	require.NoError(t, err)
	assert.Equal(t, "Jane", state.Reservation.Name)

	// Confirmation summary carries the collected slots.
	assert.Contains(t, replies[0].Text, "tomorrow 19:00")
	assert.Contains(t, replies[0].Text, "2")
	assert.Equal(t, domain.StepConfirm, state.Dialog.Step)

	// Affirmative answer completes the dialog with the stored time.
	replies, err = seq.Resume(ctx, state, "yes")
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "tomorrow 19:00")
	assert.Contains(t, replies[0].Text, "Jane")
	assert.Equal(t, domain.DialogComplete, state.Dialog.Status)
}

func TestSequencer_SkipsSeededSlots(t *testing.T) {
	ctx := context.Background()
	seq := dialog.NewSequencer()
	state := domain.NewState("conv-2")
	state.Reservation.Time = "tomorrow 19:00"
	state.Reservation.PartySize = "4"

	// Time and party size are seeded: the first prompt is Name.
	replies, err := seq.Begin(ctx, state)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "name")
	assert.Equal(t, domain.StepName, state.Dialog.Step)
}

func TestSequencer_ConfirmationNeverSkipped(t *testing.T) {
	ctx := context.Background()
	seq := dialog.NewSequencer()
	state := domain.NewState("conv-3")
	state.Reservation.Time = "friday 20:00"
	state.Reservation.PartySize = "6"
	state.Reservation.Name = "Ana"

	replies, err := seq.Begin(ctx, state)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, domain.StepConfirm, state.Dialog.Step)
	assert.Contains(t, replies[0].Text, "friday 20:00")
}

func TestSequencer_InvalidPartySizeReprompts(t *testing.T) {
	ctx := context.Background()
	seq := dialog.NewSequencer()
	state := domain.NewState("conv-4")
	state.Reservation.Time = "tonight"

	_, err := seq.Begin(ctx, state)
	require.NoError(t, err)
	require.Equal(t, domain.StepPartySize, state.Dialog.Step)

	// Non-numeric input leaves the slot absent and re-prompts.
	replies, err := seq.Resume(ctx, state, "a few of us")
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Contains(t, replies[0].Text, "number")
	assert.False(t, state.Reservation.HasPartySize())
	assert.Equal(t, domain.DialogWaiting, state.Dialog.Status)
	assert.Equal(t, domain.StepPartySize, state.Dialog.Step)

	// Negative numbers are rejected too.
	replies, err = seq.Resume(ctx, state, "-3")
	require.NoError(t, err)
	assert.False(t, state.Reservation.HasPartySize())
	assert.Contains(t, replies[0].Text, "number")

	// A valid answer advances.
	replies, err = seq.Resume(ctx, state, "4")
	require.NoError(t, err)
	assert.Equal(t, "4", state.Reservation.PartySize)
	assert.Equal(t, domain.StepName, state.Dialog.Step)
	assert.Contains(t, replies[0].Text, "name")
}

func TestSequencer_DeclineSkipsDetails(t *testing.T) {
	ctx := context.Background()
	seq := dialog.NewSequencer()
	state := domain.NewState("conv-5")
	state.Reservation.Time = "tomorrow 19:00"
	state.Reservation.PartySize = "2"
	state.Reservation.Name = "Jane"

	_, err := seq.Begin(ctx, state)
	require.NoError(t, err)

	replies, err := seq.Resume(ctx, state, "no")
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, domain.DialogComplete, state.Dialog.Status)
	// A decline gets a farewell, not the reservation details.
	assert.NotContains(t, replies[0].Text, "tomorrow 19:00")
	assert.NotContains(t, replies[0].Text, "Jane")
}

func TestSequencer_ConfirmRetryOnGibberish(t *testing.T) {
	ctx := context.Background()
	seq := dialog.NewSequencer()
	state := domain.NewState("conv-6")
	state.Reservation.Time = "tonight"
	state.Reservation.PartySize = "3"
	state.Reservation.Name = "Luis"

	_, err := seq.Begin(ctx, state)
	require.NoError(t, err)

	replies, err := seq.Resume(ctx, state, "maybe?")
	require.NoError(t, err)
	assert.Contains(t, replies[0].Text, "yes or no")
	assert.Equal(t, domain.DialogWaiting, state.Dialog.Status)
	assert.Equal(t, domain.StepConfirm, state.Dialog.Step)
}

func TestSequencer_CancelOnUnknownStep(t *testing.T) {
	ctx := context.Background()
	seq := dialog.NewSequencer()
	state := domain.NewState("conv-7")
	state.Reservation.Time = "tonight"
	state.Dialog.Status = domain.DialogWaiting
	state.Dialog.Step = domain.Step("bogus")

	replies, err := seq.Resume(ctx, state, "anything")
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, domain.DialogEmpty, state.Dialog.Status)
	// Reservation state survives the defensive reset.
	assert.Equal(t, "tonight", state.Reservation.Time)
}

func TestSequencer_ResumeWithoutDialog(t *testing.T) {
	ctx := context.Background()
	seq := dialog.NewSequencer()
	state := domain.NewState("conv-8")

	_, err := seq.Resume(ctx, state, "hello")
	assert.ErrorIs(t, err, domain.ErrNoActivePrompt)
}

func TestSequencer_Deterministic(t *testing.T) {
	ctx := context.Background()
	inputs := []string{"tomorrow 19:00", "2", "Jane", "yes"}

	run := func() (*domain.State, []string) {
		seq := dialog.NewSequencer()
		state := domain.NewState("conv-9")
		var texts []string

		replies, err := seq.Begin(ctx, state)
		require.NoError(t, err)
		for _, r := range replies {
			texts = append(texts, r.Text)
		}
		for _, in := range inputs {
			replies, err = seq.Resume(ctx, state, in)
			require.NoError(t, err)
			for _, r := range replies {
				texts = append(texts, r.Text)
			}
		}
		return state, texts
	}

	state1, texts1 := run()
	state2, texts2 := run()
	assert.Equal(t, state1.Reservation, state2.Reservation)
	assert.Equal(t, texts1, texts2)
}

func TestSequencer_Hooks(t *testing.T) {
	ctx := context.Background()

	var prompts, slots, ends int
	seq := dialog.NewSequencer(dialog.WithHooks(domain.LifecycleHooks{
		OnPrompt:     func(context.Context, *domain.StepEvent) { prompts++ },
		OnSlotFilled: func(context.Context, *domain.SlotEvent) { slots++ },
		OnDialogEnd:  func(context.Context, *domain.DialogEvent) { ends++ },
	}))

	state := domain.NewState("conv-10")
	_, err := seq.Begin(ctx, state)
	require.NoError(t, err)
	for _, in := range []string{"tonight", "2", "Jane", "yes"} {
		_, err = seq.Resume(ctx, state, in)
		require.NoError(t, err)
	}

	assert.Equal(t, 4, prompts) // time, party size, name, confirm
	assert.Equal(t, 3, slots)   // confirm is not a slot
	assert.Equal(t, 1, ends)
}
