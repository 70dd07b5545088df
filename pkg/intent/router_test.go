package intent_test

import (
	"testing"

	"github.com/dmoraisb/maitred/pkg/domain"
	"github.com/dmoraisb/maitred/pkg/intent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute_ReserveTable(t *testing.T) {
	r := intent.NewRouter()
	action := r.Route(&domain.RecognitionResult{
		TopIntent: domain.IntentReserveTable,
		Score:     0.92,
		Entities: map[string]any{
			domain.EntityDateTime:  "tomorrow 19:00",
			domain.EntityPartySize: "2",
		},
	}, false)

	assert.Equal(t, intent.ActionStartDialog, action.Kind)
	assert.Equal(t, "tomorrow 19:00", action.Seed.Time)
	assert.Equal(t, "2", action.Seed.PartySize)
}

func TestRoute_ShowMenuCard(t *testing.T) {
	r := intent.NewRouter()
	action := r.Route(&domain.RecognitionResult{TopIntent: domain.IntentShowMenu, Score: 0.8}, false)

	require.Equal(t, intent.ActionReply, action.Kind)
	require.Len(t, action.Replies, 1)
	require.NotNil(t, action.Replies[0].Card)
	assert.NotEmpty(t, action.Replies[0].Card.Items)
}

func TestRoute_Promotions(t *testing.T) {
	r := intent.NewRouter()
	action := r.Route(&domain.RecognitionResult{TopIntent: domain.IntentPromotions, Score: 0.8}, false)

	require.Equal(t, intent.ActionReply, action.Kind)
	require.Len(t, action.Replies, 1)
	assert.Nil(t, action.Replies[0].Card)
	assert.NotEmpty(t, action.Replies[0].Text)
}

func TestRoute_Fallbacks(t *testing.T) {
	r := intent.NewRouter()

	// Nil result: recognizer failed or absent.
	assert.Equal(t, intent.ActionFallback, r.Route(nil, false).Kind)

	// Below the confidence threshold.
	lowScore := &domain.RecognitionResult{TopIntent: domain.IntentReserveTable, Score: 0.2}
	assert.Equal(t, intent.ActionFallback, r.Route(lowScore, false).Kind)

	// Unknown intent name.
	unknown := &domain.RecognitionResult{TopIntent: "OrderTaxi", Score: 0.9}
	assert.Equal(t, intent.ActionFallback, r.Route(unknown, false).Kind)
}

func TestRoute_ActiveDialogWins(t *testing.T) {
	r := intent.NewRouter()
	res := &domain.RecognitionResult{TopIntent: domain.IntentShowMenu, Score: 0.9}
	assert.Equal(t, intent.ActionContinue, r.Route(res, true).Kind)
}

func TestRoute_CustomThreshold(t *testing.T) {
	r := intent.NewRouter(intent.WithThreshold(0.95))
	res := &domain.RecognitionResult{TopIntent: domain.IntentShowMenu, Score: 0.9}
	assert.Equal(t, intent.ActionFallback, r.Route(res, false).Kind)
}
