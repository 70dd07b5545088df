package recognizer_test

import (
	"context"
	"testing"

	"github.com/dmoraisb/maitred/pkg/domain"
	"github.com/dmoraisb/maitred/pkg/recognizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recognize(t *testing.T, utterance string) *domain.RecognitionResult {
	t.Helper()
	res, err := recognizer.New().Recognize(context.Background(), utterance)
	require.NoError(t, err)
	return res
}

func TestRecognize_Intents(t *testing.T) {
	cases := []struct {
		utterance string
		want      domain.Intent
	}{
		{"I'd like to reserve a table", domain.IntentReserveTable},
		{"book a table for 2 tomorrow", domain.IntentReserveTable},
		{"what's on the menu?", domain.IntentShowMenu},
		{"any promotions today?", domain.IntentPromotions},
		{"do you have specials?", domain.IntentPromotions},
		{"how is the weather", domain.IntentNone},
	}

	for _, tc := range cases {
		t.Run(tc.utterance, func(t *testing.T) {
			res := recognize(t, tc.utterance)
			assert.Equal(t, tc.want, res.TopIntent)
			if tc.want == domain.IntentNone {
				assert.Zero(t, res.Score)
			} else {
				assert.Greater(t, res.Score, 0.5)
			}
		})
	}
}

func TestRecognize_PartySize(t *testing.T) {
	cases := []struct {
		utterance string
		want      string
	}{
		{"a table for 2 please", "2"},
		{"party of 6", "6"},
		{"4 people tonight", "4"},
		{"we are 3 guests", "3"},
	}

	for _, tc := range cases {
		t.Run(tc.utterance, func(t *testing.T) {
			res := recognize(t, tc.utterance)
			assert.Equal(t, tc.want, res.Entities[domain.EntityPartySize])
		})
	}

	// "for tomorrow" and clock readings must not leak into party size.
	res := recognize(t, "book for tomorrow at 7pm")
	assert.NotContains(t, res.Entities, domain.EntityPartySize)
}

func TestRecognize_DateTime(t *testing.T) {
	res := recognize(t, "reserve a table for 2 tomorrow at 7pm")
	assert.Equal(t, "tomorrow 19:00", res.Entities[domain.EntityDateTime])

	res = recognize(t, "book tonight")
	assert.Equal(t, "tonight", res.Entities[domain.EntityDateTime])

	res = recognize(t, "reserve for 3 people at 11:30 am")
	assert.Equal(t, "11:30", res.Entities[domain.EntityDateTime])

	res = recognize(t, "book a table on 2026-08-26 19:00")
	dt, ok := res.Entities[domain.EntityDateTime].(domain.DateTimeValue)
	require.True(t, ok)
	assert.Equal(t, "2026-08-26", dt.Date)
	assert.Equal(t, "19:00", dt.Time)

	res = recognize(t, "see you soon")
	assert.NotContains(t, res.Entities, domain.EntityDateTime)
}

func TestRecognize_MidnightAndNoon(t *testing.T) {
	res := recognize(t, "tomorrow at 12am")
	assert.Equal(t, "tomorrow 00:00", res.Entities[domain.EntityDateTime])

	res = recognize(t, "tomorrow at 12pm")
	assert.Equal(t, "tomorrow 12:00", res.Entities[domain.EntityDateTime])
}
