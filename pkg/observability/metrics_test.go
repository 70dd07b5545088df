package observability

import (
	"context"
	"testing"

	"github.com/dmoraisb/maitred/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsHooks(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnTurnStart(ctx, &domain.TurnEvent{Kind: domain.KindMessage})
	hooks.OnTurnStart(ctx, &domain.TurnEvent{Kind: domain.KindMessage})
	hooks.OnTurnStart(ctx, &domain.TurnEvent{Kind: domain.KindJoin})

	hooks.OnPrompt(ctx, &domain.StepEvent{Step: domain.StepTime})
	hooks.OnPrompt(ctx, &domain.StepEvent{Step: domain.StepPartySize, Retry: true})

	hooks.OnSlotFilled(ctx, &domain.SlotEvent{Slot: domain.SlotName})

	hooks.OnDialogEnd(ctx, &domain.DialogEvent{Status: domain.DialogComplete, Confirmed: true})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.turns.WithLabelValues("message", "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.turns.WithLabelValues("join", "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.prompts.WithLabelValues("time", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.prompts.WithLabelValues("party_size", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.slots.WithLabelValues("name")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dialogs.WithLabelValues("complete", "true")))
}

func TestMetricsRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewMetrics(reg)

	families, err := reg.Gather()
	assert.NoError(t, err)
	// CounterVecs without observations gather empty; registration itself
	// must not fail or panic.
	assert.NotNil(t, families)

	assert.Panics(t, func() { NewMetrics(reg) })
}
