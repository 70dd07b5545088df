// Package observability wires the bot's lifecycle hooks to prometheus
// collectors. Hosts register the collectors and expose them however
// they like (the HTTP adapter serves promhttp on /metrics).
package observability

import (
	"context"
	"strconv"

	"github.com/dmoraisb/maitred/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the bot's prometheus collectors.
type Metrics struct {
	turns   *prometheus.CounterVec
	prompts *prometheus.CounterVec
	slots   *prometheus.CounterVec
	dialogs *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors on the given
// registerer (use prometheus.DefaultRegisterer for the default).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "maitred_turns_total",
				Help: "Total number of processed turns",
			},
			[]string{"kind", "intent"},
		),
		prompts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "maitred_prompts_total",
				Help: "Total number of prompts issued",
			},
			[]string{"step", "retry"},
		),
		slots: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "maitred_slots_filled_total",
				Help: "Total number of validated slot writes",
			},
			[]string{"slot"},
		),
		dialogs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "maitred_dialog_outcomes_total",
				Help: "Terminal dialog outcomes",
			},
			[]string{"status", "confirmed"},
		),
	}
	reg.MustRegister(m.turns, m.prompts, m.slots, m.dialogs)
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurnStart: func(_ context.Context, e *domain.TurnEvent) {
			m.turns.WithLabelValues(string(e.Kind), e.Intent).Inc()
		},
		OnPrompt: func(_ context.Context, e *domain.StepEvent) {
			m.prompts.WithLabelValues(string(e.Step), strconv.FormatBool(e.Retry)).Inc()
		},
		OnSlotFilled: func(_ context.Context, e *domain.SlotEvent) {
			m.slots.WithLabelValues(string(e.Slot)).Inc()
		},
		OnDialogEnd: func(_ context.Context, e *domain.DialogEvent) {
			m.dialogs.WithLabelValues(string(e.Status), strconv.FormatBool(e.Confirmed)).Inc()
		},
	}
}
