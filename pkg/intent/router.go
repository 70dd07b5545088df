package intent

import (
	"github.com/dmoraisb/maitred/pkg/domain"
)

// ActionKind classifies what the bot should do with a turn.
type ActionKind string

const (
	// ActionReply answers directly with the attached replies.
	ActionReply ActionKind = "reply"
	// ActionStartDialog starts the reservation waterfall, seeded with
	// any slots the utterance already answered.
	ActionStartDialog ActionKind = "start_dialog"
	// ActionContinue means an active dialog owns this turn; the router
	// has nothing to add.
	ActionContinue ActionKind = "continue"
	// ActionFallback delegates to the knowledge-base tier.
	ActionFallback ActionKind = "fallback"
)

// Action is the router's verdict for one turn.
type Action struct {
	Kind    ActionKind
	Replies []domain.Reply
	Seed    Seed
}

// DefaultThreshold is the minimum confidence for an intent to count as
// a match. Below it the turn falls through to the knowledge base.
const DefaultThreshold = 0.5

const msgPromotions = "This week only: a free dessert with every dinner reservation for four or more."

// menuCard is the fixed multi-item visual reply for the menu intent.
func menuCard() domain.Reply {
	return domain.Reply{
		Text: "Here's what the kitchen is serving today.",
		Card: &domain.Card{
			Title: "Today's menu",
			Items: []string{
				"Wild mushroom risotto",
				"Grilled sea bass with fennel",
				"Braised short rib, root vegetables",
				"Lemon tart with creme fraiche",
			},
		},
	}
}

// Router maps recognition results to actions.
type Router struct {
	threshold float64
}

// RouterOption configures the Router.
type RouterOption func(*Router)

// WithThreshold overrides the confidence threshold.
func WithThreshold(threshold float64) RouterOption {
	return func(r *Router) {
		r.threshold = threshold
	}
}

// NewRouter creates a Router with the default threshold.
func NewRouter(opts ...RouterOption) *Router {
	r := &Router{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Route decides the action for a recognition result. Only the single
// top intent is considered. A nil result, an unknown intent or a score
// below the threshold all fall back to the knowledge-base tier.
// While a dialog is active the router yields to it.
func (r *Router) Route(res *domain.RecognitionResult, dialogActive bool) Action {
	if dialogActive {
		return Action{Kind: ActionContinue}
	}
	if res == nil || res.Score < r.threshold {
		return Action{Kind: ActionFallback}
	}

	switch res.TopIntent {
	case domain.IntentReserveTable:
		return Action{
			Kind: ActionStartDialog,
			Seed: SeedFromEntities(res.Entities),
		}
	case domain.IntentShowMenu:
		return Action{Kind: ActionReply, Replies: []domain.Reply{menuCard()}}
	case domain.IntentPromotions:
		return Action{Kind: ActionReply, Replies: []domain.Reply{domain.TextReply(msgPromotions)}}
	}
	return Action{Kind: ActionFallback}
}
