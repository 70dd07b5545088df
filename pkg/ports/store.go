package ports

import (
	"context"

	"github.com/dmoraisb/maitred/pkg/domain"
)

// SessionStore defines the interface for persisting conversation state.
// Suspending a dialog across turns is modeled as a Save here plus
// waiting for the next inbound message.
type SessionStore interface {
	// Save persists the state for a given conversation ID.
	Save(ctx context.Context, conversationID string, state *domain.State) error

	// Load retrieves the state for a given conversation ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, conversationID string) (*domain.State, error)

	// Delete removes the state for a given conversation ID.
	Delete(ctx context.Context, conversationID string) error

	// List returns the IDs of the known conversations.
	List(ctx context.Context) ([]string, error)
}
