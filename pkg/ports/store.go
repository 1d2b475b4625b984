// Package ports defines the interfaces between the orchestration core and
// the hosting layer. State is always passed in explicitly; the core never
// reaches for ambient storage.
package ports

import (
	"context"

	"github.com/aprenda/tutor/pkg/domain"
)

// Store persists one kind of conversation state under string session keys.
// This makes the hosting layer's storage choice (in-memory map, Redis, a
// database) fully substitutable.
type Store[T any] interface {
	// Save persists the state for a given session key.
	Save(ctx context.Context, sessionID string, state *T) error

	// Load retrieves the state for a given session key.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*T, error)

	// Delete removes the state for a given session key.
	Delete(ctx context.Context, sessionID string) error

	// List returns the known session keys.
	List(ctx context.Context) ([]string, error)
}

// SessionStore persists learning-mode sessions.
type SessionStore = Store[domain.SessionState]

// SimulatorStore persists roleplay sessions.
type SimulatorStore = Store[domain.SimulatorState]
