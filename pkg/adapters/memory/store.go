// Package memory provides in-memory session stores, the default when no
// external store is configured.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/aprenda/tutor/pkg/domain"
)

// Store implements ports.Store in memory. Safe for concurrent use.
// States are serialized on write and deserialized on read so callers can
// never mutate stored state through a shared pointer.
type Store[T any] struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore[T any]() *Store[T] {
	return &Store[T]{data: make(map[string][]byte)}
}

// NewSessionStore creates an in-memory store for learning sessions.
func NewSessionStore() *Store[domain.SessionState] {
	return NewStore[domain.SessionState]()
}

// NewSimulatorStore creates an in-memory store for roleplay sessions.
func NewSimulatorStore() *Store[domain.SimulatorState] {
	return NewStore[domain.SimulatorState]()
}

// Save persists the state in memory.
func (s *Store[T]) Save(ctx context.Context, sessionID string, state *T) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = raw
	return nil
}

// Load retrieves a copy of the state from memory.
func (s *Store[T]) Load(ctx context.Context, sessionID string) (*T, error) {
	s.mu.RLock()
	raw, ok := s.data[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	var state T
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to deserialize state: %w", err)
	}
	return &state, nil
}

// Delete removes the state for a session.
func (s *Store[T]) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// List returns all session keys in deterministic order.
func (s *Store[T]) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
