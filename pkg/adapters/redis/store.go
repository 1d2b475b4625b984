// Package redis provides a Redis-backed session store and distributed
// locker for multi-instance deployments.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aprenda/tutor/pkg/domain"
)

const defaultPrefix = "tutor:session:"

// Store implements ports.Store on Redis, serializing states as JSON.
// An auxiliary sorted set (scored by expiry) indexes the known sessions so
// List stays cheap; expired members are lazily pruned.
type Store[T any] struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the Store.
type Option func(*storeConfig)

type storeConfig struct {
	prefix string
	ttl    time.Duration
}

// WithPrefix overrides the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *storeConfig) { c.prefix = prefix }
}

// WithTTL sets an expiration on stored sessions. Zero means no expiry.
func WithTTL(ttl time.Duration) Option {
	return func(c *storeConfig) { c.ttl = ttl }
}

// NewFromClient creates a store on an existing Redis client.
func NewFromClient[T any](client *backend.Client, opts ...Option) *Store[T] {
	cfg := storeConfig{prefix: defaultPrefix}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store[T]{client: client, prefix: cfg.prefix, ttl: cfg.ttl}
}

// NewSessionStore creates a Redis store for learning sessions.
func NewSessionStore(client *backend.Client, opts ...Option) *Store[domain.SessionState] {
	return NewFromClient[domain.SessionState](client, opts...)
}

// NewSimulatorStore creates a Redis store for roleplay sessions.
func NewSimulatorStore(client *backend.Client, opts ...Option) *Store[domain.SimulatorState] {
	return NewFromClient[domain.SimulatorState](client, opts...)
}

func (s *Store[T]) key(sessionID string) string {
	return s.prefix + sessionID
}

func (s *Store[T]) indexKey() string {
	return s.prefix + "index"
}

// Save persists the state, refreshing the TTL and the session index.
func (s *Store[T]) Save(ctx context.Context, sessionID string, state *T) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis error saving session: %w", err)
	}

	score := math.Inf(1)
	if s.ttl > 0 {
		score = float64(time.Now().Add(s.ttl).Unix())
	}
	if err := s.client.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: sessionID}).Err(); err != nil {
		return fmt.Errorf("redis error indexing session: %w", err)
	}
	return nil
}

// Load retrieves the state for a session.
func (s *Store[T]) Load(ctx context.Context, sessionID string) (*T, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, backend.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis error loading session: %w", err)
	}
	var state T
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to deserialize state: %w", err)
	}
	return &state, nil
}

// Delete removes the state and its index entry.
func (s *Store[T]) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis error deleting session: %w", err)
	}
	if err := s.client.ZRem(ctx, s.indexKey(), sessionID).Err(); err != nil {
		return fmt.Errorf("redis error unindexing session: %w", err)
	}
	return nil
}

// List returns the live session keys, pruning expired index entries first.
func (s *Store[T]) List(ctx context.Context) ([]string, error) {
	now := fmt.Sprintf("%d", time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", now).Err(); err != nil {
		return nil, fmt.Errorf("redis error pruning session index: %w", err)
	}
	members, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error listing sessions: %w", err)
	}
	return members, nil
}
