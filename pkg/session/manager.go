// Package session coordinates safe access to per-student conversation
// state. The orchestration core mutates state in place, so the hosting
// layer must guarantee at most one mutation in flight per session key;
// this manager provides that guarantee.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aprenda/tutor/internal/logging"
	"github.com/aprenda/tutor/pkg/domain"
	"github.com/aprenda/tutor/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu     sync.Mutex
	refs   int
	unlock ports.UnlockFunc
}

// Manager serializes access per session key, garbage-collecting unused
// locks via reference counting. With a DistributedLocker configured the
// serialization extends across replicas.
type Manager[T any] struct {
	store ports.Store[T]

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker ports.DistributedLocker
	logger *slog.Logger
}

// Option configures the Manager.
type Option[T any] func(*Manager[T])

// WithLocker enables distributed locking.
func WithLocker[T any](locker ports.DistributedLocker) Option[T] {
	return func(m *Manager[T]) { m.locker = locker }
}

// WithLogger configures a logger for deferred errors.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(m *Manager[T]) { m.logger = logger }
}

// NewManager creates a session manager over the given store.
func NewManager[T any](store ports.Store[T], opts ...Option[T]) *Manager[T] {
	m := &Manager[T]{
		store:  store,
		locks:  make(map[string]*lockEntry),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
func (m *Manager[T]) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager[T]) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Load retrieves an existing session from the store.
func (m *Manager[T]) Load(ctx context.Context, sessionID string) (*T, error) {
	var state *T
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = m.store.Load(ctx, sessionID)
		return err
	})
	return state, err
}

// LoadOrStart tries to load a session; if not found, it initializes a new
// one via fresh and persists it immediately to reserve the key.
func (m *Manager[T]) LoadOrStart(ctx context.Context, sessionID string, fresh func() *T) (*T, error) {
	var state *T
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		state, err = m.store.Load(ctx, sessionID)
		if err == nil {
			return nil
		}
		if err != domain.ErrSessionNotFound {
			return fmt.Errorf("failed to check session existence: %w", err)
		}
		state = fresh()
		if err := m.store.Save(ctx, sessionID, state); err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}
		return nil
	})
	return state, err
}

// Save persists the session state.
func (m *Manager[T]) Save(ctx context.Context, sessionID string, state *T) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Save(ctx, sessionID, state)
	})
}

// Delete removes the session from the store.
func (m *Manager[T]) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager[T]) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying store.
func (m *Manager[T]) Store() ports.Store[T] {
	return m.store
}

// WithLock executes fn while holding the lock for the session key.
func (m *Manager[T]) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, 30*time.Second)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
