package ports

import (
	"context"
	"time"
)

// UnlockFunc is a function that releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker coordinates session access across replicas. Two
// concurrent requests for the same session key must never interleave
// partial state mutations; with multiple instances that guarantee needs a
// shared lock.
type DistributedLocker interface {
	// Lock acquires a distributed lock for the given key (e.g., a session
	// ID). It blocks until the lock is acquired, the context is canceled,
	// or the TTL expires (implementation specific). The returned UnlockFunc
	// MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
