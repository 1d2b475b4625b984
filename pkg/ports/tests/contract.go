// Package tests provides reusable contract suites for ports implementations.
package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aprenda/tutor/pkg/domain"
	"github.com/aprenda/tutor/pkg/ports"
)

// RunSessionStoreContract verifies the Store contract every SessionStore
// implementation must honor: round-trip, not-found sentinel, delete, list,
// and isolation of loaded copies.
func RunSessionStoreContract(t *testing.T, store ports.SessionStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("LoadMissing", func(t *testing.T) {
		_, err := store.Load(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("SaveLoadRoundTrip", func(t *testing.T) {
		state := domain.NewSessionState()
		state.TopicName = "verb to be"
		state.StepIndex = 1
		require.NoError(t, store.Save(ctx, "s1", state))

		loaded, err := store.Load(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "verb to be", loaded.TopicName)
		assert.Equal(t, 1, loaded.StepIndex)
		assert.True(t, loaded.IsFirstMessage)
	})

	t.Run("LoadedCopyIsIsolated", func(t *testing.T) {
		state := domain.NewSessionState()
		require.NoError(t, store.Save(ctx, "s2", state))

		loaded, err := store.Load(ctx, "s2")
		require.NoError(t, err)
		loaded.StepIndex = 99
		loaded.Safety.RepeatedBotPhrases["k"] = map[string]int{"v": 1}

		reloaded, err := store.Load(ctx, "s2")
		require.NoError(t, err)
		assert.Equal(t, 0, reloaded.StepIndex)
		assert.Empty(t, reloaded.Safety.RepeatedBotPhrases["k"])
	})

	t.Run("List", func(t *testing.T) {
		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, "s1")
		assert.Contains(t, sessions, "s2")
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "s1"))
		_, err := store.Load(ctx, "s1")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}
