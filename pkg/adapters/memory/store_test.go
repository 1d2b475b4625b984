package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aprenda/tutor/pkg/adapters/memory"
	"github.com/aprenda/tutor/pkg/domain"
	"github.com/aprenda/tutor/pkg/ports/tests"
)

func TestMemoryStore_Contract(t *testing.T) {
	tests.RunSessionStoreContract(t, memory.NewSessionStore())
}

func TestMemoryStore_SimulatorRoundTrip(t *testing.T) {
	store := memory.NewSimulatorStore()
	ctx := context.Background()

	state := domain.NewSimulatorState("hotel")
	state.Slots.Name = "Wesley"
	yes := true
	state.Slots.Reservation = &yes
	state.Stage = domain.StageIDAndPayment

	require.NoError(t, store.Save(ctx, "sim1", state))

	loaded, err := store.Load(ctx, "sim1")
	require.NoError(t, err)
	assert.Equal(t, "Wesley", loaded.Slots.Name)
	require.NotNil(t, loaded.Slots.Reservation)
	assert.True(t, *loaded.Slots.Reservation)
	assert.Equal(t, domain.StageIDAndPayment, loaded.Stage)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := memory.NewSessionStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state := domain.NewSessionState()
			_ = store.Save(ctx, "shared", state)
			_, _ = store.Load(ctx, "shared")
			_, _ = store.List(ctx)
		}()
	}
	wg.Wait()

	_, err := store.Load(ctx, "shared")
	assert.NoError(t, err)
}
