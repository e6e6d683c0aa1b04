package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSimulate_AddsExactlyN(t *testing.T) {
	store := NewMemoryStore()
	sim := NewSimulator(store)

	created, err := sim.Simulate(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, created, 5)

	all, err := store.Since(context.Background(), time.Time{})
	require.NoError(t, err)
	require.Len(t, all, 5)
}

func TestSimulate_AmountsWithinRange(t *testing.T) {
	sim := NewSimulator(NewMemoryStore())

	created, err := sim.Simulate(context.Background(), 100)
	require.NoError(t, err)
	for _, o := range created {
		require.GreaterOrEqual(t, o.Amount, MinAmount)
		require.LessOrEqual(t, o.Amount, MaxAmount)
		require.False(t, o.CreatedAt.IsZero())
	}
}

func TestSimulate_ZeroAndNegativeAreNoOps(t *testing.T) {
	store := NewMemoryStore()
	sim := NewSimulator(store)

	for _, n := range []int{0, -3} {
		created, err := sim.Simulate(context.Background(), n)
		require.NoError(t, err)
		require.Empty(t, created)
	}

	all, err := store.Since(context.Background(), time.Time{})
	require.NoError(t, err)
	require.Empty(t, all)
}
