package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	_, found, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.Set(ctx, "k", "v1"))
	val, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "v1", val)

	require.NoError(t, store.Set(ctx, "k", "v2"))
	val, _, err = store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v2", val)

	require.NoError(t, store.Remove(ctx, "k"))
	_, found, err = store.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, found)

	// Removing an absent key is not an error.
	require.NoError(t, store.Remove(ctx, "k"))
	require.Equal(t, 0, store.Len())
}

func TestMemoryConcurrentAccess(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			_ = store.Set(ctx, "k", "v")
		}
	}()
	for i := 0; i < 1000; i++ {
		_, _, _ = store.Get(ctx, "k")
	}
	<-done
}
