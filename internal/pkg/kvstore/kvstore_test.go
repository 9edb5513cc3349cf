package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClockedStore(start time.Time) (*MemoryStore, *time.Time) {
	now := start
	store := NewMemoryStore()
	store.now = func() time.Time { return now }
	return store, &now
}

func TestMemoryStoreSetGetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "otp:a@b.c", "123456", time.Minute))

	value, found, err := store.Get(ctx, "otp:a@b.c")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "123456", value)

	require.NoError(t, store.Delete(ctx, "otp:a@b.c"))
	_, found, err = store.Get(ctx, "otp:a@b.c")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store, now := newClockedStore(time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC))

	require.NoError(t, store.Set(ctx, "otp:x", "999999", time.Minute))

	*now = now.Add(59 * time.Second)
	_, found, err := store.Get(ctx, "otp:x")
	require.NoError(t, err)
	assert.True(t, found)

	*now = now.Add(2 * time.Second)
	_, found, err = store.Get(ctx, "otp:x")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryStoreIncrementWindow(t *testing.T) {
	ctx := context.Background()
	store, now := newClockedStore(time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC))

	for i := int64(1); i <= 3; i++ {
		n, err := store.Increment(ctx, "login:u", 15*time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	// later hits inside the window do not extend it
	*now = now.Add(14 * time.Minute)
	n, err := store.Increment(ctx, "login:u", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	*now = now.Add(2 * time.Minute)
	n, err = store.Increment(ctx, "login:u", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "counter restarts after the window elapses")
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()
	_, found, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, found)
}
