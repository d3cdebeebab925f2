package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RecentNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i, addr := range []string{"0xaaa", "0xbbb", "0xccc"} {
		require.NoError(t, store.Record(ctx, Entry{
			Address:   addr,
			RiskScore: float64(i * 10),
			ScannedAt: time.Date(2025, 1, 1+i, 0, 0, 0, 0, time.UTC),
		}))
	}

	entries, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "0xccc", entries[0].Address)
	assert.Equal(t, "0xbbb", entries[1].Address)
}

func TestMemoryStore_LimitLargerThanHistory(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, Entry{Address: "0xaaa"}))

	entries, err := store.Recent(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMemoryStore_FillsTimestamp(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, Entry{Address: "0xaaa"}))
	entries, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	assert.False(t, entries[0].ScannedAt.IsZero())
}
