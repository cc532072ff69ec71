package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_LastPullTimestamp(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)

	// До первого pull watermark равен нулю
	ts, err := store.GetLastPullTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), ts)

	require.NoError(t, store.SaveLastPullTimestamp(ctx, 1756700000000))

	ts, err = store.GetLastPullTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1756700000000), ts)

	// Watermark перезаписывается
	require.NoError(t, store.SaveLastPullTimestamp(ctx, 1756700005000))

	ts, err = store.GetLastPullTimestamp(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1756700005000), ts)
}
