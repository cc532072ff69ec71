package boltdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/stocksync/internal/client/storage"
)

func TestAuth_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)

	auth := &storage.DeviceAuth{
		DeviceID:    "dev-1",
		DeviceName:  "warehouse-tablet",
		AccessToken: "token-123",
		ExpiresAt:   1756700000,
	}

	require.NoError(t, store.SaveDeviceAuth(ctx, auth))

	got, err := store.GetDeviceAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, auth, got)
}

func TestAuth_Get_NotFound(t *testing.T) {
	store := setupTestStorage(t)

	_, err := store.GetDeviceAuth(context.Background())
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)
}

func TestAuth_Delete(t *testing.T) {
	ctx := context.Background()
	store := setupTestStorage(t)

	require.NoError(t, store.SaveDeviceAuth(ctx, &storage.DeviceAuth{DeviceID: "dev-1"}))
	require.NoError(t, store.DeleteDeviceAuth(ctx))

	_, err := store.GetDeviceAuth(ctx)
	assert.ErrorIs(t, err, storage.ErrAuthNotFound)

	// Удаление пустого хранилища не падает
	assert.NoError(t, store.DeleteDeviceAuth(ctx))
}
