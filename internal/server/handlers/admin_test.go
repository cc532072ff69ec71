package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/stocksync/internal/server/storage"
	"github.com/iudanet/stocksync/pkg/api"
)

func TestAdminDeduplicate(t *testing.T) {
	store := setupItemStorage(t)
	ctx := context.Background()

	for i, id := range []string{"srv-1", "srv-2"} {
		require.NoError(t, store.SaveItem(ctx, &storage.ItemRecord{
			ID: id, SKU: "WIDGET-01", ModifiedAt: int64(100 * (i + 1)),
			UpdatedAt: time.UnixMilli(int64(100 * (i + 1))),
		}))
	}

	handler := NewAdminHandler(testLogger(), store, store)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/deduplicate", nil)
	rec := httptest.NewRecorder()

	handler.Deduplicate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.DeduplicateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(1), resp.Removed)
}

func TestAdminCleanup(t *testing.T) {
	store := setupItemStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveVerdict(ctx, &storage.VerdictRecord{
		OpID: "op-old", Status: "applied",
		AppliedAt: time.Now().AddDate(0, 0, -10),
	}))
	require.NoError(t, store.SaveVerdict(ctx, &storage.VerdictRecord{
		OpID: "op-fresh", Status: "applied",
		AppliedAt: time.Now(),
	}))

	handler := NewAdminHandler(testLogger(), store, store)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/cleanup",
		strings.NewReader(`{"days":7}`))
	rec := httptest.NewRecorder()

	handler.Cleanup(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.CleanupResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(1), resp.Removed)

	// Окно дедупликации свежей операции не тронуто
	_, err := store.GetVerdict(ctx, "op-fresh")
	require.NoError(t, err)
}

func TestAdminCleanup_DefaultDays(t *testing.T) {
	store := setupItemStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveVerdict(ctx, &storage.VerdictRecord{
		OpID: "op-recent", Status: "applied",
		AppliedAt: time.Now().AddDate(0, 0, -10),
	}))

	handler := NewAdminHandler(testLogger(), store, store)

	// days не указан: действует месячное окно по умолчанию
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/cleanup",
		strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	handler.Cleanup(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.CleanupResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(0), resp.Removed)
}

func TestAdminCleanup_InvalidBody(t *testing.T) {
	handler := NewAdminHandler(testLogger(), setupItemStorage(t), setupItemStorage(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/cleanup",
		strings.NewReader(`{broken`))
	rec := httptest.NewRecorder()

	handler.Cleanup(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	handler := NewHealthHandler(testLogger(), "1.2.3")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	handler.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
}
