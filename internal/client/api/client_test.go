package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/stocksync/pkg/api"
)

func TestClient_RegisterDevice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/devices/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.RegisterDeviceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "warehouse-laptop", req.DeviceName)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.RegisterDeviceResponse{
			DeviceID:    "dev-1",
			AccessToken: "token-1",
			ExpiresIn:   3600,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.RegisterDevice(context.Background(), api.RegisterDeviceRequest{
		DeviceName: "warehouse-laptop",
	})
	require.NoError(t, err)
	assert.Equal(t, "dev-1", resp.DeviceID)
	assert.Equal(t, "token-1", resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
}

func TestClient_Push(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/sync/push", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		var req api.PushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Operations, 1)
		assert.Equal(t, "op-1", req.Operations[0].OpID)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.PushResponse{
			ServerTime: 100,
			Results: []api.OperationResult{
				{OpID: "op-1", Status: api.StatusApplied},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.Push(context.Background(), "token-1", api.PushRequest{
		Operations: []api.PushOperation{
			{
				OpID:       "op-1",
				Type:       "adjust_quantity",
				EntityType: "item",
				EntityRef:  "srv-1",
				Payload:    json.RawMessage(`{"delta":-1}`),
				ClientTime: time.Now(),
			},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, api.StatusApplied, resp.Results[0].Status)
	assert.Equal(t, int64(100), resp.ServerTime)
}

func TestClient_Pull(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/sync/pull", r.URL.Path)
		assert.Equal(t, "250", r.URL.Query().Get("since"))
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.PullResponse{
			ServerTime: 300,
			Changes: []api.ItemState{
				{ServerID: "srv-1", SKU: "WIDGET-01", Quantity: 7},
			},
			Count: 1,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.Pull(context.Background(), "token-1", 250)
	require.NoError(t, err)
	assert.Equal(t, int64(300), resp.ServerTime)
	require.Len(t, resp.Changes, 1)
	assert.Equal(t, "srv-1", resp.Changes[0].ServerID)
}

func TestClient_Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/sync/status", r.URL.Path)
		// Проба не требует авторизации
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.StatusResponse{
			Status:     "ok",
			ServerTime: 400,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	resp, err := client.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(400), resp.ServerTime)
}

func TestClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{
			Error:   "unauthorized",
			Message: "invalid or expired token",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Push(context.Background(), "bad-token", api.PushRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid or expired token")
}

func TestClient_ServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL)

	_, err := client.Status(context.Background())
	assert.Error(t, err)
}

func TestClient_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Status(ctx)
	assert.Error(t, err)
}
