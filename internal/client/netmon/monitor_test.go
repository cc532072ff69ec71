package netmon

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	httpClient "github.com/iudanet/stocksync/internal/client/api"
	syncsvc "github.com/iudanet/stocksync/internal/client/sync"
	"github.com/iudanet/stocksync/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func onlineAPI() *httpClient.ClientAPIMock {
	return &httpClient.ClientAPIMock{
		StatusFunc: func(ctx context.Context) (*api.StatusResponse, error) {
			return &api.StatusResponse{Status: "ok"}, nil
		},
	}
}

func offlineAPI() *httpClient.ClientAPIMock {
	return &httpClient.ClientAPIMock{
		StatusFunc: func(ctx context.Context) (*api.StatusResponse, error) {
			return nil, errors.New("connection refused")
		},
	}
}

func TestObserve_FiresOnOfflineToOnline(t *testing.T) {
	var fired atomic.Int32
	trigger := func(ctx context.Context) error {
		fired.Add(1)
		return nil
	}

	m := New(onlineAPI(), trigger, testLogger())

	// Стартовое состояние offline, первый online переход стреляет
	m.observe(context.Background(), true)
	assert.Equal(t, int32(1), fired.Load())

	// Повторный online не является переходом
	m.observe(context.Background(), true)
	assert.Equal(t, int32(1), fired.Load())

	// offline -> online стреляет снова
	m.observe(context.Background(), false)
	m.observe(context.Background(), true)
	assert.Equal(t, int32(2), fired.Load())
}

func TestObserve_NoFireOnOffline(t *testing.T) {
	var fired atomic.Int32
	trigger := func(ctx context.Context) error {
		fired.Add(1)
		return nil
	}

	m := New(offlineAPI(), trigger, testLogger())

	m.observe(context.Background(), false)
	m.observe(context.Background(), false)
	assert.Equal(t, int32(0), fired.Load())
}

func TestFire_SyncInFlightIsNotAnError(t *testing.T) {
	trigger := func(ctx context.Context) error {
		return syncsvc.ErrSyncInFlight
	}

	m := New(onlineAPI(), trigger, testLogger())

	// Не должно паниковать и не должно менять состояние сети
	m.observe(context.Background(), true)
	assert.True(t, m.reachable.Load())
}

func TestForeground_TriggersWhenReachable(t *testing.T) {
	var fired atomic.Int32
	trigger := func(ctx context.Context) error {
		fired.Add(1)
		return nil
	}

	m := New(onlineAPI(), trigger, testLogger())
	m.foregroundDebounce = 0

	m.Foreground(context.Background())
	assert.Equal(t, int32(1), fired.Load())
}

func TestForeground_CancelledContext(t *testing.T) {
	var fired atomic.Int32
	trigger := func(ctx context.Context) error {
		fired.Add(1)
		return nil
	}

	m := New(onlineAPI(), trigger, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m.Foreground(ctx)
	assert.Equal(t, int32(0), fired.Load())
}

func TestProbe(t *testing.T) {
	m := New(onlineAPI(), nil, testLogger())
	assert.True(t, m.probe(context.Background()))

	m = New(offlineAPI(), nil, testLogger())
	assert.False(t, m.probe(context.Background()))
}
