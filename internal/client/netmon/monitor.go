package netmon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"

	httpClient "github.com/iudanet/stocksync/internal/client/api"
	syncsvc "github.com/iudanet/stocksync/internal/client/sync"
)

// Default monitor timings
const (
	DefaultProbeInterval      = 15 * time.Second
	DefaultForegroundDebounce = 2 * time.Second
	DefaultProbeTimeout       = 5 * time.Second
)

// Trigger вызывается при событии, требующем синхронизации.
// Триггеры best-effort: single-flight guard координатора никогда
// не обходится, ErrSyncInFlight не является ошибкой.
type Trigger func(ctx context.Context) error

// Monitor наблюдает за переходами доступности сети и жизненного цикла
// приложения и дергает координатор синхронизации. Сам по себе ничего
// не гарантирует: пропущенный триггер догонит следующий.
type Monitor struct {
	apiClient httpClient.ClientAPI
	trigger   Trigger
	logger    *slog.Logger

	probeInterval      time.Duration
	foregroundDebounce time.Duration

	// reachable последнее известное состояние сети
	reachable atomic.Bool
}

// New creates a new network monitor
func New(apiClient httpClient.ClientAPI, trigger Trigger, logger *slog.Logger) *Monitor {
	return &Monitor{
		apiClient:          apiClient,
		trigger:            trigger,
		logger:             logger,
		probeInterval:      DefaultProbeInterval,
		foregroundDebounce: DefaultForegroundDebounce,
	}
}

// Run probes connectivity until the context is cancelled and fires the
// trigger on every unreachable-to-reachable transition.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.probeInterval)
	defer ticker.Stop()

	// Начальная проба задает стартовое состояние
	m.observe(ctx, m.probe(ctx))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.observe(ctx, m.probe(ctx))
		}
	}
}

// Foreground обрабатывает переход приложения на передний план:
// короткая пауза дает сетевому стеку устояться, затем проба с backoff
func (m *Monitor) Foreground(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(m.foregroundDebounce):
	}

	// Фибоначчиевый backoff на случай, если сеть еще поднимается
	backoff := retry.WithMaxRetries(3, retry.NewFibonacci(500*time.Millisecond))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if !m.probe(ctx) {
			return retry.RetryableError(fmt.Errorf("server unreachable"))
		}
		return nil
	})

	if err != nil {
		m.logger.Debug("Foreground probe gave up", "error", err)
		m.observe(ctx, false)
		return
	}

	m.observe(ctx, true)
}

// probe выполняет один liveness-запрос
func (m *Monitor) probe(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, DefaultProbeTimeout)
	defer cancel()

	if _, err := m.apiClient.Status(probeCtx); err != nil {
		m.logger.Debug("Status probe failed", "error", err)
		return false
	}

	return true
}

// observe фиксирует состояние сети и стреляет триггером на переходе
// offline -> online
func (m *Monitor) observe(ctx context.Context, reachable bool) {
	was := m.reachable.Swap(reachable)

	if !reachable || was {
		return
	}

	m.logger.Info("Connectivity restored, triggering sync")
	m.fire(ctx)
}

// fire вызывает триггер, не обходя single-flight guard
func (m *Monitor) fire(ctx context.Context) {
	if err := m.trigger(ctx); err != nil {
		if errors.Is(err, syncsvc.ErrSyncInFlight) {
			// Раунд уже идет - триггер no-op
			return
		}
		m.logger.Warn("Sync trigger failed", "error", err)
	}
}
