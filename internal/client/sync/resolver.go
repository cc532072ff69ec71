package sync

import (
	"github.com/iudanet/stocksync/internal/models"
	"github.com/iudanet/stocksync/pkg/api"
)

// Resolution решение стратегии по конфликтной операции
type Resolution int

const (
	// ResolutionAcceptServer устанавливает серверное состояние и снимает
	// операцию с очереди (повторная отправка дала бы тот же конфликт)
	ResolutionAcceptServer Resolution = iota

	// ResolutionRetry оставляет операцию в очереди для следующего раунда
	ResolutionRetry
)

// ConflictResolver выбирает реакцию на вердикт conflict.
// Стратегия именована и подключается на границе протокола, чтобы позже
// можно было назначать свою стратегию на каждый вид операции, не меняя
// управляющий поток координатора.
type ConflictResolver interface {
	// Name returns the strategy name for logs and diagnostics
	Name() string

	// Resolve decides what to do with a conflicted operation given the
	// server's authoritative post-state (may be nil for deleted entities)
	Resolve(op *models.Operation, serverData *api.ItemState) Resolution
}

// ServerWins безусловно принимает серверное состояние: никакого
// field-level merge, локальное намерение отбрасывается и журналируется.
type ServerWins struct{}

// Name returns the strategy name
func (ServerWins) Name() string { return "server-wins" }

// Resolve always accepts the server state
func (ServerWins) Resolve(op *models.Operation, serverData *api.ItemState) Resolution {
	return ResolutionAcceptServer
}
