package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	httpClient "github.com/iudanet/stocksync/internal/client/api"
	"github.com/iudanet/stocksync/internal/client/storage"
	"github.com/iudanet/stocksync/internal/models"
	"github.com/iudanet/stocksync/pkg/api"
)

//go:generate moq -out storage_mock.go . Storage

// ErrSyncInFlight возвращается, когда раунд уже выполняется.
// Триггер при этом - no-op: повтор не ставится в очередь, следующий
// внешний триггер попробует снова.
var ErrSyncInFlight = errors.New("sync round already in flight")

// DefaultMaxAttempts количество раундов со статусом failed, после которого
// операция уходит в карантин вместо бесконечного повтора
const DefaultMaxAttempts = 5

// maxPushBatch максимальный размер одного push-запроса; очередь длиннее
// уходит за раунд несколькими запросами, сервер отклоняет батчи крупнее
const maxPushBatch = 500

// Storage объединяет клиентские хранилища, участвующие в sync-раунде.
// BoltDB storage реализует интерфейс целиком.
type Storage interface {
	storage.EntityStorage
	storage.OutboxStorage
	storage.MetadataStorage
	storage.AuthStorage
	storage.ConflictStorage
}

// Service определяет интерфейс координатора синхронизации
type Service interface {
	// Sync выполняет один push-раунд: снимок очереди, один запрос,
	// применение вердиктов, компактация журнала
	Sync(ctx context.Context) (*Result, error)

	// Pull применяет серверные изменения после локального watermark
	Pull(ctx context.Context) (*PullResult, error)

	// PendingCount возвращает количество операций, ожидающих синхронизации
	PendingCount(ctx context.Context) (int, error)
}

// Result contains push round results
type Result struct {
	Pushed      int // количество отправленных операций
	Applied     int // операций применено сервером
	Conflicts   int // конфликтов разрешено (server-wins)
	Failed      int // операций осталось в очереди
	Quarantined int // операций убрано в карантин
	Retired     int // подтвержденных записей убрано из журнала
}

// PullResult contains pull results
type PullResult struct {
	Pulled  int // изменений получено с сервера
	Applied int // изменений применено локально
	Skipped int // пропущено из-за pending локальных операций
}

type service struct {
	apiClient   httpClient.ClientAPI
	store       Storage
	resolver    ConflictResolver
	logger      *slog.Logger
	maxAttempts int

	// syncing - single-flight guard состояния Idle/Syncing.
	// CAS-переход исключает гонку двух триггеров за раунд.
	syncing atomic.Bool
}

// NewService creates a new sync coordinator
func NewService(apiClient httpClient.ClientAPI, store Storage, resolver ConflictResolver, logger *slog.Logger) Service {
	return &service{
		apiClient:   apiClient,
		store:       store,
		resolver:    resolver,
		logger:      logger,
		maxAttempts: DefaultMaxAttempts,
	}
}

// Sync performs one push round against the reconciliation service.
// Transport failure (including timeout) marks nothing in the affected
// request: operation ids are stable, so unconfirmed operations are
// retried verbatim on the next trigger and the server deduplicates by
// op id.
func (s *service) Sync(ctx context.Context) (*Result, error) {
	// Idle -> Syncing; второй конкурентный триггер получает no-op
	if !s.syncing.CompareAndSwap(false, true) {
		s.logger.Debug("Sync trigger ignored, round already in flight")
		return nil, ErrSyncInFlight
	}
	defer s.syncing.Store(false)

	// Снимок очереди в FIFO порядке
	pending, err := s.store.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read outbox: %w", err)
	}

	// Пустая очередь не стоит сетевого запроса
	if len(pending) == 0 {
		s.logger.Debug("Nothing to sync")
		return &Result{}, nil
	}

	auth, err := s.store.GetDeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("device is not registered: %w", err)
	}

	result := &Result{Pushed: len(pending)}
	touched := make(map[string]bool)

	// Очередь длиннее лимита уходит по частям. Обрыв на N-й части
	// оставляет ее и все последующие операции в очереди; уже
	// подтвержденные части остаются подтвержденными
	for start := 0; start < len(pending); start += maxPushBatch {
		end := min(start+maxPushBatch, len(pending))
		if err := s.pushChunk(ctx, auth.AccessToken, pending[start:end], result, touched); err != nil {
			return result, err
		}
	}

	// Мутации, поставленные в очередь во время раунда, не должны быть
	// затерты серверным состоянием - применяем их эффект заново
	if err := s.reapplyPending(ctx, touched); err != nil {
		return result, err
	}

	retired, err := s.store.RetireSynced(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to retire synced operations: %w", err)
	}
	result.Retired = retired

	s.logger.Info("Sync round completed",
		"pushed", result.Pushed,
		"applied", result.Applied,
		"conflicts", result.Conflicts,
		"failed", result.Failed,
		"quarantined", result.Quarantined,
		"retired", result.Retired)

	return result, nil
}

// pushChunk отправляет одну часть очереди и применяет вердикты
func (s *service) pushChunk(ctx context.Context, accessToken string, chunk []*models.Operation, result *Result, touched map[string]bool) error {
	// Проецируем операции в wire-формат, разрешая tentative refs
	// через id map (create мог подтвердиться в предыдущем раунде)
	req := api.PushRequest{Operations: make([]api.PushOperation, 0, len(chunk))}
	for _, op := range chunk {
		ref, err := s.store.ResolveRef(ctx, op.EntityRef)
		if err != nil {
			return fmt.Errorf("failed to resolve entity ref: %w", err)
		}
		req.Operations = append(req.Operations, api.PushOperation{
			OpID:       op.OpID,
			Type:       string(op.Kind),
			EntityType: op.EntityType,
			EntityRef:  ref,
			Payload:    op.Payload,
			ClientTime: op.ClientTime,
		})
	}

	s.logger.Info("Pushing pending operations", "count", len(chunk))

	resp, err := s.apiClient.Push(ctx, accessToken, req)
	if err != nil {
		// Transport failure: вся часть остается неподтвержденной
		return fmt.Errorf("push request failed: %w", err)
	}

	// Вердикты коррелируются по op_id, не по позиции
	verdicts := make(map[string]api.OperationResult, len(resp.Results))
	for _, res := range resp.Results {
		verdicts[res.OpID] = res
	}

	for _, op := range chunk {
		verdict, ok := verdicts[op.OpID]
		if !ok {
			// Протокол требует ровно один вердикт на операцию;
			// отсутствующий трактуем как failed - останется в очереди
			s.logger.Warn("No verdict for operation", "op_id", op.OpID)
			result.Failed++
			continue
		}

		switch verdict.Status {
		case api.StatusApplied:
			if err := s.processApplied(ctx, op, verdict, touched); err != nil {
				return err
			}
			result.Applied++

		case api.StatusConflict:
			if err := s.processConflict(ctx, op, verdict, touched); err != nil {
				return err
			}
			result.Conflicts++

		case api.StatusFailed:
			quarantined, err := s.processFailed(ctx, op, verdict)
			if err != nil {
				return err
			}
			if quarantined {
				result.Quarantined++
			} else {
				result.Failed++
			}

		default:
			s.logger.Warn("Unknown verdict status",
				"op_id", op.OpID, "status", verdict.Status)
			result.Failed++
		}
	}

	return nil
}

// processApplied обрабатывает вердикт applied
func (s *service) processApplied(ctx context.Context, op *models.Operation, verdict api.OperationResult, touched map[string]bool) error {
	// create под tentative ID: переносим запись на серверный ключ,
	// чтобы сущность не материализовалась дважды
	if op.Kind == models.OpCreate && verdict.ServerData != nil {
		if err := s.store.ReplaceTentativeID(ctx, op.EntityRef, verdict.ServerData.ServerID); err != nil {
			return fmt.Errorf("failed to replace tentative id: %w", err)
		}
	}

	if err := s.installServerState(ctx, op, verdict.ServerData, touched); err != nil {
		return err
	}

	if err := s.store.MarkSynced(ctx, op.OpID); err != nil {
		return fmt.Errorf("failed to mark operation synced: %w", err)
	}

	return nil
}

// processConflict обрабатывает вердикт conflict по выбранной стратегии
func (s *service) processConflict(ctx context.Context, op *models.Operation, verdict api.OperationResult, touched map[string]bool) error {
	s.logger.Info("Conflict resolved",
		"op_id", op.OpID,
		"entity_ref", op.EntityRef,
		"strategy", s.resolver.Name(),
		"reason", verdict.ConflictReason)

	// Диагностический журнал: конфликт разрешается молча, но след остается
	record := &storage.ConflictRecord{
		OpID:       op.OpID,
		EntityRef:  op.EntityRef,
		Reason:     verdict.ConflictReason,
		OccurredAt: time.Now(),
	}
	if err := s.store.LogConflict(ctx, record); err != nil {
		s.logger.Warn("Failed to log conflict", "error", err)
	}

	if s.resolver.Resolve(op, verdict.ServerData) == ResolutionRetry {
		// Стратегия оставила операцию в очереди
		return nil
	}

	if err := s.installServerState(ctx, op, verdict.ServerData, touched); err != nil {
		return err
	}

	// Операция снимается с очереди: повторная отправка повторила бы
	// тот же конфликт
	if err := s.store.MarkSynced(ctx, op.OpID); err != nil {
		return fmt.Errorf("failed to mark operation synced: %w", err)
	}

	return nil
}

// processFailed оставляет операцию в очереди либо уводит в карантин
func (s *service) processFailed(ctx context.Context, op *models.Operation, verdict api.OperationResult) (bool, error) {
	s.logger.Warn("Operation failed on server",
		"op_id", op.OpID,
		"entity_ref", op.EntityRef,
		"error", verdict.Error,
		"attempts", op.Attempts+1)

	if err := s.store.IncrementAttempts(ctx, op.OpID); err != nil {
		return false, fmt.Errorf("failed to increment attempts: %w", err)
	}

	// Ограниченный повтор: poison-операция не должна крутиться вечно
	if op.Attempts+1 >= s.maxAttempts {
		if err := s.store.Quarantine(ctx, op.OpID); err != nil {
			return false, fmt.Errorf("failed to quarantine operation: %w", err)
		}
		s.logger.Warn("Operation quarantined after max attempts",
			"op_id", op.OpID, "max_attempts", s.maxAttempts)
		return true, nil
	}

	return false, nil
}

// installServerState устанавливает авторитетное состояние сервера
func (s *service) installServerState(ctx context.Context, op *models.Operation, serverData *api.ItemState, touched map[string]bool) error {
	if serverData == nil {
		// delete подтвержден: убираем локальную запись
		if op.Kind == models.OpDelete {
			if err := s.store.DeleteItem(ctx, op.EntityRef); err != nil && !errors.Is(err, storage.ErrItemNotFound) {
				return fmt.Errorf("failed to delete item: %w", err)
			}
		}
		return nil
	}

	if serverData.Deleted {
		if err := s.store.DeleteItem(ctx, serverData.ServerID); err != nil && !errors.Is(err, storage.ErrItemNotFound) {
			return fmt.Errorf("failed to delete item: %w", err)
		}
		return nil
	}

	if err := s.store.ApplyServerState(ctx, itemFromState(serverData)); err != nil {
		return fmt.Errorf("failed to apply server state: %w", err)
	}

	touched[serverData.ServerID] = true
	return nil
}

// reapplyPending повторно применяет still-pending операции затронутых
// сущностей поверх установленного серверного состояния
func (s *service) reapplyPending(ctx context.Context, touched map[string]bool) error {
	if len(touched) == 0 {
		return nil
	}

	pending, err := s.store.Pending(ctx)
	if err != nil {
		return fmt.Errorf("failed to read outbox: %w", err)
	}

	for _, op := range pending {
		ref, err := s.store.ResolveRef(ctx, op.EntityRef)
		if err != nil {
			return fmt.Errorf("failed to resolve entity ref: %w", err)
		}
		if !touched[ref] {
			continue
		}

		item, err := s.store.GetItem(ctx, ref)
		if err != nil {
			if errors.Is(err, storage.ErrItemNotFound) {
				continue
			}
			return fmt.Errorf("failed to get item: %w", err)
		}

		updated, err := models.ApplyOperation(item, op)
		if err != nil {
			s.logger.Warn("Failed to re-apply pending operation",
				"op_id", op.OpID, "error", err)
			continue
		}
		if updated == nil {
			continue
		}

		if err := s.store.UpsertLocal(ctx, updated); err != nil {
			return fmt.Errorf("failed to re-apply pending operation: %w", err)
		}

		s.logger.Debug("Re-applied pending operation over server state",
			"op_id", op.OpID, "entity_ref", ref)
	}

	return nil
}

// Pull applies server-side changes since the local watermark.
// The watermark advances only after the whole window is applied, so a
// crash mid-apply re-pulls the same window; apply is idempotent.
func (s *service) Pull(ctx context.Context) (*PullResult, error) {
	// Pull разделяет guard с push: два раунда не должны конкурентно
	// мутировать локальный store
	if !s.syncing.CompareAndSwap(false, true) {
		return nil, ErrSyncInFlight
	}
	defer s.syncing.Store(false)

	auth, err := s.store.GetDeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("device is not registered: %w", err)
	}

	since, err := s.store.GetLastPullTimestamp(ctx)
	if err != nil {
		s.logger.Warn("Failed to get pull watermark, using 0", "error", err)
		since = 0
	}

	resp, err := s.apiClient.Pull(ctx, auth.AccessToken, since)
	if err != nil {
		return nil, fmt.Errorf("pull request failed: %w", err)
	}

	result := &PullResult{Pulled: len(resp.Changes)}

	for i := range resp.Changes {
		change := &resp.Changes[i]

		local, err := s.store.GetItem(ctx, change.ServerID)
		if err != nil && !errors.Is(err, storage.ErrItemNotFound) {
			return result, fmt.Errorf("failed to get item: %w", err)
		}

		// Сервер на pull всегда авторитетен, но локальное pending
		// изменение не затираем - его рассудит следующий push-раунд
		if local != nil && local.PendingSync {
			result.Skipped++
			continue
		}

		if change.Deleted {
			if local != nil {
				if err := s.store.DeleteItem(ctx, change.ServerID); err != nil && !errors.Is(err, storage.ErrItemNotFound) {
					return result, fmt.Errorf("failed to delete item: %w", err)
				}
			}
			result.Applied++
			continue
		}

		if err := s.store.ApplyServerState(ctx, itemFromState(change)); err != nil {
			return result, fmt.Errorf("failed to apply server state: %w", err)
		}
		result.Applied++
	}

	// Watermark двигается только после применения всего окна
	if err := s.store.SaveLastPullTimestamp(ctx, resp.ServerTime); err != nil {
		return result, fmt.Errorf("failed to save pull watermark: %w", err)
	}

	s.logger.Info("Pull completed",
		"pulled", result.Pulled,
		"applied", result.Applied,
		"skipped", result.Skipped,
		"watermark", resp.ServerTime)

	return result, nil
}

// PendingCount returns the number of operations waiting for sync
func (s *service) PendingCount(ctx context.Context) (int, error) {
	count, err := s.store.PendingCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending operations: %w", err)
	}
	return count, nil
}

// itemFromState конвертирует wire-представление в локальную модель
func itemFromState(state *api.ItemState) *models.Item {
	return &models.Item{
		ServerID:  state.ServerID,
		SKU:       state.SKU,
		Name:      state.Name,
		Unit:      state.Unit,
		Quantity:  state.Quantity,
		Price:     state.Price,
		UpdatedAt: state.UpdatedAt,
	}
}
