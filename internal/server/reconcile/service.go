package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/stocksync/internal/models"
	"github.com/iudanet/stocksync/internal/server/storage"
	"github.com/iudanet/stocksync/pkg/api"
)

// Service применяет батчи клиентских операций к авторитетному состоянию
// и выносит вердикт по каждой. Гарантии:
//   - exactly-once apply: повторно присланный op_id получает записанный
//     ранее вердикт, состояние не меняется;
//   - порядок применения внутри батча равен порядку отправки, что дает
//     FIFO per entity (клиент шлет операции одной сущности по порядку);
//   - каждый op_id в батче получает ровно один вердикт.
type Service struct {
	items    storage.ItemStorage
	verdicts storage.OperationStorage
	logger   *slog.Logger

	// now подменяется в тестах
	now func() time.Time
}

// NewService creates a new reconciliation service
func NewService(items storage.ItemStorage, verdicts storage.OperationStorage, logger *slog.Logger) *Service {
	return &Service{
		items:    items,
		verdicts: verdicts,
		logger:   logger,
		now:      time.Now,
	}
}

// ProcessBatch применяет операции батча по порядку
func (s *Service) ProcessBatch(ctx context.Context, ops []api.PushOperation) ([]api.OperationResult, error) {
	results := make([]api.OperationResult, 0, len(ops))

	// Создания этого батча: следующие операции той же сущности могут
	// ссылаться на tentative ref, серверный ID которого присвоен только что
	batchIDs := make(map[string]string)

	for i := range ops {
		result, err := s.processOne(ctx, &ops[i], batchIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to process operation %s: %w", ops[i].OpID, err)
		}
		results = append(results, *result)
	}

	return results, nil
}

// processOne применяет одну операцию либо возвращает записанный вердикт
func (s *Service) processOne(ctx context.Context, op *api.PushOperation, batchIDs map[string]string) (*api.OperationResult, error) {
	// Идемпотентный повтор: батч мог быть переслан после ложного
	// таймаута - операция уже применена, эффект не дублируем
	recorded, err := s.verdicts.GetVerdict(ctx, op.OpID)
	if err != nil && !errors.Is(err, storage.ErrVerdictNotFound) {
		return nil, fmt.Errorf("failed to check verdict: %w", err)
	}
	if recorded != nil {
		s.logger.Debug("Duplicate operation, replaying verdict",
			"op_id", op.OpID, "status", recorded.Status)
		// Повторный create снабжает остаток пересланного батча маппингом
		if models.OpKind(op.Type) == models.OpCreate && recorded.ItemID != "" {
			batchIDs[op.EntityRef] = recorded.ItemID
		}
		return s.replayVerdict(ctx, op, recorded)
	}

	// Ссылка на сущность, созданную ранее в этом же батче, разрешается
	// в присвоенный серверный ID
	ref := op.EntityRef
	if serverID, ok := batchIDs[ref]; ok {
		ref = serverID
	}

	var result *api.OperationResult

	switch models.OpKind(op.Type) {
	case models.OpCreate:
		result, err = s.applyCreate(ctx, op, batchIDs)
	case models.OpUpdate:
		result, err = s.applyUpdate(ctx, op, ref)
	case models.OpAdjustQuantity:
		result, err = s.applyAdjust(ctx, op, ref)
	case models.OpDelete:
		result, err = s.applyDelete(ctx, op, ref)
	default:
		result = s.failed(op, fmt.Sprintf("unknown operation type: %s", op.Type))
	}

	if err != nil {
		return nil, err
	}

	// failed не меняет состояние - дедуплицировать нечего, и повтор
	// операции должен быть переоценен заново, а не получить записанный
	// отказ навсегда
	if result.Status == api.StatusFailed {
		return result, nil
	}

	itemID := ""
	if result.ServerData != nil {
		itemID = result.ServerData.ServerID
	}

	// Фиксируем вердикт - окно дедупликации для повторных батчей
	verdict := &storage.VerdictRecord{
		OpID:           op.OpID,
		ItemID:         itemID,
		Status:         result.Status,
		Error:          result.Error,
		ConflictReason: result.ConflictReason,
		AppliedAt:      result.AppliedAt,
	}
	if err := s.verdicts.SaveVerdict(ctx, verdict); err != nil {
		return nil, fmt.Errorf("failed to save verdict: %w", err)
	}

	return result, nil
}

// replayVerdict восстанавливает вердикт для повторно присланной операции,
// подставляя текущее серверное состояние сущности
func (s *Service) replayVerdict(ctx context.Context, op *api.PushOperation, recorded *storage.VerdictRecord) (*api.OperationResult, error) {
	result := &api.OperationResult{
		OpID:           op.OpID,
		Status:         recorded.Status,
		Error:          recorded.Error,
		ConflictReason: recorded.ConflictReason,
		AppliedAt:      recorded.AppliedAt,
	}

	if recorded.ItemID != "" {
		item, err := s.items.GetItem(ctx, recorded.ItemID)
		if err != nil && !errors.Is(err, storage.ErrItemNotFound) {
			return nil, fmt.Errorf("failed to get item: %w", err)
		}
		if item != nil {
			state := itemState(item)
			// Для повторного create клиенту нужен echo tentative ref,
			// чтобы он смог перенести запись на серверный ключ
			if models.OpKind(op.Type) == models.OpCreate {
				state.TentativeID = op.EntityRef
			}
			result.ServerData = state
		}
	}

	return result, nil
}

// applyCreate создает позицию под новым серверным ID
func (s *Service) applyCreate(ctx context.Context, op *api.PushOperation, batchIDs map[string]string) (*api.OperationResult, error) {
	var payload models.CreatePayload
	if err := json.Unmarshal(op.Payload, &payload); err != nil {
		return s.failed(op, fmt.Sprintf("malformed create payload: %v", err)), nil
	}

	now := s.now()
	item := &storage.ItemRecord{
		ID:         uuid.New().String(),
		SKU:        payload.SKU,
		Name:       payload.Name,
		Unit:       payload.Unit,
		Quantity:   payload.Quantity,
		Price:      payload.Price,
		ModifiedAt: now.UnixMilli(),
		UpdatedAt:  now,
	}

	if err := s.items.SaveItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	batchIDs[op.EntityRef] = item.ID

	state := itemState(item)
	state.TentativeID = op.EntityRef

	return &api.OperationResult{
		OpID:       op.OpID,
		Status:     api.StatusApplied,
		AppliedAt:  now,
		ServerData: state,
	}, nil
}

// applyUpdate изменяет поля позиции.
// Если позиция менялась после момента клиентской мутации, локальное
// намерение устарело - возвращаем conflict с авторитетным состоянием.
func (s *Service) applyUpdate(ctx context.Context, op *api.PushOperation, ref string) (*api.OperationResult, error) {
	item, err := s.getLive(ctx, ref)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return s.failed(op, "item not found"), nil
		}
		return nil, err
	}

	if item.UpdatedAt.After(op.ClientTime) {
		return s.conflict(op, item, fmt.Sprintf(
			"item modified at %s, after client change at %s",
			item.UpdatedAt.Format(time.RFC3339), op.ClientTime.Format(time.RFC3339))), nil
	}

	var payload models.UpdatePayload
	if err := json.Unmarshal(op.Payload, &payload); err != nil {
		return s.failed(op, fmt.Sprintf("malformed update payload: %v", err)), nil
	}

	if payload.Name != nil {
		item.Name = *payload.Name
	}
	if payload.Unit != nil {
		item.Unit = *payload.Unit
	}
	if payload.Price != nil {
		item.Price = *payload.Price
	}

	return s.saveApplied(ctx, op, item)
}

// applyAdjust применяет дельту остатка.
// Дельты коммутативны и не конфликтуют по времени, но остаток не может
// уйти в минус: такой adjust возвращает conflict с серверным остатком.
func (s *Service) applyAdjust(ctx context.Context, op *api.PushOperation, ref string) (*api.OperationResult, error) {
	item, err := s.getLive(ctx, ref)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return s.failed(op, "item not found"), nil
		}
		return nil, err
	}

	var payload models.AdjustPayload
	if err := json.Unmarshal(op.Payload, &payload); err != nil {
		return s.failed(op, fmt.Sprintf("malformed adjust payload: %v", err)), nil
	}

	if item.Quantity+payload.Delta < 0 {
		return s.conflict(op, item, fmt.Sprintf(
			"insufficient stock: have %d, adjustment %d", item.Quantity, payload.Delta)), nil
	}

	item.Quantity += payload.Delta

	return s.saveApplied(ctx, op, item)
}

// applyDelete мягко удаляет позицию
func (s *Service) applyDelete(ctx context.Context, op *api.PushOperation, ref string) (*api.OperationResult, error) {
	item, err := s.getLive(ctx, ref)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return s.failed(op, "item not found"), nil
		}
		return nil, err
	}

	item.Deleted = true

	return s.saveApplied(ctx, op, item)
}

// getLive возвращает не удаленную позицию
func (s *Service) getLive(ctx context.Context, id string) (*storage.ItemRecord, error) {
	item, err := s.items.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.Deleted {
		return nil, storage.ErrItemNotFound
	}
	return item, nil
}

// saveApplied сохраняет измененную позицию и формирует вердикт applied
func (s *Service) saveApplied(ctx context.Context, op *api.PushOperation, item *storage.ItemRecord) (*api.OperationResult, error) {
	now := s.now()
	item.ModifiedAt = now.UnixMilli()
	item.UpdatedAt = now

	if err := s.items.SaveItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	return &api.OperationResult{
		OpID:       op.OpID,
		Status:     api.StatusApplied,
		AppliedAt:  now,
		ServerData: itemState(item),
	}, nil
}

// conflict формирует вердикт conflict с авторитетным состоянием
func (s *Service) conflict(op *api.PushOperation, item *storage.ItemRecord, reason string) *api.OperationResult {
	s.logger.Info("Operation conflict",
		"op_id", op.OpID, "item_id", item.ID, "reason", reason)

	return &api.OperationResult{
		OpID:           op.OpID,
		Status:         api.StatusConflict,
		AppliedAt:      s.now(),
		ConflictReason: reason,
		ServerData:     itemState(item),
	}
}

// failed формирует вердикт failed без изменения состояния
func (s *Service) failed(op *api.PushOperation, reason string) *api.OperationResult {
	s.logger.Warn("Operation failed",
		"op_id", op.OpID, "entity_ref", op.EntityRef, "error", reason)

	return &api.OperationResult{
		OpID:      op.OpID,
		Status:    api.StatusFailed,
		AppliedAt: s.now(),
		Error:     reason,
	}
}

// itemState конвертирует серверную запись в wire-представление
func itemState(item *storage.ItemRecord) *api.ItemState {
	return &api.ItemState{
		ServerID:  item.ID,
		SKU:       item.SKU,
		Name:      item.Name,
		Unit:      item.Unit,
		Quantity:  item.Quantity,
		Price:     item.Price,
		Deleted:   item.Deleted,
		UpdatedAt: item.UpdatedAt,
	}
}
