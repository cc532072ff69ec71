package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/stocksync/internal/client/storage"
	"github.com/iudanet/stocksync/internal/models"
	"github.com/iudanet/stocksync/internal/validation"
)

// Service определяет интерфейс локальных мутаций инвентаря.
// Каждая мутация оптимистично обновляет entity store и добавляет операцию
// в outbox; ошибка локальной записи возвращается вызывающему синхронно -
// мутация, чей append не прошел, не существует и не попадет в синхронизацию.
type Service interface {
	CreateItem(ctx context.Context, params CreateItemParams) (*models.Item, error)
	UpdateItem(ctx context.Context, ref string, params UpdateItemParams) (*models.Item, error)
	AdjustQuantity(ctx context.Context, ref string, delta int64, reason string) (*models.Item, error)
	DeleteItem(ctx context.Context, ref string) error
	GetItem(ctx context.Context, ref string) (*models.Item, error)
	ListItems(ctx context.Context, filter storage.ListFilter) ([]*models.Item, error)
}

// CreateItemParams параметры создания позиции
type CreateItemParams struct {
	SKU      string
	Name     string
	Unit     string
	Quantity int64
	Price    int64
}

// UpdateItemParams параметры изменения позиции; nil поля не трогаются
type UpdateItemParams struct {
	Name  *string
	Unit  *string
	Price *int64
}

type service struct {
	entities storage.EntityStorage
	outbox   storage.OutboxStorage

	// mu гарантирует, что пара append+upsert выглядит атомарной для
	// конкурентного читателя и что операции одной сущности получают
	// seq в порядке вызовов (FIFO per entity)
	mu sync.Mutex
}

// NewService creates a new inventory mutation service
func NewService(entities storage.EntityStorage, outbox storage.OutboxStorage) Service {
	return &service{
		entities: entities,
		outbox:   outbox,
	}
}

// CreateItem создает позицию локально под tentative ID
func (s *service) CreateItem(ctx context.Context, params CreateItemParams) (*models.Item, error) {
	if err := validation.ValidateSKU(params.SKU); err != nil {
		return nil, fmt.Errorf("invalid sku: %w", err)
	}
	if params.Name == "" {
		return nil, fmt.Errorf("item name cannot be empty")
	}

	payload, err := json.Marshal(models.CreatePayload{
		SKU:      params.SKU,
		Name:     params.Name,
		Unit:     params.Unit,
		Quantity: params.Quantity,
		Price:    params.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal create payload: %w", err)
	}

	// Tentative ID связывает офлайн-создание с будущим серверным ID
	tentativeID := uuid.New().String()

	op := &models.Operation{
		OpID:       uuid.New().String(),
		Kind:       models.OpCreate,
		EntityType: models.EntityTypeItem,
		EntityRef:  tentativeID,
		Payload:    payload,
		ClientTime: time.Now(),
	}

	item, err := models.ApplyOperation(nil, op)
	if err != nil {
		return nil, err
	}

	if err := s.commit(ctx, op, item); err != nil {
		return nil, err
	}

	return item, nil
}

// UpdateItem изменяет поля существующей позиции
func (s *service) UpdateItem(ctx context.Context, ref string, params UpdateItemParams) (*models.Item, error) {
	payload, err := json.Marshal(models.UpdatePayload{
		Name:  params.Name,
		Unit:  params.Unit,
		Price: params.Price,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal update payload: %w", err)
	}

	return s.mutate(ctx, ref, models.OpUpdate, payload)
}

// AdjustQuantity изменяет остаток на дельту.
// В отличие от update, операция несет только дельту и причину.
func (s *service) AdjustQuantity(ctx context.Context, ref string, delta int64, reason string) (*models.Item, error) {
	if delta == 0 {
		return nil, fmt.Errorf("adjustment delta cannot be zero")
	}

	payload, err := json.Marshal(models.AdjustPayload{
		Delta:  delta,
		Reason: reason,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal adjust payload: %w", err)
	}

	return s.mutate(ctx, ref, models.OpAdjustQuantity, payload)
}

// mutate применяет операцию над существующей позицией
func (s *service) mutate(ctx context.Context, ref string, kind models.OpKind, payload json.RawMessage) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.entities.GetItem(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	op := &models.Operation{
		OpID:       uuid.New().String(),
		Kind:       kind,
		EntityType: models.EntityTypeItem,
		EntityRef:  current.Key(),
		Payload:    payload,
		ClientTime: time.Now(),
	}

	updated, err := models.ApplyOperation(current, op)
	if err != nil {
		return nil, err
	}

	if err := s.commitLocked(ctx, op, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteItem ставит удаление в очередь; локальная запись остается до
// подтверждения сервером (помеченная PendingSync)
func (s *service) DeleteItem(ctx context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.entities.GetItem(ctx, ref)
	if err != nil {
		return fmt.Errorf("failed to get item: %w", err)
	}

	op := &models.Operation{
		OpID:       uuid.New().String(),
		Kind:       models.OpDelete,
		EntityType: models.EntityTypeItem,
		EntityRef:  current.Key(),
		ClientTime: time.Now(),
	}

	if err := s.outbox.Append(ctx, op); err != nil {
		return fmt.Errorf("failed to append operation: %w", err)
	}

	// Запись остается видимой как pending, пока сервер не подтвердит delete
	pending := current.Clone()
	pending.UpdatedAt = op.ClientTime
	if err := s.entities.UpsertLocal(ctx, pending); err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	return nil
}

// GetItem retrieves an item by server or tentative ID
func (s *service) GetItem(ctx context.Context, ref string) (*models.Item, error) {
	item, err := s.entities.GetItem(ctx, ref)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// ListItems returns items matching the filter
func (s *service) ListItems(ctx context.Context, filter storage.ListFilter) ([]*models.Item, error) {
	items, err := s.entities.ListItems(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// commit выполняет пару append+upsert под мьютексом
func (s *service) commit(ctx context.Context, op *models.Operation, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, op, item)
}

// commitLocked сначала журналирует операцию, затем обновляет store.
// Если append не прошел - мутация не состоялась; если не прошел upsert,
// операция уже в очереди и store догонит ее на следующем sync-раунде.
func (s *service) commitLocked(ctx context.Context, op *models.Operation, item *models.Item) error {
	if err := s.outbox.Append(ctx, op); err != nil {
		return fmt.Errorf("failed to append operation: %w", err)
	}

	if item != nil {
		if err := s.entities.UpsertLocal(ctx, item); err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}
	}

	return nil
}
