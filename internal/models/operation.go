package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// OpKind тип локальной мутации
type OpKind string

// Operation kinds
const (
	OpCreate         OpKind = "create"
	OpUpdate         OpKind = "update"
	OpAdjustQuantity OpKind = "adjust_quantity"
	OpDelete         OpKind = "delete"
)

// EntityTypeItem тип сущности для товарных позиций
const EntityTypeItem = "item"

// Operation представляет одну локальную мутацию, ожидающую подтверждения
// сервером. Запись иммутабельна: OpID стабилен на все время жизни операции
// и используется сервером для идемпотентного повтора (exactly-once apply).
// Операции одной сущности хранятся и отправляются в порядке создания
// (FIFO per entity, порядок между разными сущностями не гарантируется).
type Operation struct {
	ClientTime time.Time       `json:"client_time"` // ClientTime момент создания мутации на клиенте
	OpID       string          `json:"op_id"`       // OpID глобально уникальный идентификатор операции (UUID)
	Kind       OpKind          `json:"kind"`        // Kind тип мутации
	EntityType string          `json:"entity_type"` // EntityType тип сущности ("item")
	EntityRef  string          `json:"entity_ref"`  // EntityRef серверный или tentative ID сущности
	Payload    json.RawMessage `json:"payload"`     // Payload kind-специфичные данные мутации
	Seq        uint64          `json:"seq"`         // Seq монотонный номер в журнале (порядок FIFO)
	Attempts   int             `json:"attempts"`    // Attempts количество раундов, в которых операция получила failed
	Synced     bool            `json:"synced"`      // Synced операция подтверждена сервером
}

// CreatePayload данные операции create
type CreatePayload struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Quantity int64  `json:"quantity"`
	Price    int64  `json:"price"`
}

// UpdatePayload данные операции update; nil поля не изменяются
type UpdatePayload struct {
	Name  *string `json:"name,omitempty"`
	Unit  *string `json:"unit,omitempty"`
	Price *int64  `json:"price,omitempty"`
}

// AdjustPayload данные операции adjust_quantity.
// На проводе операция несет только дельту и причину, не всю сущность.
type AdjustPayload struct {
	Delta  int64  `json:"delta"`
	Reason string `json:"reason"`
}

// ApplyOperation применяет эффект операции к локальной копии сущности.
// Используется и для оптимистичного применения при мутации, и для повторного
// применения still-pending операций после установки серверного состояния.
// Для create item может быть nil; для delete возвращается nil item.
func ApplyOperation(item *Item, op *Operation) (*Item, error) {
	switch op.Kind {
	case OpCreate:
		var payload CreatePayload
		if err := json.Unmarshal(op.Payload, &payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal create payload: %w", err)
		}
		return &Item{
			TentativeID: op.EntityRef,
			SKU:         payload.SKU,
			Name:        payload.Name,
			Unit:        payload.Unit,
			Quantity:    payload.Quantity,
			Price:       payload.Price,
			UpdatedAt:   op.ClientTime,
			PendingSync: true,
		}, nil

	case OpUpdate:
		if item == nil {
			return nil, fmt.Errorf("update operation %s targets missing item %s", op.OpID, op.EntityRef)
		}
		var payload UpdatePayload
		if err := json.Unmarshal(op.Payload, &payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal update payload: %w", err)
		}
		updated := item.Clone()
		if payload.Name != nil {
			updated.Name = *payload.Name
		}
		if payload.Unit != nil {
			updated.Unit = *payload.Unit
		}
		if payload.Price != nil {
			updated.Price = *payload.Price
		}
		updated.UpdatedAt = op.ClientTime
		updated.PendingSync = true
		return updated, nil

	case OpAdjustQuantity:
		if item == nil {
			return nil, fmt.Errorf("adjust operation %s targets missing item %s", op.OpID, op.EntityRef)
		}
		var payload AdjustPayload
		if err := json.Unmarshal(op.Payload, &payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal adjust payload: %w", err)
		}
		updated := item.Clone()
		updated.Quantity += payload.Delta
		updated.UpdatedAt = op.ClientTime
		updated.PendingSync = true
		return updated, nil

	case OpDelete:
		// delete убирает локальную запись; сервер подтвердит позже
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown operation kind: %s", op.Kind)
	}
}
