package storage

import (
	"context"
	"time"
)

// ItemRecord авторитетная серверная запись товарной позиции.
// ModifiedAt - серверные часы (unix-миллисекунды); по нему клиенты
// запрашивают инкрементальный pull. Удаление мягкое: запись остается,
// чтобы pull мог сообщить о нем клиентам.
type ItemRecord struct {
	UpdatedAt  time.Time // время последнего применения операции
	ID         string    // серверный идентификатор (UUID)
	SKU        string
	Name       string
	Unit       string
	Quantity   int64
	Price      int64
	ModifiedAt int64 // unix-миллисекунды серверных часов
	Deleted    bool
}

// VerdictRecord зафиксированный вердикт по применённой операции.
// Журнал вердиктов обеспечивает exactly-once apply: повторно присланный
// op_id получает записанный вердикт без повторного применения. Вердикты
// failed не журналируются - отказ не менял состояние, и повтор операции
// переоценивается заново.
type VerdictRecord struct {
	AppliedAt      time.Time
	OpID           string
	ItemID         string
	Status         string // applied | conflict
	Error          string
	ConflictReason string
}

// ItemStorage определяет интерфейс для работы с позициями
type ItemStorage interface {
	// GetItem retrieves an item by ID, including soft-deleted records
	// Returns ErrItemNotFound if no record exists
	GetItem(ctx context.Context, id string) (*ItemRecord, error)

	// SaveItem creates or replaces an item record
	SaveItem(ctx context.Context, item *ItemRecord) error

	// ItemsSince returns records modified strictly after since
	// (unix milliseconds), ordered by modification time
	ItemsSince(ctx context.Context, since int64) ([]*ItemRecord, error)

	// MaxModifiedAt returns the newest modification timestamp, 0 when empty
	MaxModifiedAt(ctx context.Context) (int64, error)

	// DeduplicateSKU removes redundant non-deleted records sharing a SKU,
	// keeping the most recently modified one. Returns removed count.
	DeduplicateSKU(ctx context.Context) (int64, error)
}

// OperationStorage определяет интерфейс журнала применённых операций
type OperationStorage interface {
	// GetVerdict retrieves the recorded verdict for an op id
	// Returns ErrVerdictNotFound if the operation was never processed
	GetVerdict(ctx context.Context, opID string) (*VerdictRecord, error)

	// SaveVerdict records a verdict for an op id
	SaveVerdict(ctx context.Context, verdict *VerdictRecord) error

	// PurgeVerdictsBefore removes verdict records applied before cutoff.
	// Returns removed count. Housekeeping only: purging a verdict ends
	// the dedup window for its op id.
	PurgeVerdictsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
