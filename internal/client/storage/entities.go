package storage

import (
	"context"

	"github.com/iudanet/stocksync/internal/models"
)

//go:generate moq -out entities_mock.go . EntityStorage

// ListFilter задает фильтр для выборки позиций
type ListFilter struct {
	SKU         string // точное совпадение артикула; пустая строка - без фильтра
	PendingOnly bool   // только позиции с несинхронизированными изменениями
}

// EntityStorage defines interface for the durable entity store on client.
// Items are keyed by canonical ID (server ID once assigned, tentative ID
// before that); lookups accept either and resolve through the id map.
type EntityStorage interface {
	// GetItem retrieves an item by server or tentative ID
	// Returns ErrItemNotFound if item doesn't exist
	GetItem(ctx context.Context, ref string) (*models.Item, error)

	// ListItems returns items matching the filter, any order
	ListItems(ctx context.Context, filter ListFilter) ([]*models.Item, error)

	// UpsertLocal stores a locally mutated item and marks it PendingSync
	UpsertLocal(ctx context.Context, item *models.Item) error

	// ApplyServerState overwrites local fields with server-authoritative
	// values and clears PendingSync. The caller decides whether the
	// overwrite is appropriate (pull path skips items with pending ops).
	ApplyServerState(ctx context.Context, item *models.Item) error

	// ReplaceTentativeID re-keys an item created offline under its server
	// ID and installs the tentative<->server mapping. The tentative-keyed
	// record is removed so the entity never exists twice.
	ReplaceTentativeID(ctx context.Context, tentativeID, serverID string) error

	// ResolveRef returns the canonical key for a ref: if ref is a
	// tentative ID with an installed server mapping, the server ID is
	// returned, otherwise ref itself.
	ResolveRef(ctx context.Context, ref string) (string, error)

	// DeleteItem removes an item record entirely.
	// Used when a delete operation is confirmed applied by the server.
	DeleteItem(ctx context.Context, ref string) error
}
