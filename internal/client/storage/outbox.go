package storage

import (
	"context"

	"github.com/iudanet/stocksync/internal/models"
)

//go:generate moq -out outbox_mock.go . OutboxStorage

// OutboxStorage defines interface for the durable operation log (outbox).
// Append is durable before it returns: an operation visible to a later
// Pending call survives process restart. Order is FIFO in append order,
// which gives FIFO per entity as required by the protocol.
type OutboxStorage interface {
	// Append stores a new operation at the tail of the log.
	// Fails only on storage I/O error, never drops silently.
	Append(ctx context.Context, op *models.Operation) error

	// Pending returns all unsynced operations in FIFO order
	Pending(ctx context.Context) ([]*models.Operation, error)

	// PendingForEntity returns unsynced operations targeting ref, FIFO
	PendingForEntity(ctx context.Context, ref string) ([]*models.Operation, error)

	// PendingCount returns the number of unsynced operations
	PendingCount(ctx context.Context) (int, error)

	// MarkSynced marks an operation as confirmed by the server
	// Returns ErrOperationNotFound if operation doesn't exist
	MarkSynced(ctx context.Context, opID string) error

	// IncrementAttempts bumps the failed-round counter of an operation
	IncrementAttempts(ctx context.Context, opID string) error

	// Quarantine moves a poison operation out of the log so it is no
	// longer retried. Quarantined operations are kept for diagnostics.
	Quarantine(ctx context.Context, opID string) error

	// Quarantined returns all quarantined operations, FIFO
	Quarantined(ctx context.Context) ([]*models.Operation, error)

	// RetireSynced compacts the log, removing all synced operations.
	// Returns the number of removed records.
	RetireSynced(ctx context.Context) (int, error)
}
