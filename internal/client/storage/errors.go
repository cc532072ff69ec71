package storage

import "errors"

// Common client storage errors
var (
	// ErrItemNotFound indicates that inventory item was not found
	ErrItemNotFound = errors.New("item not found")

	// ErrOperationNotFound indicates that outbox operation was not found
	ErrOperationNotFound = errors.New("operation not found")

	// ErrAuthNotFound indicates that no device auth data exists
	ErrAuthNotFound = errors.New("device auth data not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
