package storage

import "errors"

// Common server storage errors
var (
	// ErrItemNotFound indicates that inventory item was not found
	ErrItemNotFound = errors.New("item not found")

	// ErrVerdictNotFound indicates that no verdict is recorded for op id
	ErrVerdictNotFound = errors.New("verdict not found")
)
