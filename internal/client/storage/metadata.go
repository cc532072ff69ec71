package storage

import "context"

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client sync metadata
type MetadataStorage interface {
	// SaveLastPullTimestamp saves the watermark of the last fully
	// applied pull window (server time, unix milliseconds)
	SaveLastPullTimestamp(ctx context.Context, timestamp int64) error

	// GetLastPullTimestamp retrieves the pull watermark
	// Returns 0 if no pull has completed yet
	GetLastPullTimestamp(ctx context.Context) (int64, error)
}
