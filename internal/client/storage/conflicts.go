package storage

import (
	"context"
	"time"
)

//go:generate moq -out conflicts_mock.go . ConflictStorage

// ConflictRecord диагностическая запись о разрешенном конфликте.
// Конфликты разрешаются молча (server-wins), но журналируются,
// чтобы пользователь мог понять, куда делось его изменение.
type ConflictRecord struct {
	OccurredAt time.Time `json:"occurred_at"`
	OpID       string    `json:"op_id"`
	EntityRef  string    `json:"entity_ref"`
	Reason     string    `json:"reason"`
}

// ConflictStorage defines interface for the conflict diagnostics log
type ConflictStorage interface {
	// LogConflict appends a resolved conflict record
	LogConflict(ctx context.Context, record *ConflictRecord) error

	// Conflicts returns recorded conflicts, newest first, up to limit.
	// limit <= 0 returns all records.
	Conflicts(ctx context.Context, limit int) ([]*ConflictRecord, error)
}
