package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/stocksync/internal/server/storage"
)

// GetVerdict retrieves the recorded verdict for an op id
func (s *Storage) GetVerdict(ctx context.Context, opID string) (*storage.VerdictRecord, error) {
	query := `
		SELECT op_id, item_id, status, error, conflict_reason, applied_at
		FROM applied_operations
		WHERE op_id = ?
	`

	verdict := &storage.VerdictRecord{}
	var appliedAt int64

	err := s.db.QueryRowContext(ctx, query, opID).Scan(
		&verdict.OpID,
		&verdict.ItemID,
		&verdict.Status,
		&verdict.Error,
		&verdict.ConflictReason,
		&appliedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrVerdictNotFound
		}
		return nil, fmt.Errorf("failed to get verdict: %w", err)
	}

	verdict.AppliedAt = unixMilliToTime(appliedAt)

	return verdict, nil
}

// SaveVerdict records a verdict for an op id
func (s *Storage) SaveVerdict(ctx context.Context, verdict *storage.VerdictRecord) error {
	query := `
		INSERT INTO applied_operations (
			op_id, item_id, status, error, conflict_reason, applied_at
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		verdict.OpID,
		verdict.ItemID,
		verdict.Status,
		verdict.Error,
		verdict.ConflictReason,
		verdict.AppliedAt.UnixMilli(),
	)

	if err != nil {
		return fmt.Errorf("failed to save verdict: %w", err)
	}

	return nil
}

// PurgeVerdictsBefore removes verdict records applied before cutoff
func (s *Storage) PurgeVerdictsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM applied_operations WHERE applied_at < ?`,
		cutoff.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge verdicts: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return removed, nil
}
