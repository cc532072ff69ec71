package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/stocksync/internal/server/storage"
)

// GetItem retrieves an item by ID, including soft-deleted records
func (s *Storage) GetItem(ctx context.Context, id string) (*storage.ItemRecord, error) {
	query := `
		SELECT id, sku, name, unit, quantity, price,
		       deleted, modified_at, updated_at
		FROM items
		WHERE id = ?
	`

	item := &storage.ItemRecord{}
	var deleted int
	var updatedAt int64

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.SKU,
		&item.Name,
		&item.Unit,
		&item.Quantity,
		&item.Price,
		&deleted,
		&item.ModifiedAt,
		&updatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	item.Deleted = intToBool(deleted)
	item.UpdatedAt = unixMilliToTime(updatedAt)

	return item, nil
}

// SaveItem creates or replaces an item record
func (s *Storage) SaveItem(ctx context.Context, item *storage.ItemRecord) error {
	query := `
		INSERT INTO items (
			id, sku, name, unit, quantity, price,
			deleted, modified_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			sku = excluded.sku,
			name = excluded.name,
			unit = excluded.unit,
			quantity = excluded.quantity,
			price = excluded.price,
			deleted = excluded.deleted,
			modified_at = excluded.modified_at,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		item.ID,
		item.SKU,
		item.Name,
		item.Unit,
		item.Quantity,
		item.Price,
		boolToInt(item.Deleted),
		item.ModifiedAt,
		item.UpdatedAt.UnixMilli(),
	)

	if err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}

	return nil
}

// ItemsSince returns records modified strictly after since,
// ordered by modification time
func (s *Storage) ItemsSince(ctx context.Context, since int64) ([]*storage.ItemRecord, error) {
	query := `
		SELECT id, sku, name, unit, quantity, price,
		       deleted, modified_at, updated_at
		FROM items
		WHERE modified_at > ?
		ORDER BY modified_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var items []*storage.ItemRecord

	for rows.Next() {
		item := &storage.ItemRecord{}
		var deleted int
		var updatedAt int64

		if err := rows.Scan(
			&item.ID,
			&item.SKU,
			&item.Name,
			&item.Unit,
			&item.Quantity,
			&item.Price,
			&deleted,
			&item.ModifiedAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}

		item.Deleted = intToBool(deleted)
		item.UpdatedAt = unixMilliToTime(updatedAt)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// MaxModifiedAt returns the newest modification timestamp, 0 when empty
func (s *Storage) MaxModifiedAt(ctx context.Context) (int64, error) {
	var max sql.NullInt64

	err := s.db.QueryRowContext(ctx, `SELECT MAX(modified_at) FROM items`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("failed to get max modified_at: %w", err)
	}

	if !max.Valid {
		return 0, nil
	}

	return max.Int64, nil
}

// DeduplicateSKU removes redundant non-deleted records sharing a SKU,
// keeping the most recently modified one
func (s *Storage) DeduplicateSKU(ctx context.Context) (int64, error) {
	// Оставляем самую свежую запись каждого артикула
	query := `
		DELETE FROM items
		WHERE deleted = 0
		  AND id NOT IN (
			SELECT id FROM items i
			WHERE i.deleted = 0
			  AND i.modified_at = (
				SELECT MAX(modified_at) FROM items
				WHERE sku = i.sku AND deleted = 0
			  )
		  )
	`

	res, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to deduplicate items: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return removed, nil
}

// boolToInt конвертирует bool в int для SQLite
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool конвертирует int из SQLite в bool
func intToBool(i int) bool {
	return i != 0
}

// unixMilliToTime конвертирует unix-миллисекунды в time.Time
func unixMilliToTime(ms int64) time.Time {
	return time.UnixMilli(ms)
}
