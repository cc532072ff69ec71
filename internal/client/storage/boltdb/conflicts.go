package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/stocksync/internal/client/storage"
)

// LogConflict appends a resolved conflict record.
// Records are keyed by bucket sequence so iteration order is append order.
func (s *Storage) LogConflict(ctx context.Context, record *storage.ConflictRecord) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal conflict record: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConflicts)
		if bucket == nil {
			return fmt.Errorf("conflicts bucket not found")
		}

		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to get next sequence: %w", err)
		}

		if err := bucket.Put(seqKey(seq), data); err != nil {
			return fmt.Errorf("failed to save conflict record: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// Conflicts returns recorded conflicts, newest first, up to limit
func (s *Storage) Conflicts(ctx context.Context, limit int) ([]*storage.ConflictRecord, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var records []*storage.ConflictRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConflicts)
		if bucket == nil {
			return nil
		}

		// Обходим с конца: последние конфликты первыми
		cursor := bucket.Cursor()
		for k, v := cursor.Last(); k != nil; k, v = cursor.Prev() {
			if limit > 0 && len(records) >= limit {
				break
			}

			var record storage.ConflictRecord
			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("failed to unmarshal conflict record: %w", err)
			}

			records = append(records, &record)
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to read conflicts: %w", err)
	}

	return records, nil
}
