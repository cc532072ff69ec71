package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/stocksync/internal/client/storage"
	"github.com/iudanet/stocksync/internal/models"
)

// Append stores a new operation at the tail of the log.
// The bucket sequence gives the operation its Seq number; iterating the
// bucket by key yields append order, which is FIFO per entity.
// BoltDB commits the transaction before Update returns, so the operation
// is durable by the time Append returns.
func (s *Storage) Append(ctx context.Context, op *models.Operation) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketOutbox)
		if bucket == nil {
			return fmt.Errorf("outbox bucket not found")
		}

		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to get next sequence: %w", err)
		}
		op.Seq = seq

		data, err := json.Marshal(op)
		if err != nil {
			return fmt.Errorf("failed to marshal operation: %w", err)
		}

		if err := bucket.Put(seqKey(seq), data); err != nil {
			return fmt.Errorf("failed to save operation: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("append transaction failed: %w", err)
	}

	return nil
}

// Pending returns all unsynced operations in FIFO order
func (s *Storage) Pending(ctx context.Context) ([]*models.Operation, error) {
	return s.pendingFiltered(func(op *models.Operation) bool {
		return !op.Synced
	})
}

// PendingForEntity returns unsynced operations targeting ref, FIFO
func (s *Storage) PendingForEntity(ctx context.Context, ref string) ([]*models.Operation, error) {
	return s.pendingFiltered(func(op *models.Operation) bool {
		return !op.Synced && op.EntityRef == ref
	})
}

// pendingFiltered обходит журнал по порядку ключей и собирает операции,
// прошедшие фильтр
func (s *Storage) pendingFiltered(keep func(*models.Operation) bool) ([]*models.Operation, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var ops []*models.Operation

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketOutbox)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var op models.Operation
			if err := json.Unmarshal(v, &op); err != nil {
				return fmt.Errorf("failed to unmarshal operation: %w", err)
			}

			if keep(&op) {
				ops = append(ops, &op)
			}

			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to read outbox: %w", err)
	}

	return ops, nil
}

// PendingCount returns the number of unsynced operations
func (s *Storage) PendingCount(ctx context.Context) (int, error) {
	ops, err := s.Pending(ctx)
	if err != nil {
		return 0, err
	}
	return len(ops), nil
}

// MarkSynced marks an operation as confirmed by the server
func (s *Storage) MarkSynced(ctx context.Context, opID string) error {
	return s.updateOperation(opID, func(op *models.Operation) {
		op.Synced = true
	})
}

// IncrementAttempts bumps the failed-round counter of an operation
func (s *Storage) IncrementAttempts(ctx context.Context, opID string) error {
	return s.updateOperation(opID, func(op *models.Operation) {
		op.Attempts++
	})
}

// updateOperation находит операцию по OpID и сохраняет измененную версию
func (s *Storage) updateOperation(opID string, mutate func(*models.Operation)) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketOutbox)
		if bucket == nil {
			return storage.ErrOperationNotFound
		}

		key, op, err := findOperationTx(bucket, opID)
		if err != nil {
			return err
		}

		mutate(op)

		data, err := json.Marshal(op)
		if err != nil {
			return fmt.Errorf("failed to marshal operation: %w", err)
		}

		if err := bucket.Put(key, data); err != nil {
			return fmt.Errorf("failed to save operation: %w", err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	return nil
}

// Quarantine moves a poison operation to the quarantine bucket
func (s *Storage) Quarantine(ctx context.Context, opID string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		outbox := tx.Bucket(bucketOutbox)
		quarantine := tx.Bucket(bucketQuarantine)
		if outbox == nil || quarantine == nil {
			return fmt.Errorf("buckets not found")
		}

		key, op, err := findOperationTx(outbox, opID)
		if err != nil {
			return err
		}

		data, err := json.Marshal(op)
		if err != nil {
			return fmt.Errorf("failed to marshal operation: %w", err)
		}

		// Переносим под тем же seq-ключом, порядок сохраняется
		if err := quarantine.Put(key, data); err != nil {
			return fmt.Errorf("failed to quarantine operation: %w", err)
		}
		if err := outbox.Delete(key); err != nil {
			return fmt.Errorf("failed to remove operation from outbox: %w", err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	return nil
}

// Quarantined returns all quarantined operations, FIFO
func (s *Storage) Quarantined(ctx context.Context) ([]*models.Operation, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var ops []*models.Operation

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketQuarantine)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var op models.Operation
			if err := json.Unmarshal(v, &op); err != nil {
				return fmt.Errorf("failed to unmarshal operation: %w", err)
			}
			ops = append(ops, &op)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to read quarantine: %w", err)
	}

	return ops, nil
}

// RetireSynced compacts the log, removing all synced operations
func (s *Storage) RetireSynced(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	removed := 0

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketOutbox)
		if bucket == nil {
			return nil
		}

		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			var op models.Operation
			if err := json.Unmarshal(v, &op); err != nil {
				return fmt.Errorf("failed to unmarshal operation: %w", err)
			}

			if op.Synced {
				if err := cursor.Delete(); err != nil {
					return fmt.Errorf("failed to delete operation: %w", err)
				}
				removed++
			}
		}

		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("retire transaction failed: %w", err)
	}

	return removed, nil
}

// findOperationTx ищет операцию по OpID линейным проходом по журналу.
// Журнал компактируется после каждого раунда, так что проход короткий.
func findOperationTx(bucket *bbolt.Bucket, opID string) ([]byte, *models.Operation, error) {
	cursor := bucket.Cursor()
	for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
		var op models.Operation
		if err := json.Unmarshal(v, &op); err != nil {
			return nil, nil, fmt.Errorf("failed to unmarshal operation: %w", err)
		}

		if op.OpID == opID {
			key := make([]byte, len(k))
			copy(key, k)
			return key, &op, nil
		}
	}

	return nil, nil, storage.ErrOperationNotFound
}

// seqKey кодирует sequence в big-endian ключ, сохраняющий порядок
func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
