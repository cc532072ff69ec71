package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/stocksync/internal/client/storage"
	"github.com/iudanet/stocksync/internal/models"
)

// Префиксы ключей в idmap bucket (двусторонняя таблица tentative<->server)
const (
	idMapTentativePrefix = "t:"
	idMapServerPrefix    = "s:"
)

// GetItem retrieves an item by server or tentative ID
func (s *Storage) GetItem(ctx context.Context, ref string) (*models.Item, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var item *models.Item

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketItems)
		if bucket == nil {
			return storage.ErrItemNotFound
		}

		data := bucket.Get([]byte(resolveRefTx(tx, ref)))
		if data == nil {
			return storage.ErrItemNotFound
		}

		item = &models.Item{}
		if err := json.Unmarshal(data, item); err != nil {
			return fmt.Errorf("failed to unmarshal item: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return item, nil
}

// ListItems returns items matching the filter
func (s *Storage) ListItems(ctx context.Context, filter storage.ListFilter) ([]*models.Item, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var items []*models.Item

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketItems)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var item models.Item
			if err := json.Unmarshal(v, &item); err != nil {
				return fmt.Errorf("failed to unmarshal item: %w", err)
			}

			if filter.SKU != "" && item.SKU != filter.SKU {
				return nil
			}
			if filter.PendingOnly && !item.PendingSync {
				return nil
			}

			items = append(items, &item)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return items, nil
}

// UpsertLocal stores a locally mutated item and marks it PendingSync
func (s *Storage) UpsertLocal(ctx context.Context, item *models.Item) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	if item.Key() == "" {
		return fmt.Errorf("item has neither server nor tentative ID")
	}

	stored := item.Clone()
	stored.PendingSync = true

	return s.putItem(stored)
}

// ApplyServerState overwrites local fields with server-authoritative values
// and clears PendingSync. Overwrite policy (force vs skip while pending)
// belongs to the sync coordinator, not the store.
func (s *Storage) ApplyServerState(ctx context.Context, item *models.Item) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	if item.ServerID == "" {
		return fmt.Errorf("server state without server ID")
	}

	stored := item.Clone()
	stored.PendingSync = false
	stored.TentativeID = ""

	return s.putItem(stored)
}

// putItem сохраняет запись по каноническому ключу
func (s *Storage) putItem(item *models.Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketItems)
		if bucket == nil {
			return fmt.Errorf("items bucket not found")
		}

		if err := bucket.Put([]byte(item.Key()), data); err != nil {
			return fmt.Errorf("failed to save item: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// ReplaceTentativeID re-keys an item created offline under its server ID.
// The tentative-keyed record is removed in the same transaction so the
// entity never materializes twice.
func (s *Storage) ReplaceTentativeID(ctx context.Context, tentativeID, serverID string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		items := tx.Bucket(bucketItems)
		idmap := tx.Bucket(bucketIDMap)
		if items == nil || idmap == nil {
			return fmt.Errorf("buckets not found")
		}

		// Переносим запись с tentative ключа на серверный
		data := items.Get([]byte(tentativeID))
		if data != nil {
			var item models.Item
			if err := json.Unmarshal(data, &item); err != nil {
				return fmt.Errorf("failed to unmarshal item: %w", err)
			}

			item.ServerID = serverID
			item.TentativeID = ""

			updated, err := json.Marshal(&item)
			if err != nil {
				return fmt.Errorf("failed to marshal item: %w", err)
			}

			if err := items.Put([]byte(serverID), updated); err != nil {
				return fmt.Errorf("failed to save re-keyed item: %w", err)
			}
			if err := items.Delete([]byte(tentativeID)); err != nil {
				return fmt.Errorf("failed to delete tentative record: %w", err)
			}
		}

		// Устанавливаем двустороннее соответствие; оно остается в базе,
		// пока очередь может содержать операции со старым tentative ref
		if err := idmap.Put([]byte(idMapTentativePrefix+tentativeID), []byte(serverID)); err != nil {
			return fmt.Errorf("failed to save tentative mapping: %w", err)
		}
		if err := idmap.Put([]byte(idMapServerPrefix+serverID), []byte(tentativeID)); err != nil {
			return fmt.Errorf("failed to save server mapping: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("replace tentative id transaction failed: %w", err)
	}

	return nil
}

// ResolveRef returns the canonical key for a ref
func (s *Storage) ResolveRef(ctx context.Context, ref string) (string, error) {
	if s.db == nil {
		return "", storage.ErrStorageClosed
	}

	var resolved string

	err := s.db.View(func(tx *bbolt.Tx) error {
		resolved = resolveRefTx(tx, ref)
		return nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to resolve ref: %w", err)
	}

	return resolved, nil
}

// resolveRefTx возвращает канонический ключ внутри открытой транзакции
func resolveRefTx(tx *bbolt.Tx, ref string) string {
	idmap := tx.Bucket(bucketIDMap)
	if idmap == nil {
		return ref
	}

	if serverID := idmap.Get([]byte(idMapTentativePrefix + ref)); serverID != nil {
		return string(serverID)
	}

	return ref
}

// DeleteItem removes an item record entirely
func (s *Storage) DeleteItem(ctx context.Context, ref string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketItems)
		if bucket == nil {
			return storage.ErrItemNotFound
		}

		key := resolveRefTx(tx, ref)
		if bucket.Get([]byte(key)) == nil {
			return storage.ErrItemNotFound
		}

		if err := bucket.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete item: %w", err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	return nil
}
