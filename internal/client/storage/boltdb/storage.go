package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

var (
	// BoltDB bucket names
	bucketItems      = []byte("items")
	bucketIDMap      = []byte("idmap")
	bucketOutbox     = []byte("outbox")
	bucketQuarantine = []byte("quarantine")
	bucketMetadata   = []byte("metadata")
	bucketAuth       = []byte("auth")
	bucketConflicts  = []byte("conflicts")
)

// Storage represents BoltDB storage implementation for client.
// Implements EntityStorage, OutboxStorage, MetadataStorage, AuthStorage
// and ConflictStorage over a single database file.
type Storage struct {
	db *bbolt.DB
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db}

	// Инициализируем buckets
	if err := storage.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	buckets := [][]byte{
		bucketItems,
		bucketIDMap,
		bucketOutbox,
		bucketQuarantine,
		bucketMetadata,
		bucketAuth,
		bucketConflicts,
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
}
