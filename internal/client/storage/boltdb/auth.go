package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/stocksync/internal/client/storage"
)

const keyDeviceAuth = "device_auth"

// SaveDeviceAuth stores device credentials
func (s *Storage) SaveDeviceAuth(ctx context.Context, auth *storage.DeviceAuth) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("failed to marshal device auth: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return fmt.Errorf("auth bucket not found")
		}

		if err := bucket.Put([]byte(keyDeviceAuth), data); err != nil {
			return fmt.Errorf("failed to save device auth: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetDeviceAuth retrieves device credentials
func (s *Storage) GetDeviceAuth(ctx context.Context) (*storage.DeviceAuth, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var auth *storage.DeviceAuth

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return storage.ErrAuthNotFound
		}

		data := bucket.Get([]byte(keyDeviceAuth))
		if data == nil {
			return storage.ErrAuthNotFound
		}

		auth = &storage.DeviceAuth{}
		if err := json.Unmarshal(data, auth); err != nil {
			return fmt.Errorf("failed to unmarshal device auth: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return auth, nil
}

// DeleteDeviceAuth removes device credentials
func (s *Storage) DeleteDeviceAuth(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAuth)
		if bucket == nil {
			return nil
		}

		return bucket.Delete([]byte(keyDeviceAuth))
	})
}
