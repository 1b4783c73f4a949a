package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"picfeed/internal/client/storage"
)

// The credential lives under a single fixed key in the session bucket.
var keyToken = []byte("token")

// Compile-time check that Storage implements storage.CredentialStore
var _ storage.CredentialStore = (*Storage)(nil)

// Save stores the bearer token, replacing any previous one.
func (s *Storage) Save(ctx context.Context, token string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return storage.ErrStorageClosed
		}
		return bucket.Put(keyToken, []byte(token))
	})
	if err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

// Get returns the stored bearer token.
func (s *Storage) Get(ctx context.Context) (string, error) {
	var token string
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return storage.ErrStorageClosed
		}
		data := bucket.Get(keyToken)
		if data == nil {
			return storage.ErrCredentialNotFound
		}
		token = string(data)
		return nil
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// Delete removes the stored bearer token.
func (s *Storage) Delete(ctx context.Context) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return storage.ErrStorageClosed
		}
		return bucket.Delete(keyToken)
	})
	if err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}
