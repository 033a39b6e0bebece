// Package pebblestore implements storage on top of an embedded pebble database.
package pebblestore

import (
	"path/filepath"

	"github.com/ardanlabs/tipjar/foundation/tipjar/storage"
	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"
)

// Store implements the storage.Storage interface with pebble.
type Store struct {
	db *pebble.DB
}

// New opens or creates the pebble database under the specified folder.
func New(storeDir string) (*Store, error) {
	db, err := pebble.Open(filepath.Join(storeDir, "tipjar-store"), &pebble.Options{})
	if err != nil {
		return nil, errors.Wrap(err, "opening pebble db")
	}

	return &Store{db: db}, nil
}

// Get returns a copy of the value stored under the key.
func (s *Store) Get(key string) ([]byte, error) {
	value, closer, err := s.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "getting value for key [%s]", key)
	}
	defer closer.Close()

	// The slice returned by pebble is only valid until the closer is closed.
	cpy := make([]byte, len(value))
	copy(cpy, value)

	return cpy, nil
}

// Put stores the value under the key with a synced write.
func (s *Store) Put(key string, value []byte) error {
	if err := s.db.Set([]byte(key), value, pebble.Sync); err != nil {
		return errors.Wrapf(err, "setting key [%s]", key)
	}

	return nil
}

// Delete removes the key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	if err := s.db.Delete([]byte(key), pebble.Sync); err != nil {
		return errors.Wrapf(err, "deleting key [%s]", key)
	}

	return nil
}

// Close releases the pebble database.
func (s *Store) Close() error {
	return s.db.Close()
}
