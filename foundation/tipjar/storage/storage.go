// Package storage defines the key/value contract the tip jar persists
// through. Values are opaque bytes; the database package owns encoding.
package storage

import "errors"

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// Storage is a process-wide key/value store with no transactional
// guarantees. Concurrent writers to the same key resolve as last write wins.
type Storage interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}
