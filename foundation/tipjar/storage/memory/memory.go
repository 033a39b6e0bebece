// Package memory implements the ability to read and write values to memory
// using a map.
package memory

import (
	"sync"

	"github.com/ardanlabs/tipjar/foundation/tipjar/storage"
)

// Memory represents the storage implementation for reading and storing
// values in memory. This implements the storage.Storage interface.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New constructs a Memory value for use.
func New() *Memory {
	return &Memory{
		values: make(map[string][]byte),
	}
}

// Close in this implementation has nothing to do since everything
// is in memory.
func (m *Memory) Close() error {
	return nil
}

// Get returns a copy of the value stored under the key.
func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.values[key]
	if !exists {
		return nil, storage.ErrNotFound
	}

	cpy := make([]byte, len(value))
	copy(cpy, value)

	return cpy, nil
}

// Put stores a copy of the value under the key.
func (m *Memory) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cpy := make([]byte, len(value))
	copy(cpy, value)
	m.values[key] = cpy

	return nil
}

// Delete removes the key. Deleting a missing key is not an error.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}
