// Package store selects and opens the configured storage backend.
package store

import (
	"fmt"

	"github.com/ardanlabs/tipjar/foundation/tipjar/storage"
	"github.com/ardanlabs/tipjar/foundation/tipjar/storage/disk"
	"github.com/ardanlabs/tipjar/foundation/tipjar/storage/memory"
	"github.com/ardanlabs/tipjar/foundation/tipjar/storage/pebblestore"
)

// Set of storage kinds that can be configured.
const (
	KindMemory = "memory"
	KindDisk   = "disk"
	KindPebble = "pebble"
)

// Open constructs the storage backend for the kind rooted at path.
func Open(kind string, path string) (storage.Storage, error) {
	switch kind {
	case KindMemory:
		return memory.New(), nil

	case KindDisk:
		d, err := disk.New(path)
		if err != nil {
			return nil, err
		}
		return d, nil

	case KindPebble:
		s, err := pebblestore.New(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	return nil, fmt.Errorf("unknown storage kind %q", kind)
}
