// Package disk implements storage by keeping each key in its own JSON file.
package disk

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ardanlabs/tipjar/foundation/tipjar/storage"
	"github.com/pkg/errors"
)

// Disk represents the storage implementation for reading and storing
// values in their own separate files on disk. This implements the
// storage.Storage interface.
type Disk struct {
	dbPath string
}

// New constructs a Disk value for use, creating the folder if needed.
func New(dbPath string) (*Disk, error) {
	if err := os.MkdirAll(dbPath, 0755); err != nil {
		return nil, errors.Wrapf(err, "creating folder [%s]", dbPath)
	}

	return &Disk{dbPath: dbPath}, nil
}

// Close in this implementation has nothing to do since every write
// opens and closes its own file.
func (d *Disk) Close() error {
	return nil
}

// Get reads the file for the specified key.
func (d *Disk) Get(key string) ([]byte, error) {
	path, err := d.getPath(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading key [%s]", key)
	}

	return data, nil
}

// Put writes the value to a temporary file and renames it over the key's
// file so readers never observe a partial write.
func (d *Disk) Put(key string, value []byte) error {
	path, err := d.getPath(key)
	if err != nil {
		return err
	}

	f, err := os.CreateTemp(d.dbPath, ".tmp-*")
	if err != nil {
		return errors.Wrapf(err, "creating temp file for key [%s]", key)
	}
	tmp := f.Name()

	if _, err := f.Write(value); err != nil {
		f.Close()
		os.Remove(tmp)
		return errors.Wrapf(err, "writing key [%s]", key)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "closing key [%s]", key)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "replacing key [%s]", key)
	}

	return nil
}

// Delete removes the file for the key. Deleting a missing key is not an error.
func (d *Disk) Delete(key string) error {
	path, err := d.getPath(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "deleting key [%s]", key)
	}

	return nil
}

// getPath forms the path to the specified key.
func (d *Disk) getPath(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}

	return filepath.Join(d.dbPath, key+".json"), nil
}
