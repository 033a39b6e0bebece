package disk_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ardanlabs/tipjar/foundation/tipjar/storage"
	"github.com/ardanlabs/tipjar/foundation/tipjar/storage/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisk_PutAndGet(t *testing.T) {
	d, err := disk.New(filepath.Join(t.TempDir(), "zblock"))
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.Put("solanaTipJarGlobalLeaderboard", []byte("[]")))

	value, err := d.Get("solanaTipJarGlobalLeaderboard")
	assert.NoError(t, err)
	assert.Equal(t, "[]", string(value))
}

func TestDisk_MissingAndDelete(t *testing.T) {
	dir := t.TempDir()
	d, err := disk.New(dir)
	require.NoError(t, err)

	_, err = d.Get("creatorProfile_abc")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, d.Put("creatorProfile_abc", []byte(`{"displayName":"Alice"}`)))
	require.NoError(t, d.Delete("creatorProfile_abc"))
	assert.NoError(t, d.Delete("creatorProfile_abc"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDisk_RejectsPathKeys(t *testing.T) {
	d, err := disk.New(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "..", "a/b", `a\b`} {
		assert.Error(t, d.Put(key, []byte("x")), "key %q", key)
	}
}
