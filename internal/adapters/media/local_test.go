package media

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var storedName = regexp.MustCompile(`^[0-9a-f]{32}\.png$`)

func TestLocalStore_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewLocalStore(dir, "uploads/")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), []byte("png-bytes"), "png")
	require.NoError(t, err)

	assert.Equal(t, "/uploads", path.Dir(url))
	name := path.Base(url)
	assert.Regexp(t, storedName, name)

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestLocalStore_SaveProducesDistinctNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	a, err := store.Save(context.Background(), []byte("a"), "png")
	require.NoError(t, err)
	b, err := store.Save(context.Background(), []byte("b"), "png")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestLocalStore_MissingDirectory(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "/uploads")
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(dir))

	_, err = store.Save(context.Background(), []byte("a"), "png")
	require.Error(t, err)
}

func TestRandomName(t *testing.T) {
	assert.Regexp(t, `^[0-9a-f]{32}$`, randomName())
}
