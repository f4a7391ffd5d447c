package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/dicejourney/pkg/adapters/file"
	"github.com/aretw0/dicejourney/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunKVStoreContract(t, store)
}

func TestFileStore_EscapesKeys(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a/b", []byte(`{}`)))

	_, err := os.Stat(filepath.Join(dir, "a%2Fb.json"))
	assert.NoError(t, err, "slash must not create a subdirectory")

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b"}, keys)
}

func TestFileStore_IgnoresLeftoverTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-123.json"), []byte("partial"), 0644))
	require.NoError(t, store.Set(ctx, "k", []byte(`{}`)))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keys)
}

func TestFileStore_KeysOnMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "nope"))
	keys, err := store.Keys(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}
