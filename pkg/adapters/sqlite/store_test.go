package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/aretw0/dicejourney/pkg/adapters/sqlite"
	"github.com/aretw0/dicejourney/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T, path string) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_Contract(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "kv.db"))
	ports.RunKVStoreContract(t, store)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	first, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "k", []byte(`{"x":1}`)))
	require.NoError(t, first.Close())

	second := openStore(t, path)
	got, err := second.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":1}`, string(got))
}

func TestSQLiteStore_RequiresPath(t *testing.T) {
	_, err := sqlite.Open("  ")
	assert.Error(t, err)
}
