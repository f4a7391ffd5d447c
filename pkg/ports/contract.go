package ports

import (
	"context"
	"testing"

	"github.com/aretw0/dicejourney/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunKVStoreContract verifies that a KVStore implementation behaves as the stores expect.
func RunKVStoreContract(t *testing.T, store KVStore) {
	ctx := context.Background()

	t.Run("Set and Get", func(t *testing.T) {
		err := store.Set(ctx, "contract-a", []byte(`{"foo":"bar"}`))
		require.NoError(t, err, "Set should not return error")

		got, err := store.Get(ctx, "contract-a")
		require.NoError(t, err, "Get should not return error")
		assert.JSONEq(t, `{"foo":"bar"}`, string(got))
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "contract-a", []byte(`{"v":1}`)))
		require.NoError(t, store.Set(ctx, "contract-a", []byte(`{"v":2}`)))

		got, err := store.Get(ctx, "contract-a")
		require.NoError(t, err)
		assert.JSONEq(t, `{"v":2}`, string(got))
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "contract-missing")
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})

	t.Run("Keys", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "contract-b", []byte(`{}`)))

		keys, err := store.Keys(ctx)
		require.NoError(t, err)
		assert.Contains(t, keys, "contract-a")
		assert.Contains(t, keys, "contract-b")
		assert.IsNonDecreasing(t, keys)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "contract-c", []byte(`{}`)))

		err := store.Delete(ctx, "contract-c")
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Get(ctx, "contract-c")
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)

		// Idempotent
		assert.NoError(t, store.Delete(ctx, "contract-c"))
	})

	t.Run("Isolation", func(t *testing.T) {
		value := []byte(`{"n":1}`)
		require.NoError(t, store.Set(ctx, "contract-d", value))
		value[2] = 'x'

		got, err := store.Get(ctx, "contract-d")
		require.NoError(t, err)
		assert.JSONEq(t, `{"n":1}`, string(got))
	})
}
