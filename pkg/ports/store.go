package ports

import (
	"context"
)

// KVStore is the key-value persistence provider behind the journey and history stores.
// Values are opaque JSON documents and must survive process restarts for durable adapters.
type KVStore interface {
	// Get returns the value stored under key.
	// Returns domain.ErrKeyNotFound if the key was never written or has been deleted.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key. A failed Set must leave the previous value intact.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every stored key in ascending order.
	Keys(ctx context.Context) ([]string, error)
}
