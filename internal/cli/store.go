package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/dicejourney/internal/config"
	"github.com/aretw0/dicejourney/pkg/adapters/file"
	"github.com/aretw0/dicejourney/pkg/adapters/memory"
	"github.com/aretw0/dicejourney/pkg/adapters/redis"
	"github.com/aretw0/dicejourney/pkg/adapters/sqlite"
	"github.com/aretw0/dicejourney/pkg/ports"
)

// OpenStore builds the KV backend selected by cfg.Store.
// The returned close function is never nil.
func OpenStore(ctx context.Context, cfg config.Config) (ports.KVStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store {
	case config.StoreMemory:
		return memory.NewStore(), noop, nil
	case config.StoreFile, "":
		return file.New(cfg.DataDir()), noop, nil
	case config.StoreRedis:
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redis.WithPrefix(cfg.RedisPrefix))
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, noop, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		return store, store.Close, nil
	case config.StoreSQLite:
		path := cfg.DatabasePath()
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, noop, fmt.Errorf("create database dir: %w", err)
		}
		store, err := sqlite.Open(path)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
