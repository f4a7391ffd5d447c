package config_test

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/dicejourney/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Dir)
	assert.Equal(t, config.StoreFile, cfg.Store)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Nil(t, cfg.Seed)
	assert.Equal(t, filepath.Join(".", ".dicejourney", "data"), cfg.DataDir())
	assert.Equal(t, filepath.Join(".", ".dicejourney", "dicejourney.db"), cfg.DatabasePath())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"DICEJOURNEY_STORE":       "redis",
		"DICEJOURNEY_REDIS_DB":    "3",
		"DICEJOURNEY_SEED":        "42",
		"DICEJOURNEY_SQLITE_PATH": "/tmp/x.db",
	})
	require.NoError(t, err)

	assert.Equal(t, config.StoreRedis, cfg.Store)
	assert.Equal(t, 3, cfg.RedisDB)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(42), *cfg.Seed)
	assert.Equal(t, "/tmp/x.db", cfg.DatabasePath())
}

func TestLoadFrom_ZeroSeedIsSet(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{"DICEJOURNEY_SEED": "0"})
	require.NoError(t, err)

	require.NotNil(t, cfg.Seed)
	assert.Zero(t, *cfg.Seed)
}

func TestLoadFrom_RejectsUnknownStore(t *testing.T) {
	_, err := config.LoadFrom(map[string]string{"DICEJOURNEY_STORE": "mongo"})
	assert.Error(t, err)
}

func TestLoadFrom_BadNumber(t *testing.T) {
	_, err := config.LoadFrom(map[string]string{"DICEJOURNEY_REDIS_DB": "two"})
	assert.Error(t, err)
}
