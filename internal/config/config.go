// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config holds settings shared by every command. Flags override these values.
type Config struct {
	Dir           string  `env:"DIR" envDefault:"."`
	Store         string  `env:"STORE" envDefault:"file"`
	RedisAddr     string  `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string  `env:"REDIS_PASSWORD"`
	RedisDB       int     `env:"REDIS_DB" envDefault:"0"`
	RedisPrefix   string  `env:"REDIS_PREFIX" envDefault:"dicejourney:"`
	SQLitePath    string  `env:"SQLITE_PATH"`
	LogLevel      string  `env:"LOG_LEVEL" envDefault:"warn"`
	// Seed is nil when unset so that 0 remains a usable seed.
	Seed          *uint64 `env:"SEED"`
	Addr          string  `env:"ADDR" envDefault:":8080"`
}

// Load parses DICEJOURNEY_* environment variables.
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom parses the given environment (nil means the process environment).
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: "DICEJOURNEY_"}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the store backend.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis, StoreSQLite:
		return nil
	default:
		return fmt.Errorf("unknown store %q (want memory, file, redis or sqlite)", c.Store)
	}
}

// DataDir is where the file store keeps its documents.
func (c Config) DataDir() string {
	return filepath.Join(c.Dir, ".dicejourney", "data")
}

// DatabasePath is the SQLite file, defaulting to a file under Dir.
func (c Config) DatabasePath() string {
	if c.SQLitePath != "" {
		return c.SQLitePath
	}
	return filepath.Join(c.Dir, ".dicejourney", "dicejourney.db")
}
