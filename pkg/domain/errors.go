package domain

import "errors"

// ErrKeyNotFound is returned by a KV store when a key has never been written.
var ErrKeyNotFound = errors.New("key not found")

// ErrInvalidConfig is returned when an exchange document cannot be decoded into a Config.
var ErrInvalidConfig = errors.New("invalid journey config")
