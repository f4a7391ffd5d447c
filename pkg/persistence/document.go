package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/aretw0/dicejourney/pkg/domain"
	"github.com/aretw0/dicejourney/pkg/ports"
)

// ErrNotLoaded is returned when a Document is used before Load.
var ErrNotLoaded = errors.New("document not loaded")

// Document is a JSON value of type T persisted under one key.
// Safe for concurrent use.
type Document[T any] struct {
	kv  ports.KVStore
	key string

	mu        sync.RWMutex
	value     *T
	normalize func(*T)
}

// NewDocument binds a document to a key in the given store.
func NewDocument[T any](kv ports.KVStore, key string) *Document[T] {
	return &Document[T]{kv: kv, key: key}
}

// Key returns the storage key.
func (d *Document[T]) Key() string {
	return d.key
}

// Load reads the document from the store. When the key does not exist yet,
// seed provides the initial value, which is persisted immediately.
// normalize, if not nil, runs on every loaded value (e.g. to fill nil maps).
func (d *Document[T]) Load(ctx context.Context, seed func() *T, normalize func(*T)) error {
	d.mu.Lock()
	d.normalize = normalize
	d.mu.Unlock()

	raw, err := d.kv.Get(ctx, d.key)
	switch {
	case errors.Is(err, domain.ErrKeyNotFound):
		value := seed()
		if normalize != nil {
			normalize(value)
		}
		stored, err := d.write(ctx, value)
		if err != nil {
			return err
		}
		d.mu.Lock()
		d.value = stored
		d.mu.Unlock()
		return nil
	case err != nil:
		return fmt.Errorf("failed to load %s: %w", d.key, err)
	}

	value := new(T)
	if err := json.Unmarshal(raw, value); err != nil {
		return fmt.Errorf("failed to decode %s: %w", d.key, err)
	}
	if normalize != nil {
		normalize(value)
	}

	d.mu.Lock()
	d.value = value
	d.mu.Unlock()
	return nil
}

// Read runs fn against the current value under a read lock.
// fn must not retain or modify the value.
func (d *Document[T]) Read(fn func(*T)) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.value == nil {
		return ErrNotLoaded
	}
	fn(d.value)
	return nil
}

// Mutate applies fn to a copy of the value. When fn returns true the copy is
// persisted and its decoded form becomes the current value, so nothing fn
// attached to the copy stays shared with the caller. When fn returns false
// nothing is written.
func (d *Document[T]) Mutate(ctx context.Context, fn func(*T) bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.value == nil {
		return ErrNotLoaded
	}

	next, err := Clone(d.value)
	if err != nil {
		return err
	}
	if !fn(next) {
		return nil
	}

	stored, err := d.write(ctx, next)
	if err != nil {
		return err
	}
	d.value = stored
	return nil
}

// Replace persists value and makes a copy of it current.
func (d *Document[T]) Replace(ctx context.Context, value *T) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	stored, err := d.write(ctx, value)
	if err != nil {
		return err
	}
	d.value = stored
	return nil
}

// write persists value and returns the value decoded back from the
// written bytes. Nothing is written when encoding or decoding fails.
func (d *Document[T]) write(ctx context.Context, value *T) (*T, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", d.key, err)
	}
	stored := new(T)
	if err := json.Unmarshal(data, stored); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", d.key, err)
	}
	if d.normalize != nil {
		d.normalize(stored)
	}
	if err := d.kv.Set(ctx, d.key, data); err != nil {
		return nil, fmt.Errorf("failed to persist %s: %w", d.key, err)
	}
	return stored, nil
}

// Clone deep-copies a JSON-serializable value.
func Clone[T any](v *T) (*T, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to copy value: %w", err)
	}
	out := new(T)
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("failed to copy value: %w", err)
	}
	return out, nil
}
