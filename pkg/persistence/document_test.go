package persistence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/dicejourney/pkg/adapters/memory"
	"github.com/aretw0/dicejourney/pkg/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	Count int               `json:"count"`
	Tags  map[string]string `json:"tags"`
}

type failingStore struct {
	*memory.Store
	fail bool
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Store.Set(ctx, key, value)
}

func seed() *counter { return &counter{Count: 1} }

func fillTags(c *counter) {
	if c.Tags == nil {
		c.Tags = map[string]string{}
	}
}

func TestDocument_LoadSeedsMissingKey(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	doc := persistence.NewDocument[counter](kv, "counter")

	require.NoError(t, doc.Load(ctx, seed, fillTags))

	raw, err := kv.Get(ctx, "counter")
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":1,"tags":{}}`, string(raw))
	assert.Equal(t, "counter", doc.Key())
}

func TestDocument_LoadExisting(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	require.NoError(t, kv.Set(ctx, "counter", []byte(`{"count":7}`)))
	doc := persistence.NewDocument[counter](kv, "counter")

	require.NoError(t, doc.Load(ctx, seed, fillTags))

	require.NoError(t, doc.Read(func(c *counter) {
		assert.Equal(t, 7, c.Count)
		assert.NotNil(t, c.Tags)
	}))
}

func TestDocument_LoadCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	require.NoError(t, kv.Set(ctx, "counter", []byte(`{not json`)))
	doc := persistence.NewDocument[counter](kv, "counter")

	assert.Error(t, doc.Load(ctx, seed, nil))
}

func TestDocument_NotLoaded(t *testing.T) {
	doc := persistence.NewDocument[counter](memory.NewStore(), "counter")

	assert.ErrorIs(t, doc.Read(func(*counter) {}), persistence.ErrNotLoaded)
	assert.ErrorIs(t, doc.Mutate(context.Background(), func(*counter) bool { return true }), persistence.ErrNotLoaded)
}

func TestDocument_Mutate(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	doc := persistence.NewDocument[counter](kv, "counter")
	require.NoError(t, doc.Load(ctx, seed, fillTags))

	require.NoError(t, doc.Mutate(ctx, func(c *counter) bool {
		c.Count++
		c.Tags["a"] = "b"
		return true
	}))

	raw, err := kv.Get(ctx, "counter")
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":2,"tags":{"a":"b"}}`, string(raw))
}

func TestDocument_MutateNoChangeSkipsWrite(t *testing.T) {
	ctx := context.Background()
	kv := &failingStore{Store: memory.NewStore()}
	doc := persistence.NewDocument[counter](kv, "counter")
	require.NoError(t, doc.Load(ctx, seed, fillTags))

	kv.fail = true
	assert.NoError(t, doc.Mutate(ctx, func(c *counter) bool {
		c.Count = 100
		return false
	}))
	require.NoError(t, doc.Read(func(c *counter) { assert.Equal(t, 1, c.Count) }))
}

func TestDocument_MutateIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	kv := &failingStore{Store: memory.NewStore()}
	doc := persistence.NewDocument[counter](kv, "counter")
	require.NoError(t, doc.Load(ctx, seed, fillTags))

	kv.fail = true
	err := doc.Mutate(ctx, func(c *counter) bool {
		c.Count = 100
		c.Tags["x"] = "y"
		return true
	})
	require.Error(t, err)

	require.NoError(t, doc.Read(func(c *counter) {
		assert.Equal(t, 1, c.Count)
		assert.Empty(t, c.Tags)
	}))
}

func TestDocument_MutateDetachesCallerValues(t *testing.T) {
	ctx := context.Background()
	doc := persistence.NewDocument[counter](memory.NewStore(), "counter")
	require.NoError(t, doc.Load(ctx, seed, fillTags))

	tags := map[string]string{"k": "v"}
	require.NoError(t, doc.Mutate(ctx, func(c *counter) bool {
		c.Tags = tags
		return true
	}))
	tags["k"] = "changed"

	require.NoError(t, doc.Read(func(c *counter) { assert.Equal(t, "v", c.Tags["k"]) }))
}

func TestDocument_ReplaceDetachesCallerValue(t *testing.T) {
	ctx := context.Background()
	doc := persistence.NewDocument[counter](memory.NewStore(), "counter")
	require.NoError(t, doc.Load(ctx, seed, fillTags))

	value := &counter{Count: 5, Tags: map[string]string{"k": "v"}}
	require.NoError(t, doc.Replace(ctx, value))
	value.Count = 6
	value.Tags["k"] = "changed"

	require.NoError(t, doc.Read(func(c *counter) {
		assert.Equal(t, 5, c.Count)
		assert.Equal(t, "v", c.Tags["k"])
	}))
}

func TestDocument_Replace(t *testing.T) {
	ctx := context.Background()
	kv := memory.NewStore()
	doc := persistence.NewDocument[counter](kv, "counter")
	require.NoError(t, doc.Load(ctx, seed, fillTags))

	require.NoError(t, doc.Replace(ctx, &counter{Count: 42}))

	require.NoError(t, doc.Read(func(c *counter) { assert.Equal(t, 42, c.Count) }))
	raw, err := kv.Get(ctx, "counter")
	require.NoError(t, err)
	assert.JSONEq(t, `{"count":42,"tags":null}`, string(raw))
}

func TestClone(t *testing.T) {
	orig := &counter{Count: 3, Tags: map[string]string{"k": "v"}}

	cp, err := persistence.Clone(orig)
	require.NoError(t, err)
	cp.Tags["k"] = "changed"

	assert.Equal(t, "v", orig.Tags["k"])
	assert.Equal(t, 3, cp.Count)
}
