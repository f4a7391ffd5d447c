package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/dicejourney"
	"github.com/aretw0/dicejourney/internal/config"
	"github.com/aretw0/dicejourney/internal/runtime"
	"github.com/aretw0/dicejourney/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, store string, faces ...int) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := config.Config{Dir: t.TempDir(), Store: store}
	var out bytes.Buffer
	app, err := NewApp(context.Background(), cfg, Options{Out: &out, Source: runtime.NewFixedSource(faces...)})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app, &out
}

func TestOpenStore_Backends(t *testing.T) {
	for _, store := range []string{config.StoreMemory, config.StoreFile, config.StoreSQLite} {
		t.Run(store, func(t *testing.T) {
			app, _ := newTestApp(t, store, 1)
			_, ok := app.Engine.Journeys().Current()
			assert.True(t, ok, "default journey should be seeded")
		})
	}
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	_, _, err := OpenStore(context.Background(), config.Config{Store: "floppy"})
	assert.Error(t, err)
}

func TestNewApp_FileStorePersists(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{Dir: dir, Store: config.StoreFile}
	ctx := context.Background()

	app, err := NewApp(ctx, cfg, Options{Out: &bytes.Buffer{}})
	require.NoError(t, err)
	id, err := app.Engine.Journeys().Create(ctx, "Persisted")
	require.NoError(t, err)
	require.NoError(t, app.Close())

	reopened, err := NewApp(ctx, cfg, Options{Out: &bytes.Buffer{}})
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, id, reopened.Engine.Journeys().CurrentID())
}

func TestNewApp_ZeroSeedIsReproducible(t *testing.T) {
	ctx := context.Background()
	seed := uint64(0)

	totals := func() []int {
		cfg := config.Config{Dir: t.TempDir(), Store: config.StoreMemory, Seed: &seed}
		app, err := NewApp(ctx, cfg, Options{Out: &bytes.Buffer{}})
		require.NoError(t, err)
		defer func() { _ = app.Close() }()

		var out []int
		for range 8 {
			res, err := app.Engine.Roll(ctx)
			require.NoError(t, err)
			require.NotEmpty(t, res.Steps)
			out = append(out, res.Steps[0].Result.Dice[0].Total)
		}
		return out
	}

	assert.Equal(t, totals(), totals())
}

func TestRun_EntryRolls(t *testing.T) {
	app, out := newTestApp(t, config.StoreMemory, 15)

	require.NoError(t, app.Run(context.Background(), RunOptions{}))

	assert.Contains(t, out.String(), "## Starting Roll")
	assert.Contains(t, out.String(), "✓ success")
	assert.Contains(t, out.String(), "The journey ends here.")
	assert.Len(t, app.Engine.History().Sessions("default"), 1)
}

func TestRun_JSON(t *testing.T) {
	app, out := newTestApp(t, config.StoreMemory, 2)

	require.NoError(t, app.Run(context.Background(), RunOptions{RollIDs: []string{"roll-1"}, JSON: true}))

	var got dicejourney.Outcome
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.Steps, 1)
	assert.Equal(t, "Failed", got.Steps[0].Result.Dice[0].Message)
}

func TestRun_Follow(t *testing.T) {
	app, out := newTestApp(t, config.StoreMemory, 20)
	ctx := context.Background()

	require.NoError(t, app.Engine.Journeys().AddRoll(ctx, domain.PositionedRoll{Roll: domain.Roll{ID: "roll-2", Name: "Second"}}))
	require.NoError(t, app.Engine.Journeys().UpdateDie(ctx, "roll-1", "roll-1-dice-1", map[string]any{
		"onSuccess": map[string]any{"message": "On!", "rollIds": []any{"roll-2"}},
	}))

	err := app.Run(ctx, RunOptions{RollIDs: []string{"roll-1"}, Follow: true, In: strings.NewReader("\n")})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "## Starting Roll")
	assert.Contains(t, out.String(), "## Second")
	assert.Contains(t, out.String(), "Journey finished after 2 step(s).")
	assert.Len(t, app.Engine.History().Sessions("default"), 2)
}

func TestRun_FollowQuit(t *testing.T) {
	app, out := newTestApp(t, config.StoreMemory, 20)
	ctx := context.Background()

	require.NoError(t, app.Engine.Journeys().UpdateDie(ctx, "roll-1", "roll-1-dice-1", map[string]any{
		"onSuccess": map[string]any{"message": "Again", "rollIds": []any{"roll-1"}},
	}))

	err := app.Run(ctx, RunOptions{Follow: true, RollIDs: []string{"roll-1"}, In: strings.NewReader("q\n")})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Stopped after 1 step(s).")
}

func TestExportImport(t *testing.T) {
	app, out := newTestApp(t, config.StoreMemory, 1)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journeys.yaml")

	require.NoError(t, app.Export(ExportOptions{Path: path}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: New Scenario")

	require.NoError(t, app.Engine.Journeys().Delete(ctx, "default"))
	_, ok := app.Engine.Journeys().Current()
	require.False(t, ok)

	require.NoError(t, app.Import(ctx, path, 0, 0))
	assert.Equal(t, "default", app.Engine.Journeys().CurrentID())
	assert.Contains(t, out.String(), "Imported 1 journey(s)")
}

func TestValidateAndGraph(t *testing.T) {
	app, out := newTestApp(t, config.StoreMemory, 1)

	hasErrors, err := app.Validate(false)
	require.NoError(t, err)
	assert.False(t, hasErrors)

	require.NoError(t, app.Graph(""))
	assert.Contains(t, out.String(), "roll_1((\"Starting Roll\"))")
}

func TestListJourneys(t *testing.T) {
	app, out := newTestApp(t, config.StoreMemory, 1)

	require.NoError(t, app.ListJourneys(false))

	assert.Contains(t, out.String(), "default")
	assert.Contains(t, out.String(), "New Scenario")
	assert.Contains(t, out.String(), "*")
}
