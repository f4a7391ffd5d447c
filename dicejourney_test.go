package dicejourney_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/dicejourney"
	"github.com/aretw0/dicejourney/internal/runtime"
	"github.com/aretw0/dicejourney/pkg/adapters/memory"
	"github.com/aretw0/dicejourney/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, opts ...dicejourney.Option) *dicejourney.Engine {
	t.Helper()
	eng := dicejourney.New(memory.NewStore(), opts...)
	require.NoError(t, eng.Init(context.Background()))
	return eng
}

func TestEngine_RollRecordsSession(t *testing.T) {
	fixed := time.UnixMilli(1_000)
	eng := newEngine(t,
		dicejourney.WithSource(runtime.NewFixedSource(15)),
		dicejourney.WithClock(func() time.Time { return fixed }),
	)

	out, err := eng.Roll(context.Background(), "roll-1")
	require.NoError(t, err)

	require.Len(t, out.Steps, 1)
	die := out.Steps[0].Result.Dice[0]
	assert.Equal(t, 15, die.Total)
	assert.True(t, die.Succeeded())
	assert.Equal(t, "Success!", die.Message)
	assert.Empty(t, out.Next)

	assert.Equal(t, "default", out.Session.JourneyID)
	assert.Equal(t, "New Scenario", out.Session.JourneyName)
	assert.Equal(t, int64(1_000), out.Session.Timestamp)

	sessions := eng.History().Sessions("default")
	require.Len(t, sessions, 1)
	assert.Equal(t, out.Session.ID, sessions[0].ID)
}

func TestEngine_RollOutcomeIsDetachedFromHistory(t *testing.T) {
	eng := newEngine(t, dicejourney.WithSource(runtime.NewFixedSource(15)))

	out, err := eng.Roll(context.Background(), "roll-1")
	require.NoError(t, err)

	out.Steps[0].Result.Dice[0].Results[0] = 1
	out.Steps[0].Result.Dice[0].Total = 1
	out.Session.Rolls[0].Dice[0].Total = 2

	sessions := eng.History().Sessions("default")
	require.Len(t, sessions, 1)
	assert.Equal(t, []int{15}, sessions[0].Rolls[0].Dice[0].Results)
	assert.Equal(t, 15, sessions[0].Rolls[0].Dice[0].Total)
}

func TestEngine_RollFollowsBranches(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t, dicejourney.WithSource(runtime.NewFixedSource(3, 4)))
	s := eng.Journeys()

	_, err := s.Create(ctx, "Branching")
	require.NoError(t, err)
	require.NoError(t, s.AddRoll(ctx, domain.PositionedRoll{Roll: domain.Roll{ID: "start", Dice: []domain.Die{{
		ID: "d", Mode: domain.ModeRange, Value: 6, Count: 2,
		Ranges: []domain.Range{
			{ID: "lo", Min: 2, Max: 7, RollIDs: []string{"A"}},
			{ID: "hi", Min: 8, Max: 12, RollIDs: []string{"B"}},
		},
	}}}}))
	require.NoError(t, s.AddRoll(ctx, domain.PositionedRoll{Roll: domain.Roll{ID: "A"}}))
	require.NoError(t, s.AddRoll(ctx, domain.PositionedRoll{Roll: domain.Roll{ID: "B"}}))

	assert.Equal(t, []string{"start"}, eng.EntryRolls())

	out, err := eng.Roll(ctx, "start")
	require.NoError(t, err)
	assert.Equal(t, 7, out.Steps[0].Result.Dice[0].Total)
	assert.Equal(t, []string{"A"}, out.Next)
}

func TestEngine_RollAllAndNothing(t *testing.T) {
	ctx := context.Background()
	eng := newEngine(t, dicejourney.WithSeed(1))

	out, err := eng.Roll(ctx)
	require.NoError(t, err)
	assert.Len(t, out.Steps, 1, "no ids rolls every roll")

	out, err = eng.Roll(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, out.Steps)
	assert.Empty(t, out.Session.ID)
	assert.Equal(t, 1, eng.History().Total(), "nothing recorded for an empty roll")

	require.NoError(t, eng.Journeys().Delete(ctx, "default"))
	out, err = eng.Roll(ctx)
	require.NoError(t, err)
	assert.Empty(t, out.Steps)
	assert.Nil(t, eng.EntryRolls())
}

func TestEngine_Hooks(t *testing.T) {
	rolled := 0
	eng := newEngine(t, dicejourney.WithLifecycleHooks(domain.LifecycleHooks{
		OnRollEvaluated: func(context.Context, *domain.RollEvent) { rolled++ },
	}))

	_, err := eng.Roll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rolled)
}
