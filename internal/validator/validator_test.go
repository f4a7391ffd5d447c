package validator_test

import (
	"testing"

	"github.com/aretw0/dicejourney/internal/validator"
	"github.com/aretw0/dicejourney/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func messages(issues []validator.Issue) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.String()
	}
	return out
}

func TestValidateJourney_Clean(t *testing.T) {
	j := domain.Journey{ID: "j", Rolls: []domain.Roll{
		{ID: "a", Dice: []domain.Die{{
			ID: "d", Value: 20, Count: 1, Success: domain.IntPtr(10),
			OnSuccess: &domain.Callback{RollIDs: []string{"b"}},
		}}},
		{ID: "b"},
	}}

	assert.Empty(t, validator.ValidateJourney(j))
}

func TestValidateJourney_Findings(t *testing.T) {
	j := domain.Journey{ID: "j", Rolls: []domain.Roll{
		{ID: "a", Dice: []domain.Die{
			{ID: "d", Value: 0, Count: 1, OnFailure: &domain.Callback{RollIDs: []string{"ghost"}}},
			{ID: "r", Mode: domain.ModeRange, Value: 6, Count: 2, Ranges: []domain.Range{
				{ID: "low", Min: 2, Max: 7},
				{ID: "high", Min: 7, Max: 12},
				{ID: "bad", Min: 9, Max: 3},
			}},
		}},
		{ID: "a"},
	}}

	got := messages(validator.ValidateJourney(j))

	assert.Contains(t, got, "[error] roll a, die d: value must be at least 1, got 0")
	assert.Contains(t, got, "[warning] roll a, die d: threshold die has no success value; every roll passes")
	assert.Contains(t, got, "[warning] roll a, die d: branches to missing roll ghost")
	assert.Contains(t, got, "[warning] roll a, die r: ranges low and high overlap; low wins")
	assert.Contains(t, got, "[error] roll a, die r: range bad has min 9 above max 3")
	assert.Contains(t, got, "[error] roll a: duplicate roll id")
	assert.True(t, validator.HasErrors(validator.ValidateJourney(j)))
}

func TestValidateJourney_OversizedDie(t *testing.T) {
	j := domain.Journey{ID: "j", Rolls: []domain.Roll{
		{ID: "a", Dice: []domain.Die{{ID: "d", Value: 2_000_000, Count: 5000, Success: domain.IntPtr(1)}}},
	}}

	issues := validator.ValidateJourney(j)
	got := messages(issues)
	assert.Contains(t, got, "[error] roll a, die d: value must be at most 1000000, got 2000000")
	assert.Contains(t, got, "[error] roll a, die d: count must be at most 1000, got 5000")
	assert.True(t, validator.HasErrors(issues))
}

func TestValidateJourney_Unreachable(t *testing.T) {
	j := domain.Journey{ID: "j", Rolls: []domain.Roll{
		{ID: "start", Dice: []domain.Die{{ID: "d", Value: 6, Count: 1, Success: domain.IntPtr(3),
			OnSuccess: &domain.Callback{RollIDs: []string{"loop-a"}}}}},
		{ID: "loop-a", Dice: []domain.Die{{ID: "d", Value: 6, Count: 1, Success: domain.IntPtr(3),
			OnSuccess: &domain.Callback{RollIDs: []string{"loop-b"}}}}},
		{ID: "loop-b", Dice: []domain.Die{{ID: "d", Value: 6, Count: 1, Success: domain.IntPtr(3),
			OnSuccess: &domain.Callback{RollIDs: []string{"loop-a"}}}}},
		{ID: "island-a", Dice: []domain.Die{{ID: "d", Value: 6, Count: 1, Success: domain.IntPtr(3),
			OnSuccess: &domain.Callback{RollIDs: []string{"island-b"}}}}},
		{ID: "island-b", Dice: []domain.Die{{ID: "d", Value: 6, Count: 1, Success: domain.IntPtr(3),
			OnSuccess: &domain.Callback{RollIDs: []string{"island-a"}}}}},
	}}

	issues := validator.ValidateJourney(j)
	got := messages(issues)
	assert.Contains(t, got, "[info] roll island-a: unreachable from the entry rolls")
	assert.Contains(t, got, "[info] roll island-b: unreachable from the entry rolls")
	assert.NotContains(t, got, "[info] roll loop-a: unreachable from the entry rolls")
	assert.False(t, validator.HasErrors(issues))
}
