package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/dicejourney/internal/presentation/graph"
	"github.com/aretw0/dicejourney/pkg/domain"
)

func sampleJourney() domain.Journey {
	return domain.Journey{ID: "j", Name: "Cave", Rolls: []domain.Roll{
		{ID: "roll-1", Name: "Entrance", Dice: []domain.Die{{
			ID: "d1", Name: "Perception", Value: 20, Count: 1, Success: domain.IntPtr(10),
			OnSuccess: &domain.Callback{Message: "ok", RollIDs: []string{"roll-2"}},
			OnFailure: &domain.Callback{Message: "no", RollIDs: []string{"roll-3", "ghost"}},
		}}},
		{ID: "roll-2", Name: "Treasure \"room\"", Dice: []domain.Die{{
			ID: "d2", Name: "Loot", Mode: domain.ModeRange, Value: 6, Count: 2,
			Ranges: []domain.Range{
				{ID: "r1", Min: 2, Max: 6, Label: "poor", RollIDs: []string{"roll-3"}},
				{ID: "r2", Min: 7, Max: 12, RollIDs: []string{"roll-3"}},
			},
		}}},
		{ID: "roll-3"},
	}}
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "Roll Shapes",
			contains: []string{
				"roll_1((\"Entrance\"))",
				"roll_2[\"Treasure 'room'\"]",
				"roll_3[\"roll-3\"]",
			},
		},
		{
			name: "Threshold Edges",
			contains: []string{
				"roll_1 -- \"Perception ✓\" --> roll_2",
				"roll_1 -. \"Perception ✗\" .-> roll_3",
			},
			excludes: []string{"ghost"},
		},
		{
			name: "Range Edges",
			contains: []string{
				"roll_2 -- \"Loot poor\" --> roll_3",
				"roll_2 -- \"Loot 7-12\" --> roll_3",
			},
		},
		{
			name: "Overlay",
			overlay: &graph.GraphOverlay{
				VisitedRolls: []string{"roll-1", "roll-1", "deleted"},
				Next:         []string{"roll-2"},
			},
			contains: []string{
				"classDef visited",
				"class roll_1 visited;",
				"class roll_2 next;",
			},
			excludes: []string{"class deleted"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(sampleJourney(), tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, got)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("expected output not to contain %q, got:\n%s", unwanted, got)
				}
			}
			if strings.Count(got, "class roll_1 visited;") > 1 {
				t.Errorf("visited rolls must be de-duplicated")
			}
		})
	}
}

func TestOverlayFromSession(t *testing.T) {
	s := domain.HistorySession{Rolls: []domain.RollResult{
		{RollID: "roll-1", Dice: []domain.DieResult{{Targets: []string{"roll-2", "roll-3"}}}},
		{RollID: "roll-2", Dice: []domain.DieResult{{Targets: []string{"roll-3"}}}},
	}}

	o := graph.OverlayFromSession(s)

	if strings.Join(o.VisitedRolls, ",") != "roll-1,roll-2" {
		t.Errorf("unexpected visited rolls %v", o.VisitedRolls)
	}
	if strings.Join(o.Next, ",") != "roll-2,roll-3" {
		t.Errorf("unexpected next rolls %v", o.Next)
	}
}
