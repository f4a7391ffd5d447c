package tui_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/aretw0/dicejourney/internal/presentation/tui"
	"github.com/aretw0/dicejourney/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestFormatRoll(t *testing.T) {
	r := domain.RollResult{
		RollID:   "roll-1",
		RollName: "Starting Roll",
		Dice: []domain.DieResult{
			{ID: "d1", Name: "Check", Value: 20, Count: 1, Results: []int{15}, Total: 15,
				IsSuccess: boolPtr(true), Message: "Success!", Targets: []string{"roll-2"}},
			{ID: "d2", Value: 6, Count: 2, Results: []int{3, 4}, Total: 7,
				RangeID: "mid", RangeLabel: "a|b"},
			{ID: "d3", Value: 6, Count: 1, Results: []int{1}, Total: 1, IsSuccess: boolPtr(false)},
		},
	}

	got := tui.FormatRoll(r)

	assert.Contains(t, got, "## Starting Roll")
	assert.Contains(t, got, "| Check | 1d20 | 15 | 15 | ✓ success |")
	assert.Contains(t, got, `| d2 | 2d6 | 3, 4 | 7 | a\|b |`)
	assert.Contains(t, got, "| d3 | 1d6 | 1 | 1 | ✗ failure |")
	assert.Contains(t, got, "- **Check**: Success! → `roll-2`")
}

func TestFormatRoll_NoDice(t *testing.T) {
	got := tui.FormatRoll(domain.RollResult{RollID: "empty"})
	assert.Contains(t, got, "## empty")
	assert.Contains(t, got, "_No dice._")
}

func TestFormatSession(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC).UnixMilli()
	s := domain.HistorySession{
		ID: "session-1", Timestamp: ts, JourneyName: "Cave",
		Rolls: []domain.RollResult{{RollID: "a"}, {RollID: "b"}},
	}

	got := tui.FormatSession(s)

	assert.Contains(t, got, "# Cave")
	assert.Contains(t, got, "_Session `session-1` at 2024-05-01T12:00:00Z_")
	assert.Contains(t, got, "## a")
	assert.Contains(t, got, "## b")
}

func TestFormatNext(t *testing.T) {
	assert.Equal(t, "_The journey ends here._\n", tui.FormatNext(nil))
	assert.Equal(t, "**Next:** `a`, `b`\n", tui.FormatNext([]string{"a", "b"}))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), `|____/|_|\___\___|`)
}

func TestPlainRenderer(t *testing.T) {
	out, err := tui.PlainRenderer("# hi")
	assert.NoError(t, err)
	assert.Equal(t, "# hi", out)
}
