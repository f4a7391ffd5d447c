package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/dicejourney/pkg/domain"
)

// FormatRoll renders one roll result as markdown.
func FormatRoll(r domain.RollResult) string {
	var sb strings.Builder
	name := r.RollName
	if name == "" {
		name = r.RollID
	}
	fmt.Fprintf(&sb, "## %s\n\n", name)

	if len(r.Dice) == 0 {
		sb.WriteString("_No dice._\n")
		return sb.String()
	}

	sb.WriteString("| Die | Dice | Results | Total | Outcome |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, d := range r.Dice {
		fmt.Fprintf(&sb, "| %s | %dd%d | %s | %d | %s |\n",
			cell(dieName(d)), d.Count, d.Value, joinInts(d.Results), d.Total, cell(outcome(d)))
	}

	var notes []string
	for _, d := range r.Dice {
		line := ""
		if d.Message != "" {
			line = fmt.Sprintf("**%s**: %s", dieName(d), d.Message)
		}
		if len(d.Targets) > 0 {
			if line == "" {
				line = fmt.Sprintf("**%s**", dieName(d))
			}
			line += fmt.Sprintf(" → `%s`", strings.Join(d.Targets, "`, `"))
		}
		if line != "" {
			notes = append(notes, "- "+line)
		}
	}
	if len(notes) > 0 {
		sb.WriteString("\n")
		sb.WriteString(strings.Join(notes, "\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatSession renders a history session with all of its rolls.
func FormatSession(s domain.HistorySession) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", s.JourneyName)
	fmt.Fprintf(&sb, "_Session `%s` at %s_\n\n", s.ID, time.UnixMilli(s.Timestamp).UTC().Format(time.RFC3339))
	for i, r := range s.Rolls {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(FormatRoll(r))
	}
	return sb.String()
}

// FormatNext renders the suggested follow-up rolls.
func FormatNext(next []string) string {
	if len(next) == 0 {
		return "_The journey ends here._\n"
	}
	return fmt.Sprintf("**Next:** `%s`\n", strings.Join(next, "`, `"))
}

func dieName(d domain.DieResult) string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

func outcome(d domain.DieResult) string {
	if d.IsSuccess == nil {
		switch {
		case d.RangeLabel != "":
			return d.RangeLabel
		case d.RangeID != "":
			return d.RangeID
		default:
			return "no range"
		}
	}
	if *d.IsSuccess {
		return "✓ success"
	}
	return "✗ failure"
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
