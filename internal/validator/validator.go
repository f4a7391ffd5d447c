package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/dicejourney/internal/runtime"
	"github.com/aretw0/dicejourney/pkg/domain"
)

// Severity ranks an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is one finding about a journey.
type Issue struct {
	Severity Severity `json:"severity"`
	RollID   string   `json:"rollId,omitempty"`
	DieID    string   `json:"dieId,omitempty"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	var loc []string
	if i.RollID != "" {
		loc = append(loc, "roll "+i.RollID)
	}
	if i.DieID != "" {
		loc = append(loc, "die "+i.DieID)
	}
	if len(loc) == 0 {
		return fmt.Sprintf("[%s] %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", i.Severity, strings.Join(loc, ", "), i.Message)
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidateJourney checks a journey for broken links, ambiguous ranges,
// impossible dice and rolls that can never be reached.
// Nothing here is enforced at edit time; the evaluator tolerates all of it.
func ValidateJourney(j domain.Journey) []Issue {
	var issues []Issue

	rollSeen := make(map[string]bool)
	for _, r := range j.Rolls {
		if rollSeen[r.ID] {
			issues = append(issues, Issue{Severity: SeverityError, RollID: r.ID, Message: "duplicate roll id"})
		}
		rollSeen[r.ID] = true

		dieSeen := make(map[string]bool)
		for _, d := range r.Dice {
			if dieSeen[d.ID] {
				issues = append(issues, Issue{Severity: SeverityError, RollID: r.ID, DieID: d.ID, Message: "duplicate die id"})
			}
			dieSeen[d.ID] = true
			issues = append(issues, validateDie(j, r, d)...)
		}
	}

	entries := runtime.EntryRolls(j)
	reached := runtime.Reachable(j, entries...)
	for _, r := range j.Rolls {
		if !reached[r.ID] {
			issues = append(issues, Issue{Severity: SeverityInfo, RollID: r.ID, Message: "unreachable from the entry rolls"})
		}
	}

	return issues
}

func validateDie(j domain.Journey, r domain.Roll, d domain.Die) []Issue {
	var issues []Issue
	add := func(sev Severity, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, RollID: r.ID, DieID: d.ID, Message: fmt.Sprintf(format, args...)})
	}

	switch {
	case d.Value < 1:
		add(SeverityError, "value must be at least 1, got %d", d.Value)
	case d.Value > runtime.MaxDieValue:
		add(SeverityError, "value must be at most %d, got %d", runtime.MaxDieValue, d.Value)
	}
	switch {
	case d.Count < 1:
		add(SeverityError, "count must be at least 1, got %d", d.Count)
	case d.Count > runtime.MaxDiceCount:
		add(SeverityError, "count must be at most %d, got %d", runtime.MaxDiceCount, d.Count)
	}
	switch d.Mode {
	case "", domain.ModeThreshold, domain.ModeRange:
	default:
		add(SeverityError, "unknown mode %q", d.Mode)
	}

	if d.EffectiveMode() == domain.ModeThreshold {
		if d.Success == nil {
			add(SeverityWarning, "threshold die has no success value; every roll passes")
		}
	} else {
		if len(d.Ranges) == 0 {
			add(SeverityWarning, "range die has no ranges; every roll is a dead end")
		}
		for i, a := range d.Ranges {
			if a.Min > a.Max {
				add(SeverityError, "range %s has min %d above max %d", a.ID, a.Min, a.Max)
			}
			for _, b := range d.Ranges[i+1:] {
				if a.Overlaps(b) {
					add(SeverityWarning, "ranges %s and %s overlap; %s wins", a.ID, b.ID, a.ID)
				}
			}
		}
	}

	for _, target := range d.Targets() {
		if !j.HasRoll(target) {
			add(SeverityWarning, "branches to missing roll %s", target)
		}
	}
	return issues
}
