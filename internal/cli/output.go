package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aretw0/dicejourney/internal/presentation/graph"
	"github.com/aretw0/dicejourney/internal/presentation/tui"
	"github.com/aretw0/dicejourney/internal/validator"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ListJourneys prints a table of journeys, marking the current one.
func (a *App) ListJourneys(asJSON bool) error {
	list := a.Engine.Journeys().List()
	if asJSON {
		return writeJSON(a.Out, list)
	}
	current := a.Engine.Journeys().CurrentID()
	tw := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tNAME\tROLLS")
	for _, s := range list {
		mark := ""
		if s.ID == current {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", mark, s.ID, s.Name, s.Rolls)
	}
	return tw.Flush()
}

// ShowJourney prints the current journey's rolls and dice.
func (a *App) ShowJourney(asJSON bool) error {
	j, err := a.CurrentJourney()
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(a.Out, j)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", j.Name)
	for _, r := range j.Rolls {
		fmt.Fprintf(&sb, "## %s `%s`\n\n", r.Name, r.ID)
		if len(r.Dice) == 0 {
			sb.WriteString("_No dice._\n\n")
			continue
		}
		for _, d := range r.Dice {
			fmt.Fprintf(&sb, "- `%s` %s: %dd%d %s\n", d.ID, d.Name, d.Count, d.Value, d.EffectiveMode())
		}
		sb.WriteString("\n")
	}
	return a.Print(sb.String())
}

// ListHistory prints the sessions of a journey, newest first.
func (a *App) ListHistory(journeyID string, asJSON bool) error {
	sessions := a.Engine.History().Sessions(journeyID)
	if asJSON {
		return writeJSON(a.Out, sessions)
	}
	if len(sessions) == 0 {
		printSystemMessage(a.Out, "No history for '%s'.", journeyID)
		return nil
	}
	tw := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tROLLS")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", s.ID, time.UnixMilli(s.Timestamp).Format(time.DateTime), len(s.Rolls))
	}
	return tw.Flush()
}

// ShowSession prints one session in full.
func (a *App) ShowSession(journeyID, sessionID string, asJSON bool) error {
	s, ok := a.Engine.History().Get(journeyID, sessionID)
	if !ok {
		return fmt.Errorf("session %s not found in journey %s", sessionID, journeyID)
	}
	if asJSON {
		return writeJSON(a.Out, s)
	}
	return a.Print(tui.FormatSession(s))
}

// Graph prints the Mermaid diagram of the current journey, highlighting a session when given.
func (a *App) Graph(sessionID string) error {
	j, err := a.CurrentJourney()
	if err != nil {
		return err
	}
	var overlay *graph.GraphOverlay
	if sessionID != "" {
		s, ok := a.Engine.History().Get(j.ID, sessionID)
		if !ok {
			return fmt.Errorf("session %s not found in journey %s", sessionID, j.ID)
		}
		overlay = graph.OverlayFromSession(s)
	}
	_, err = io.WriteString(a.Out, graph.GenerateMermaid(j.Strip(), overlay))
	return err
}

// Validate prints the issues of the current journey and reports whether any is an error.
func (a *App) Validate(asJSON bool) (bool, error) {
	j, err := a.CurrentJourney()
	if err != nil {
		return false, err
	}
	issues := validator.ValidateJourney(j.Strip())
	if asJSON {
		if issues == nil {
			issues = []validator.Issue{}
		}
		return validator.HasErrors(issues), writeJSON(a.Out, issues)
	}
	for _, issue := range issues {
		fmt.Fprintln(a.Out, issue.String())
	}
	return validator.HasErrors(issues), nil
}
