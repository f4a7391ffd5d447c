package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/dicejourney/internal/runtime"
	"github.com/aretw0/dicejourney/pkg/domain"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	VisitedRolls []string
	// Next are the rolls suggested by the last session.
	Next []string
}

// OverlayFromSession marks every roll of a session as visited and the
// targets of its outcomes as next.
func OverlayFromSession(s domain.HistorySession) *GraphOverlay {
	o := &GraphOverlay{}
	seen := make(map[string]bool)
	for _, r := range s.Rolls {
		o.VisitedRolls = append(o.VisitedRolls, r.RollID)
		for _, d := range r.Dice {
			for _, t := range d.Targets {
				if !seen[t] {
					seen[t] = true
					o.Next = append(o.Next, t)
				}
			}
		}
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of a journey.
// Entry rolls are drawn as ((Circle)), other rolls as [Rectangle].
// Success edges are solid, failure edges dotted and range edges carry the range label.
func GenerateMermaid(j domain.Journey, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	entry := make(map[string]bool)
	for _, id := range runtime.EntryRolls(j) {
		entry[id] = true
	}

	for _, roll := range j.Rolls {
		safeID := sanitizeMermaidID(roll.ID)

		opener, closer := "[", "]"
		if entry[roll.ID] {
			opener, closer = "((", "))"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(displayName(roll.Name, roll.ID)), closer))

		for _, die := range roll.Dice {
			name := escapeLabel(displayName(die.Name, die.ID))
			if die.EffectiveMode() == domain.ModeRange {
				for _, r := range die.Ranges {
					label := fmt.Sprintf("%s %d-%d", name, r.Min, r.Max)
					if r.Label != "" {
						label = fmt.Sprintf("%s %s", name, escapeLabel(r.Label))
					}
					for _, to := range r.RollIDs {
						if !j.HasRoll(to) {
							continue
						}
						sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", safeID, label, sanitizeMermaidID(to)))
					}
				}
				continue
			}

			if die.OnSuccess != nil {
				for _, to := range die.OnSuccess.RollIDs {
					if !j.HasRoll(to) {
						continue
					}
					sb.WriteString(fmt.Sprintf("    %s -- \"%s ✓\" --> %s\n", safeID, name, sanitizeMermaidID(to)))
				}
			}
			if die.OnFailure != nil {
				for _, to := range die.OnFailure.RollIDs {
					if !j.HasRoll(to) {
						continue
					}
					sb.WriteString(fmt.Sprintf("    %s -. \"%s ✗\" .-> %s\n", safeID, name, sanitizeMermaidID(to)))
				}
			}
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef next fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		writeClass(&sb, j, overlay.VisitedRolls, "visited")
		writeClass(&sb, j, overlay.Next, "next")
	}

	return sb.String()
}

func writeClass(sb *strings.Builder, j domain.Journey, ids []string, class string) {
	seen := make(map[string]bool)
	for _, id := range ids {
		// History may point at rolls that were deleted since.
		if !j.HasRoll(id) {
			continue
		}
		safeID := sanitizeMermaidID(id)
		if !seen[safeID] && safeID != "" {
			seen[safeID] = true
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", safeID, class))
		}
	}
}

func displayName(name, id string) string {
	if name != "" {
		return name
	}
	return id
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
