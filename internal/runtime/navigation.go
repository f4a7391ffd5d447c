package runtime

import "github.com/aretw0/dicejourney/pkg/domain"

// EntryRolls returns the rolls no die branches to, in journey order.
// A journey whose every roll is a target (a cycle) falls back to its first roll.
func EntryRolls(journey domain.Journey) []string {
	incoming := make(map[string]bool)
	for _, r := range journey.Rolls {
		for _, d := range r.Dice {
			for _, t := range d.Targets() {
				if t != r.ID {
					incoming[t] = true
				}
			}
		}
	}

	var entries []string
	for _, r := range journey.Rolls {
		if !incoming[r.ID] {
			entries = append(entries, r.ID)
		}
	}
	if len(entries) == 0 && len(journey.Rolls) > 0 {
		entries = []string{journey.Rolls[0].ID}
	}
	return entries
}

// Reachable returns every roll id reachable from the given starting rolls,
// following all success, failure and range edges.
func Reachable(journey domain.Journey, from ...string) map[string]bool {
	visited := make(map[string]bool)
	queue := append([]string(nil), from...)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		roll, ok := journey.Roll(current)
		if !ok {
			continue
		}
		visited[current] = true

		for _, d := range roll.Dice {
			for _, t := range d.Targets() {
				if !visited[t] {
					queue = append(queue, t)
				}
			}
		}
	}
	return visited
}
