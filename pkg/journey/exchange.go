package journey

import (
	"context"

	"github.com/aretw0/dicejourney/pkg/domain"
)

// Export returns the current journey as a single-entry Config without positions.
// Returns false when there is no current journey.
func (s *Storage) Export() (*domain.Config, bool) {
	current, ok := s.Current()
	if !ok {
		return nil, false
	}
	cfg := domain.NewConfig()
	cfg.Set(current.ID, current.Strip())
	return cfg, true
}

// ExportAll returns every journey as a Config, in insertion order.
func (s *Storage) ExportAll() *domain.Config {
	cfg := domain.NewConfig()
	for _, summary := range s.List() {
		if j, ok := s.Get(summary.ID); ok {
			cfg.Set(summary.ID, j.Strip())
		}
	}
	return cfg
}

// Import merges the journeys of cfg into the store, keyed by their Config key.
// Existing journeys with the same id are overwritten in place (last write wins).
// Rolls are laid out on a grid: x = defaultX + rollIndex*300, y = defaultY + journeyIndex*200.
// When no journey is current, the first imported journey becomes current.
func (s *Storage) Import(ctx context.Context, cfg *domain.Config, defaultX, defaultY float64) error {
	if cfg == nil || cfg.Len() == 0 {
		return nil
	}
	return s.doc.Mutate(ctx, func(st *State) bool {
		index := 0
		for pair := cfg.Oldest(); pair != nil; pair = pair.Next() {
			id := pair.Key
			j := Position(pair.Value, defaultX, defaultY+float64(index*RowSpacing))
			if j.ID == "" {
				j.ID = id
			}
			st.Journeys.Set(id, j)
			if currentID(st) == "" {
				first := id
				st.CurrentJourneyID = &first
			}
			index++
		}
		s.logger.Debug("journeys imported", "count", index)
		return true
	})
}

// Position lays the rolls of a journey out on one grid row starting at (x, y).
func Position(j domain.Journey, x, y float64) domain.PositionedJourney {
	rolls := make([]domain.PositionedRoll, len(j.Rolls))
	for i, r := range j.Rolls {
		if r.Dice == nil {
			r.Dice = []domain.Die{}
		}
		rolls[i] = domain.PositionedRoll{
			Roll: r,
			X:    x + float64(i*ColumnSpacing),
			Y:    y,
		}
	}
	return domain.PositionedJourney{ID: j.ID, Name: j.Name, Rolls: rolls}
}
