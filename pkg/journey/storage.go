package journey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/dicejourney/internal/logging"
	"github.com/aretw0/dicejourney/pkg/domain"
	"github.com/aretw0/dicejourney/pkg/persistence"
	"github.com/aretw0/dicejourney/pkg/ports"
	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// StorageKey is the key of the journeys blob.
const StorageKey = "dice-journey-storage"

// maxIDAttempts bounds how many ids Create draws before giving up.
const maxIDAttempts = 16

// ErrIDExhausted is returned when the id generator keeps producing taken ids.
var ErrIDExhausted = errors.New("could not generate an unused journey id")

// Grid spacing used when importing rolls without positions.
const (
	ColumnSpacing = 300
	RowSpacing    = 200
)

// Grid origin of an import when the caller gives none.
const (
	DefaultImportX = 50.0
	DefaultImportY = 50.0
)

// State is the persisted journeys blob.
type State struct {
	CurrentJourneyID *string                                                  `json:"currentJourneyId"`
	Journeys         *orderedmap.OrderedMap[string, domain.PositionedJourney] `json:"journeys"`
}

// Summary identifies a journey in listings.
type Summary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Rolls int    `json:"rolls"`
}

// Storage is the state holder for journeys. Call Init before use.
// Safe for concurrent use.
type Storage struct {
	doc    *persistence.Document[State]
	newID  func() string
	logger *slog.Logger
}

// Option configures Storage.
type Option func(*Storage)

// WithIDGenerator overrides journey id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Storage) {
		s.newID = fn
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Storage) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStorage creates a Storage over kv.
func NewStorage(kv ports.KVStore, opts ...Option) *Storage {
	s := &Storage{
		doc:    persistence.NewDocument[State](kv, StorageKey),
		newID:  func() string { return "journey-" + uuid.NewString() },
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init loads persisted journeys, seeding the default journey on first run.
func (s *Storage) Init(ctx context.Context) error {
	if err := s.doc.Load(ctx, DefaultState, normalize); err != nil {
		return err
	}
	s.logger.Debug("journeys loaded", "count", len(s.List()), "current", s.CurrentID())
	return nil
}

func normalize(st *State) {
	if st.Journeys == nil {
		st.Journeys = orderedmap.New[string, domain.PositionedJourney]()
	}
	for pair := st.Journeys.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Rolls == nil {
			pair.Value.Rolls = []domain.PositionedRoll{}
			st.Journeys.Set(pair.Key, pair.Value)
		}
	}
}

// DefaultJourney is the journey a fresh store starts with.
func DefaultJourney() domain.PositionedJourney {
	return domain.PositionedJourney{
		ID:   "default",
		Name: "New Scenario",
		Rolls: []domain.PositionedRoll{
			{
				Roll: domain.Roll{
					ID:   "roll-1",
					Name: "Starting Roll",
					Dice: []domain.Die{
						{
							ID:        "roll-1-dice-1",
							Name:      "Check",
							Value:     20,
							Count:     1,
							Mode:      domain.ModeThreshold,
							Success:   domain.IntPtr(10),
							OnSuccess: &domain.Callback{Message: "Success!"},
							OnFailure: &domain.Callback{Message: "Failed"},
						},
					},
				},
				X: 50,
				Y: 50,
			},
		},
	}
}

// DefaultState returns the state of a fresh store.
func DefaultState() *State {
	j := DefaultJourney()
	journeys := orderedmap.New[string, domain.PositionedJourney]()
	journeys.Set(j.ID, j)
	return &State{CurrentJourneyID: &j.ID, Journeys: journeys}
}

func currentID(st *State) string {
	if st.CurrentJourneyID == nil {
		return ""
	}
	if _, ok := st.Journeys.Get(*st.CurrentJourneyID); !ok {
		return ""
	}
	return *st.CurrentJourneyID
}

// CurrentID returns the id of the current journey, or "" when there is none.
func (s *Storage) CurrentID() string {
	var id string
	_ = s.doc.Read(func(st *State) { id = currentID(st) })
	return id
}

// Current returns a copy of the current journey.
func (s *Storage) Current() (domain.PositionedJourney, bool) {
	return s.Get(s.CurrentID())
}

// Get returns a copy of the journey with the given id.
func (s *Storage) Get(id string) (domain.PositionedJourney, bool) {
	var (
		out domain.PositionedJourney
		ok  bool
	)
	_ = s.doc.Read(func(st *State) {
		var j domain.PositionedJourney
		if j, ok = st.Journeys.Get(id); ok {
			out = cloneJourney(j)
		}
	})
	return out, ok
}

// List returns every journey in insertion order.
func (s *Storage) List() []Summary {
	list := []Summary{}
	_ = s.doc.Read(func(st *State) {
		for pair := st.Journeys.Oldest(); pair != nil; pair = pair.Next() {
			list = append(list, Summary{ID: pair.Value.ID, Name: pair.Value.Name, Rolls: len(pair.Value.Rolls)})
		}
	})
	return list
}

// Snapshot returns a deep copy of the whole persisted state.
func (s *Storage) Snapshot() (*State, error) {
	var (
		out *State
		err error
	)
	if rerr := s.doc.Read(func(st *State) { out, err = persistence.Clone(st) }); rerr != nil {
		return nil, rerr
	}
	return out, err
}

// SetCurrent makes the journey current. Unknown ids are ignored.
func (s *Storage) SetCurrent(ctx context.Context, id string) error {
	return s.doc.Mutate(ctx, func(st *State) bool {
		if _, ok := st.Journeys.Get(id); !ok {
			return false
		}
		st.CurrentJourneyID = &id
		return true
	})
}

// Create inserts an empty journey, makes it current and returns its id.
func (s *Storage) Create(ctx context.Context, name string) (string, error) {
	var id string
	var createErr error
	err := s.doc.Mutate(ctx, func(st *State) bool {
		for attempt := 0; ; attempt++ {
			if attempt == maxIDAttempts {
				createErr = ErrIDExhausted
				return false
			}
			id = s.newID()
			if _, taken := st.Journeys.Get(id); !taken {
				break
			}
		}
		st.Journeys.Set(id, domain.PositionedJourney{ID: id, Name: name, Rolls: []domain.PositionedRoll{}})
		st.CurrentJourneyID = &id
		return true
	})
	if err == nil {
		err = createErr
	}
	if err != nil {
		return "", err
	}
	s.logger.Debug("journey created", "journey", id, "name", name)
	return id, nil
}

// Rename changes a journey name.
func (s *Storage) Rename(ctx context.Context, id, name string) error {
	return s.doc.Mutate(ctx, func(st *State) bool {
		j, ok := st.Journeys.Get(id)
		if !ok {
			return false
		}
		j.Name = name
		st.Journeys.Set(id, j)
		return true
	})
}

// Delete removes a journey. If it was current, the oldest remaining journey
// becomes current, or none when the store is empty.
func (s *Storage) Delete(ctx context.Context, id string) error {
	return s.doc.Mutate(ctx, func(st *State) bool {
		if _, ok := st.Journeys.Delete(id); !ok {
			return false
		}
		if st.CurrentJourneyID != nil && *st.CurrentJourneyID == id {
			st.CurrentJourneyID = nil
			if oldest := st.Journeys.Oldest(); oldest != nil {
				next := oldest.Key
				st.CurrentJourneyID = &next
			}
		}
		return true
	})
}

// Reset restores the default state.
func (s *Storage) Reset(ctx context.Context) error {
	return s.doc.Replace(ctx, DefaultState())
}

// mutateCurrent runs fn on the current journey and stores it back when fn reports a change.
func (s *Storage) mutateCurrent(ctx context.Context, fn func(j *domain.PositionedJourney) (bool, error)) error {
	var fnErr error
	err := s.doc.Mutate(ctx, func(st *State) bool {
		id := currentID(st)
		if id == "" {
			return false
		}
		j, _ := st.Journeys.Get(id)
		changed, err := fn(&j)
		if err != nil {
			fnErr = err
			return false
		}
		if changed {
			st.Journeys.Set(id, j)
		}
		return changed
	})
	if fnErr != nil {
		return fnErr
	}
	return err
}

// AddRoll appends a roll to the current journey.
func (s *Storage) AddRoll(ctx context.Context, roll domain.PositionedRoll) error {
	if roll.Dice == nil {
		roll.Dice = []domain.Die{}
	}
	return s.mutateCurrent(ctx, func(j *domain.PositionedJourney) (bool, error) {
		j.Rolls = append(j.Rolls, roll)
		return true, nil
	})
}

// UpdateRoll merges patch (JSON field names) into a roll of the current journey.
func (s *Storage) UpdateRoll(ctx context.Context, rollID string, patch map[string]any) error {
	return s.mutateCurrent(ctx, func(j *domain.PositionedJourney) (bool, error) {
		i := j.RollIndex(rollID)
		if i < 0 {
			return false, nil
		}
		updated, err := persistence.Patch(j.Rolls[i], patch)
		if err != nil {
			return false, fmt.Errorf("roll %s: %w", rollID, err)
		}
		if updated.Dice == nil {
			updated.Dice = []domain.Die{}
		}
		j.Rolls[i] = updated
		return true, nil
	})
}

// MoveRoll sets the builder position of a roll.
func (s *Storage) MoveRoll(ctx context.Context, rollID string, x, y float64) error {
	return s.UpdateRoll(ctx, rollID, map[string]any{"x": x, "y": y})
}

// DeleteRoll removes a roll from the current journey.
// Branch targets pointing at it are left in place.
func (s *Storage) DeleteRoll(ctx context.Context, rollID string) error {
	return s.mutateCurrent(ctx, func(j *domain.PositionedJourney) (bool, error) {
		i := j.RollIndex(rollID)
		if i < 0 {
			return false, nil
		}
		j.Rolls = append(j.Rolls[:i], j.Rolls[i+1:]...)
		return true, nil
	})
}

// AddDie appends a die to a roll of the current journey.
func (s *Storage) AddDie(ctx context.Context, rollID string, die domain.Die) error {
	return s.mutateCurrent(ctx, func(j *domain.PositionedJourney) (bool, error) {
		i := j.RollIndex(rollID)
		if i < 0 {
			return false, nil
		}
		j.Rolls[i].Dice = append(j.Rolls[i].Dice, die)
		return true, nil
	})
}

// UpdateDie merges patch (JSON field names) into a die.
func (s *Storage) UpdateDie(ctx context.Context, rollID, dieID string, patch map[string]any) error {
	return s.mutateCurrent(ctx, func(j *domain.PositionedJourney) (bool, error) {
		i := j.RollIndex(rollID)
		if i < 0 {
			return false, nil
		}
		k := j.Rolls[i].DieIndex(dieID)
		if k < 0 {
			return false, nil
		}
		updated, err := persistence.Patch(j.Rolls[i].Dice[k], patch)
		if err != nil {
			return false, fmt.Errorf("die %s: %w", dieID, err)
		}
		j.Rolls[i].Dice[k] = updated
		return true, nil
	})
}

// DeleteDie removes a die from a roll.
func (s *Storage) DeleteDie(ctx context.Context, rollID, dieID string) error {
	return s.mutateCurrent(ctx, func(j *domain.PositionedJourney) (bool, error) {
		i := j.RollIndex(rollID)
		if i < 0 {
			return false, nil
		}
		k := j.Rolls[i].DieIndex(dieID)
		if k < 0 {
			return false, nil
		}
		j.Rolls[i].Dice = append(j.Rolls[i].Dice[:k], j.Rolls[i].Dice[k+1:]...)
		return true, nil
	})
}

func cloneJourney(j domain.PositionedJourney) domain.PositionedJourney {
	c, err := persistence.Clone(&j)
	if err != nil {
		// Values in the store have already been through JSON once.
		return j
	}
	return *c
}
