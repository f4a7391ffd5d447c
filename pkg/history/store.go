// Package history keeps the per-journey log of executed roll sessions.
package history

import (
	"context"
	"time"

	"github.com/aretw0/dicejourney/pkg/domain"
	"github.com/aretw0/dicejourney/pkg/persistence"
	"github.com/aretw0/dicejourney/pkg/ports"
	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// StorageKey is the key of the history blob.
const StorageKey = "dice-roll-history-v2"

// State is the persisted history blob: sessions per journey, newest first.
type State struct {
	Sessions *orderedmap.OrderedMap[string, []domain.HistorySession] `json:"sessions"`
}

// Store is the state holder for roll history. Call Init before use.
// Safe for concurrent use.
type Store struct {
	doc   *persistence.Document[State]
	now   func() time.Time
	newID func() string
}

// Option configures the Store.
type Option func(*Store)

// WithClock overrides the session timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// NewStore creates a history Store over kv.
func NewStore(kv ports.KVStore, opts ...Option) *Store {
	s := &Store{
		doc:   persistence.NewDocument[State](kv, StorageKey),
		now:   time.Now,
		newID: func() string { return "session-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func emptyState() *State {
	return &State{Sessions: orderedmap.New[string, []domain.HistorySession]()}
}

func normalize(st *State) {
	if st.Sessions == nil {
		st.Sessions = orderedmap.New[string, []domain.HistorySession]()
	}
}

// Init loads persisted history.
func (s *Store) Init(ctx context.Context) error {
	return s.doc.Load(ctx, emptyState, normalize)
}

// Add stores a new session at the front of its journey's list and returns it
// with the generated id and timestamp.
func (s *Store) Add(ctx context.Context, session domain.NewSession) (domain.HistorySession, error) {
	full := domain.HistorySession{
		ID:          s.newID(),
		Timestamp:   s.now().UnixMilli(),
		JourneyID:   session.JourneyID,
		JourneyName: session.JourneyName,
		Rolls:       session.Rolls,
	}
	if full.Rolls == nil {
		full.Rolls = []domain.RollResult{}
	}

	err := s.doc.Mutate(ctx, func(st *State) bool {
		existing, _ := st.Sessions.Get(session.JourneyID)
		st.Sessions.Set(session.JourneyID, append([]domain.HistorySession{full}, existing...))
		return true
	})
	if err != nil {
		return domain.HistorySession{}, err
	}
	copied, err := persistence.Clone(&full)
	if err != nil {
		return domain.HistorySession{}, err
	}
	return *copied, nil
}

// Sessions returns a journey's sessions, newest first.
func (s *Store) Sessions(journeyID string) []domain.HistorySession {
	out := []domain.HistorySession{}
	_ = s.doc.Read(func(st *State) {
		sessions, ok := st.Sessions.Get(journeyID)
		if !ok {
			return
		}
		if copied, err := persistence.Clone(&sessions); err == nil {
			out = *copied
		}
	})
	return out
}

// Get returns one session.
func (s *Store) Get(journeyID, sessionID string) (domain.HistorySession, bool) {
	for _, session := range s.Sessions(journeyID) {
		if session.ID == sessionID {
			return session, true
		}
	}
	return domain.HistorySession{}, false
}

// JourneysWithHistory lists journey ids that have at least one session.
func (s *Store) JourneysWithHistory() []string {
	ids := []string{}
	_ = s.doc.Read(func(st *State) {
		for pair := st.Sessions.Oldest(); pair != nil; pair = pair.Next() {
			if len(pair.Value) > 0 {
				ids = append(ids, pair.Key)
			}
		}
	})
	return ids
}

// Total counts sessions across all journeys.
func (s *Store) Total() int {
	total := 0
	_ = s.doc.Read(func(st *State) {
		for pair := st.Sessions.Oldest(); pair != nil; pair = pair.Next() {
			total += len(pair.Value)
		}
	})
	return total
}

// Remove deletes one session. Unknown ids are ignored.
func (s *Store) Remove(ctx context.Context, journeyID, sessionID string) error {
	return s.doc.Mutate(ctx, func(st *State) bool {
		sessions, ok := st.Sessions.Get(journeyID)
		if !ok {
			return false
		}
		kept := make([]domain.HistorySession, 0, len(sessions))
		for _, session := range sessions {
			if session.ID != sessionID {
				kept = append(kept, session)
			}
		}
		if len(kept) == len(sessions) {
			return false
		}
		st.Sessions.Set(journeyID, kept)
		return true
	})
}

// ClearJourney empties a journey's history.
func (s *Store) ClearJourney(ctx context.Context, journeyID string) error {
	return s.doc.Mutate(ctx, func(st *State) bool {
		if _, ok := st.Sessions.Get(journeyID); !ok {
			return false
		}
		st.Sessions.Set(journeyID, []domain.HistorySession{})
		return true
	})
}

// ClearAll drops every session of every journey.
func (s *Store) ClearAll(ctx context.Context) error {
	return s.doc.Replace(ctx, emptyState())
}
