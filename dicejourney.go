package dicejourney

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/dicejourney/internal/logging"
	"github.com/aretw0/dicejourney/internal/runtime"
	"github.com/aretw0/dicejourney/pkg/domain"
	"github.com/aretw0/dicejourney/pkg/history"
	"github.com/aretw0/dicejourney/pkg/journey"
	"github.com/aretw0/dicejourney/pkg/ports"
)

// Version is the library version, overridden at build time.
var Version = "dev"

// Engine is the high-level entry point: journeys, history and the roll runtime over one store.
type Engine struct {
	runtime  *runtime.Engine
	journeys *journey.Storage
	history  *history.Store

	source ports.Source
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithSource injects the randomness source.
func WithSource(src ports.Source) Option {
	return func(e *Engine) {
		e.source = src
	}
}

// WithSeed makes rolls reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.source = runtime.NewSeededSource(seed)
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock overrides the clock used for session timestamps and events.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New wires an Engine over store. Call Init before use.
func New(store ports.KVStore, opts ...Option) *Engine {
	eng := &Engine{
		source: runtime.GlobalSource{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithSource(eng.source),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithLogger(eng.logger),
		runtime.WithClock(eng.now),
	)
	eng.journeys = journey.NewStorage(store, journey.WithLogger(eng.logger))
	eng.history = history.NewStore(store, history.WithClock(eng.now))
	return eng
}

// Init loads journeys and history from the store.
func (e *Engine) Init(ctx context.Context) error {
	if err := e.journeys.Init(ctx); err != nil {
		return err
	}
	return e.history.Init(ctx)
}

// Journeys returns the journey storage.
func (e *Engine) Journeys() *journey.Storage {
	return e.journeys
}

// History returns the roll history store.
func (e *Engine) History() *history.Store {
	return e.history
}

// Outcome is the result of one Roll call.
type Outcome struct {
	// Session is the recorded history entry. Empty when nothing was rolled.
	Session domain.HistorySession `json:"session"`
	// Steps holds each executed roll with its own next roll ids.
	Steps []runtime.Step `json:"steps"`
	// Next is the union of every step's next ids, de-duplicated in first-seen order.
	Next []string `json:"next"`
}

// Roll executes rolls of the current journey and records them as one history session.
// With no ids every roll is executed. Unknown ids are skipped; if nothing ran
// (no current journey, or no matching roll) nothing is recorded.
func (e *Engine) Roll(ctx context.Context, rollIDs ...string) (Outcome, error) {
	out := Outcome{Steps: []runtime.Step{}, Next: []string{}}

	current, ok := e.journeys.Current()
	if !ok {
		e.logger.Debug("roll without current journey")
		return out, nil
	}
	j := current.Strip()

	out.Steps = e.runtime.ExecuteRolls(ctx, j, rollIDs...)
	if len(out.Steps) == 0 {
		return out, nil
	}

	seen := make(map[string]bool)
	results := make([]domain.RollResult, 0, len(out.Steps))
	for _, step := range out.Steps {
		results = append(results, step.Result)
		for _, id := range step.Next {
			if !seen[id] {
				seen[id] = true
				out.Next = append(out.Next, id)
			}
		}
	}

	session, err := e.history.Add(ctx, domain.NewSession{
		JourneyID:   j.ID,
		JourneyName: j.Name,
		Rolls:       results,
	})
	if err != nil {
		return out, err
	}
	out.Session = session

	e.logger.Info("rolled", "journey", j.ID, "rolls", len(results), "session", session.ID, "next", out.Next)
	return out, nil
}

// EntryRolls returns the suggested starting rolls of the current journey.
func (e *Engine) EntryRolls() []string {
	current, ok := e.journeys.Current()
	if !ok {
		return nil
	}
	return runtime.EntryRolls(current.Strip())
}
