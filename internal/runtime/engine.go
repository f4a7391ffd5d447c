package runtime

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/dicejourney/internal/logging"
	"github.com/aretw0/dicejourney/pkg/domain"
	"github.com/aretw0/dicejourney/pkg/ports"
)

// Engine executes rolls of a journey. It never follows branches on its own:
// each step reports the next roll ids and the caller decides where to go.
type Engine struct {
	source ports.Source
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithSource sets the randomness source.
func WithSource(src ports.Source) EngineOption {
	return func(e *Engine) {
		if src != nil {
			e.source = src
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates a new engine. Without options it uses the global random source.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		source: GlobalSource{},
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Step is the outcome of executing one roll.
type Step struct {
	Result domain.RollResult `json:"result"`
	// Next is the union of every die's targets, de-duplicated in first-seen order.
	// Ids that do not exist in the journey are dropped.
	Next []string `json:"next"`
}

// ExecuteRoll evaluates every die of the roll. Returns false if the roll does not exist.
func (e *Engine) ExecuteRoll(ctx context.Context, journey domain.Journey, rollID string) (Step, bool) {
	roll, ok := journey.Roll(rollID)
	if !ok {
		e.logger.Debug("roll not found", "journey", journey.ID, "roll", rollID)
		return Step{}, false
	}

	step := Step{
		Result: domain.RollResult{
			RollID:   roll.ID,
			RollName: roll.Name,
			Dice:     make([]domain.DieResult, 0, len(roll.Dice)),
		},
		Next: []string{},
	}
	seen := make(map[string]bool)

	for _, die := range roll.Dice {
		res := EvaluateDie(die, e.source)
		step.Result.Dice = append(step.Result.Dice, res)

		e.logger.Debug("die evaluated",
			"roll", roll.ID,
			"die", die.ID,
			"results", res.Results,
			"total", res.Total,
			"mode", res.Mode,
		)
		if e.hooks.OnDieEvaluated != nil {
			e.hooks.OnDieEvaluated(ctx, &domain.DieEvent{
				EventBase: e.event(domain.EventDieEvaluated, journey.ID),
				RollID:    roll.ID,
				Result:    res,
			})
		}

		for _, target := range res.Targets {
			if seen[target] {
				continue
			}
			seen[target] = true
			if !journey.HasRoll(target) {
				e.logger.Debug("dropping dangling target", "roll", roll.ID, "die", die.ID, "target", target)
				continue
			}
			step.Next = append(step.Next, target)
		}
	}

	if e.hooks.OnRollEvaluated != nil {
		e.hooks.OnRollEvaluated(ctx, &domain.RollEvent{
			EventBase: e.event(domain.EventRollEvaluated, journey.ID),
			Result:    step.Result,
			Next:      step.Next,
		})
	}

	return step, true
}

// ExecuteRolls evaluates several rolls at once, in the order given.
// With no ids, every roll of the journey is evaluated in journey order.
// Unknown ids are skipped.
func (e *Engine) ExecuteRolls(ctx context.Context, journey domain.Journey, rollIDs ...string) []Step {
	if len(rollIDs) == 0 {
		for _, r := range journey.Rolls {
			rollIDs = append(rollIDs, r.ID)
		}
	}

	steps := make([]Step, 0, len(rollIDs))
	for _, id := range rollIDs {
		if step, ok := e.ExecuteRoll(ctx, journey, id); ok {
			steps = append(steps, step)
		}
	}
	return steps
}

func (e *Engine) event(t domain.EventType, journeyID string) domain.EventBase {
	return domain.EventBase{
		Timestamp: e.now(),
		Type:      t,
		JourneyID: journeyID,
	}
}
