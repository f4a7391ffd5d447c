package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/dicejourney"
	"github.com/aretw0/dicejourney/internal/config"
	"github.com/aretw0/dicejourney/internal/observability"
	"github.com/aretw0/dicejourney/internal/presentation/tui"
	"github.com/aretw0/dicejourney/pkg/domain"
	"github.com/aretw0/dicejourney/pkg/ports"
)

// Options are the per-invocation settings layered over config.Config.
type Options struct {
	Debug bool
	// Out defaults to os.Stdout. Markdown is rendered with glamour only when Out is a terminal.
	Out io.Writer
	// Source overrides randomness, mainly for tests.
	Source ports.Source
}

// App bundles an initialised engine with its store and output.
type App struct {
	Config  config.Config
	Engine  *dicejourney.Engine
	Metrics *observability.Metrics
	Logger  *slog.Logger
	Out     io.Writer

	render     func(string) (string, error)
	closeStore func() error
}

// NewApp opens the configured store and loads journeys and history from it.
func NewApp(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	logger := NewLogger(opts.Debug, cfg.LogLevel)

	store, closeStore, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	metrics := observability.NewMetrics()
	var hookLogger *slog.Logger
	if opts.Debug {
		hookLogger = logger
	}

	engineOpts := []dicejourney.Option{
		dicejourney.WithLogger(logger),
		dicejourney.WithLifecycleHooks(metrics.Hooks(hookLogger)),
	}
	switch {
	case opts.Source != nil:
		engineOpts = append(engineOpts, dicejourney.WithSource(opts.Source))
	case cfg.Seed != nil:
		engineOpts = append(engineOpts, dicejourney.WithSeed(*cfg.Seed))
	}

	engine := dicejourney.New(store, engineOpts...)
	if err := engine.Init(ctx); err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("load state: %w", err)
	}

	render := tui.PlainRenderer
	if IsTerminal(out) {
		render = tui.NewRenderer()
	}

	logger.Debug("app ready", "store", cfg.Store, "dir", cfg.Dir)
	return &App{
		Config:     cfg,
		Engine:     engine,
		Metrics:    metrics,
		Logger:     logger,
		Out:        out,
		render:     render,
		closeStore: closeStore,
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.closeStore()
}

// Print renders markdown to Out.
func (a *App) Print(markdown string) error {
	rendered, err := a.render(markdown)
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.Out, rendered)
	return err
}

// PrintOutcome renders every executed roll followed by the suggested next rolls.
func (a *App) PrintOutcome(out dicejourney.Outcome) error {
	for _, step := range out.Steps {
		if err := a.Print(tui.FormatRoll(step.Result)); err != nil {
			return err
		}
	}
	return a.Print(tui.FormatNext(out.Next))
}

// CurrentJourney returns the current journey or an error naming the problem.
func (a *App) CurrentJourney() (domain.PositionedJourney, error) {
	j, ok := a.Engine.Journeys().Current()
	if !ok {
		return domain.PositionedJourney{}, fmt.Errorf("no current journey; create one with 'journey new'")
	}
	return j, nil
}
