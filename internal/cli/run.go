package cli

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/aretw0/dicejourney"
)

// RunOptions controls the 'run' command.
type RunOptions struct {
	RollIDs []string
	// All rolls every roll of the journey instead of the entry rolls.
	All bool
	// Follow keeps rolling the suggested next rolls, asking before each step.
	Follow bool
	JSON   bool
	In     io.Reader
}

// Run executes rolls of the current journey. Without ids it starts at the entry rolls.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	if _, err := a.CurrentJourney(); err != nil {
		return err
	}

	ids := opts.RollIDs
	if len(ids) == 0 && !opts.All {
		ids = a.Engine.EntryRolls()
	}

	if !opts.Follow {
		out, err := a.Engine.Roll(ctx, ids...)
		if err != nil {
			return err
		}
		return a.report(out, opts.JSON)
	}
	return handleExecutionError(a.follow(ctx, ids, opts))
}

func (a *App) follow(ctx context.Context, ids []string, opts RunOptions) error {
	reader := bufio.NewReader(NewInterruptibleReader(opts.In, ctx.Done()))
	for step := 1; ; step++ {
		out, err := a.Engine.Roll(ctx, ids...)
		if err != nil {
			return err
		}
		if len(out.Steps) == 0 {
			printSystemMessage(a.Out, "Nothing to roll.")
			return nil
		}
		if err := a.report(out, opts.JSON); err != nil {
			return err
		}
		if len(out.Next) == 0 {
			printSystemMessage(a.Out, "Journey finished after %d step(s).", step)
			return nil
		}

		if !opts.JSON {
			io.WriteString(a.Out, "[Enter] roll next, [q] quit > ")
		}
		line, err := readLine(reader)
		if err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "q", "quit", "exit":
			printSystemMessage(a.Out, "Stopped after %d step(s).", step)
			return nil
		}
		ids = out.Next
	}
}

func (a *App) report(out dicejourney.Outcome, asJSON bool) error {
	if asJSON {
		return writeJSON(a.Out, out)
	}
	if len(out.Steps) == 0 {
		printSystemMessage(a.Out, "Nothing to roll.")
		return nil
	}
	return a.PrintOutcome(out)
}
