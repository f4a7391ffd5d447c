package main

import (
	"github.com/aretw0/dicejourney/internal/cli"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and prune roll history",
}

// journeyArg returns the explicit journey id or the current journey.
func journeyArg(app *cli.App, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	j, err := app.CurrentJourney()
	if err != nil {
		return "", err
	}
	return j.ID, nil
}

var historyLsCmd = &cobra.Command{
	Use:   "ls [journey-id]",
	Short: "List sessions, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			id, err := journeyArg(app, args)
			if err != nil {
				return err
			}
			return app.ListHistory(id, jsonFlag(cmd))
		})
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <session-id> [journey-id]",
	Short: "Show every roll of a session",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			id, err := journeyArg(app, args[1:])
			if err != nil {
				return err
			}
			return app.ShowSession(id, args[0], jsonFlag(cmd))
		})
	},
}

var historyRmCmd = &cobra.Command{
	Use:   "rm <session-id> [journey-id]",
	Short: "Delete one session",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			id, err := journeyArg(app, args[1:])
			if err != nil {
				return err
			}
			return app.Engine.History().Remove(cmd.Context(), id, args[0])
		})
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear [journey-id]",
	Short: "Delete every session of a journey, or of all journeys with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		return withApp(cmd, func(app *cli.App) error {
			if all {
				return app.Engine.History().ClearAll(cmd.Context())
			}
			id, err := journeyArg(app, args)
			if err != nil {
				return err
			}
			return app.Engine.History().ClearJourney(cmd.Context(), id)
		})
	},
}

func init() {
	historyClearCmd.Flags().Bool("all", false, "Clear the history of every journey")

	historyCmd.AddCommand(historyLsCmd, historyShowCmd, historyRmCmd, historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
