package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/dicejourney/internal/cli"
	"github.com/spf13/cobra"
)

var journeyCmd = &cobra.Command{
	Use:     "journey",
	Aliases: []string{"j"},
	Short:   "Manage journeys",
}

var journeyLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List journeys; the current one is marked with *",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			return app.ListJourneys(jsonFlag(cmd))
		})
	},
}

var journeyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the rolls and dice of the current journey",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			return app.ShowJourney(jsonFlag(cmd))
		})
	},
}

var journeyNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a journey and make it current",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			id, err := app.Engine.Journeys().Create(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		})
	},
}

var journeyUseCmd = &cobra.Command{
	Use:   "use <journey-id>",
	Short: "Make a journey current",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			if _, ok := app.Engine.Journeys().Get(args[0]); !ok {
				return fmt.Errorf("journey %s not found", args[0])
			}
			return app.Engine.Journeys().SetCurrent(cmd.Context(), args[0])
		})
	},
}

var journeyRenameCmd = &cobra.Command{
	Use:   "rename <journey-id> <name>",
	Short: "Rename a journey",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			return app.Engine.Journeys().Rename(cmd.Context(), args[0], strings.Join(args[1:], " "))
		})
	},
}

var journeyRmCmd = &cobra.Command{
	Use:   "rm <journey-id>",
	Short: "Delete a journey",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			return app.Engine.Journeys().Delete(cmd.Context(), args[0])
		})
	},
}

var journeyResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard every journey and restore the default one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			return app.Engine.Journeys().Reset(cmd.Context())
		})
	},
}

func init() {
	journeyCmd.AddCommand(journeyLsCmd, journeyShowCmd, journeyNewCmd, journeyUseCmd, journeyRenameCmd, journeyRmCmd, journeyResetCmd)
	rootCmd.AddCommand(journeyCmd)
}
