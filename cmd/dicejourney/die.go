package main

import (
	"fmt"

	"github.com/aretw0/dicejourney/internal/cli"
	"github.com/aretw0/dicejourney/pkg/domain"
	"github.com/spf13/cobra"
)

var dieCmd = &cobra.Command{
	Use:   "die",
	Short: "Edit the dice of a roll in the current journey",
}

var dieAddCmd = &cobra.Command{
	Use:   "add <roll-id> <die-id>",
	Short: "Add a die to a roll",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		name, _ := flags.GetString("name")
		value, _ := flags.GetInt("value")
		count, _ := flags.GetInt("count")
		mode, _ := flags.GetString("mode")
		onSuccess, _ := flags.GetString("on-success")
		onFailure, _ := flags.GetString("on-failure")

		die := domain.Die{
			ID:    args[1],
			Name:  name,
			Value: value,
			Count: count,
			Mode:  domain.DieMode(mode),
		}
		if flags.Changed("success") {
			success, _ := flags.GetInt("success")
			die.Success = domain.IntPtr(success)
		}
		if onSuccess != "" {
			die.OnSuccess = &domain.Callback{Message: onSuccess}
		}
		if onFailure != "" {
			die.OnFailure = &domain.Callback{Message: onFailure}
		}

		return withApp(cmd, func(app *cli.App) error {
			j, err := app.CurrentJourney()
			if err != nil {
				return err
			}
			idx := j.RollIndex(args[0])
			if idx < 0 {
				return fmt.Errorf("roll %s not found", args[0])
			}
			if j.Rolls[idx].DieIndex(args[1]) >= 0 {
				return fmt.Errorf("die %s already exists in roll %s", args[1], args[0])
			}
			return app.Engine.Journeys().AddDie(cmd.Context(), args[0], die)
		})
	},
}

var dieRmCmd = &cobra.Command{
	Use:   "rm <roll-id> <die-id>",
	Short: "Delete a die",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			return app.Engine.Journeys().DeleteDie(cmd.Context(), args[0], args[1])
		})
	},
}

var dieSetCmd = &cobra.Command{
	Use:   "set <roll-id> <die-id> key=value...",
	Short: "Patch fields of a die, e.g. success=12 'onSuccess={message: Hit, rollIds: [roll-2]}'",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := cli.ParsePatch(args[2:])
		if err != nil {
			return err
		}
		return withApp(cmd, func(app *cli.App) error {
			return app.Engine.Journeys().UpdateDie(cmd.Context(), args[0], args[1], patch)
		})
	},
}

func init() {
	dieAddCmd.Flags().String("name", "", "Display name")
	dieAddCmd.Flags().Int("value", 20, "Number of sides")
	dieAddCmd.Flags().Int("count", 1, "Number of dice rolled together")
	dieAddCmd.Flags().String("mode", string(domain.ModeThreshold), "threshold or range")
	dieAddCmd.Flags().Int("success", 0, "Threshold a total must reach to succeed")
	dieAddCmd.Flags().String("on-success", "", "Message shown on success")
	dieAddCmd.Flags().String("on-failure", "", "Message shown on failure")

	dieCmd.AddCommand(dieAddCmd, dieRmCmd, dieSetCmd)
	rootCmd.AddCommand(dieCmd)
}
