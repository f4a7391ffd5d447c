package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/dicejourney/internal/cli"
	"github.com/aretw0/dicejourney/pkg/domain"
	"github.com/spf13/cobra"
)

var rollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Edit the rolls of the current journey",
}

var rollAddCmd = &cobra.Command{
	Use:   "add <roll-id> [name]",
	Short: "Append a roll",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, _ := cmd.Flags().GetFloat64("x")
		y, _ := cmd.Flags().GetFloat64("y")
		name := args[0]
		if len(args) > 1 {
			name = strings.Join(args[1:], " ")
		}
		return withApp(cmd, func(app *cli.App) error {
			j, err := app.CurrentJourney()
			if err != nil {
				return err
			}
			if j.RollIndex(args[0]) >= 0 {
				return fmt.Errorf("roll %s already exists", args[0])
			}
			return app.Engine.Journeys().AddRoll(cmd.Context(), domain.PositionedRoll{
				Roll: domain.Roll{ID: args[0], Name: name},
				X:    x,
				Y:    y,
			})
		})
	},
}

var rollRmCmd = &cobra.Command{
	Use:   "rm <roll-id>",
	Short: "Delete a roll",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			return app.Engine.Journeys().DeleteRoll(cmd.Context(), args[0])
		})
	},
}

var rollMoveCmd = &cobra.Command{
	Use:   "move <roll-id> <x> <y>",
	Short: "Set the canvas position of a roll",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid x: %w", err)
		}
		y, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid y: %w", err)
		}
		return withApp(cmd, func(app *cli.App) error {
			return app.Engine.Journeys().MoveRoll(cmd.Context(), args[0], x, y)
		})
	},
}

var rollSetCmd = &cobra.Command{
	Use:   "set <roll-id> key=value...",
	Short: "Patch fields of a roll, e.g. name=Door",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch, err := cli.ParsePatch(args[1:])
		if err != nil {
			return err
		}
		return withApp(cmd, func(app *cli.App) error {
			return app.Engine.Journeys().UpdateRoll(cmd.Context(), args[0], patch)
		})
	},
}

func init() {
	rollAddCmd.Flags().Float64("x", 0, "Canvas x position")
	rollAddCmd.Flags().Float64("y", 0, "Canvas y position")

	rollCmd.AddCommand(rollAddCmd, rollRmCmd, rollMoveCmd, rollSetCmd)
	rootCmd.AddCommand(rollCmd)
}
