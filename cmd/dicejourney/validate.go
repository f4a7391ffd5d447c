package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/dicejourney/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the current journey for consistency",
	Long:  `Reports dangling branches, overlapping ranges, impossible dice and rolls unreachable from the entry rolls.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(app *cli.App) error {
			hasErrors, err := app.Validate(jsonFlag(cmd))
			if err != nil {
				return err
			}
			if hasErrors {
				return errors.New("validation failed")
			}
			if !jsonFlag(cmd) {
				fmt.Fprintln(cmd.OutOrStdout(), "Journey is valid! ✅")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
