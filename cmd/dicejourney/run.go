package main

import (
	"fmt"
	"os"

	"github.com/aretw0/dicejourney/internal/cli"
	"github.com/aretw0/dicejourney/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [roll-id...]",
	Short: "Roll the dice of the current journey",
	Long: `Executes rolls of the current journey and records them as one history session.
Without ids the entry rolls (those no other roll branches to) are executed.
With --follow the suggested next rolls are executed step by step.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		follow, _ := cmd.Flags().GetBool("follow")
		asJSON := jsonFlag(cmd)

		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		return withApp(cmd, func(app *cli.App) error {
			if follow && !asJSON && cli.IsTerminal(os.Stdin) && cli.IsTerminal(cmd.OutOrStdout()) {
				tui.PrintBanner(cmd.OutOrStdout())
			}
			err := app.Run(sc, cli.RunOptions{
				RollIDs: args,
				All:     all,
				Follow:  follow,
				JSON:    asJSON,
				In:      cmd.InOrStdin(),
			})
			if sc.Signal() != nil {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return err
		})
	},
}

func init() {
	runCmd.Flags().Bool("all", false, "Roll every roll of the journey")
	runCmd.Flags().Bool("follow", false, "Keep rolling the suggested next rolls")
	runCmd.Flags().Uint64("seed", 0, "Seed the dice for a reproducible run")
	rootCmd.AddCommand(runCmd)
}
