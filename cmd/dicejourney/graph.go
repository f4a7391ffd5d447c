package main

import (
	"github.com/aretw0/dicejourney/internal/cli"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the journey graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the current journey. With --session the rolls of that session are highlighted.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, _ := cmd.Flags().GetString("session")
		return withApp(cmd, func(app *cli.App) error {
			return app.Graph(session)
		})
	},
}

func init() {
	graphCmd.Flags().String("session", "", "History session to overlay")
	rootCmd.AddCommand(graphCmd)
}
