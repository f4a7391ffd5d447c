package main

import (
	"github.com/aretw0/dicejourney/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Exposes journeys, rolls, history and Prometheus metrics as a JSON API over HTTP.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		return withApp(cmd, func(app *cli.App) error {
			return app.Serve(sc, app.Config.Addr)
		})
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	rootCmd.AddCommand(serveCmd)
}
