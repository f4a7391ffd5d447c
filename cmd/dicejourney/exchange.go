package main

import (
	"github.com/aretw0/dicejourney/internal/cli"
	"github.com/aretw0/dicejourney/pkg/journey"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current journey as JSON or YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")
		all, _ := cmd.Flags().GetBool("all")
		return withApp(cmd, func(app *cli.App) error {
			return app.Export(cli.ExportOptions{Format: format, Path: output, All: all})
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import journeys from a JSON or YAML file",
	Long: `Merges every journey of the file into the store. Journeys with an existing id are replaced.
Rolls are laid out on a grid starting at (--x, --y).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		x, _ := cmd.Flags().GetFloat64("x")
		y, _ := cmd.Flags().GetFloat64("y")
		return withApp(cmd, func(app *cli.App) error {
			return app.Import(cmd.Context(), args[0], x, y)
		})
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "", "json or yaml (default: from --output extension, else json)")
	exportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
	exportCmd.Flags().Bool("all", false, "Export every journey")

	importCmd.Flags().Float64("x", journey.DefaultImportX, "Default x of the first roll")
	importCmd.Flags().Float64("y", journey.DefaultImportY, "Default y of the first journey")

	rootCmd.AddCommand(exportCmd, importCmd)
}
