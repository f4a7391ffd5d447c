package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/dicejourney"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dicejourney",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dicejourney version %s\n", strings.TrimSpace(dicejourney.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
