package main

import (
	"fmt"
	"os"

	"github.com/aretw0/dicejourney/internal/cli"
	"github.com/aretw0/dicejourney/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dicejourney",
	Short: "Dice Journey builds and plays branching dice journeys",
	Long: `Dice Journey lets you design journeys of rolls whose dice branch to further rolls
on success, failure or result ranges, play them from the terminal and keep a history of every session.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory holding the .dicejourney data folder")
	rootCmd.PersistentFlags().String("store", config.StoreFile, "State backend: memory, file, redis or sqlite")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().Bool("json", false, "Print machine readable JSON")
}

// loadConfig reads DICEJOURNEY_* variables and lets explicit flags override them.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("dir") {
		cfg.Dir, _ = cmd.Flags().GetString("dir")
	}
	if cmd.Flags().Changed("store") {
		cfg.Store, _ = cmd.Flags().GetString("store")
	}
	if f := cmd.Flags().Lookup("seed"); f != nil && f.Changed {
		seed, _ := cmd.Flags().GetUint64("seed")
		cfg.Seed = &seed
	}
	if f := cmd.Flags().Lookup("addr"); f != nil && f.Changed {
		cfg.Addr, _ = cmd.Flags().GetString("addr")
	}
	return cfg, cfg.Validate()
}

// withApp opens the app for the duration of fn.
func withApp(cmd *cobra.Command, fn func(app *cli.App) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	debug, _ := cmd.Flags().GetBool("debug")

	app, err := cli.NewApp(cmd.Context(), cfg, cli.Options{Debug: debug, Out: cmd.OutOrStdout()})
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}

func jsonFlag(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}
