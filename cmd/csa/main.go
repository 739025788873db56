package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/transit-csa/engine/internal/config"
)

// appConfig is loaded once in rootCmd's PersistentPreRunE; subcommands
// read it through the same rootCmd tree so config.yaml only needs to be
// found once per invocation.
var appConfig config.AppConfig

var rootCmd = &cobra.Command{
	Use:   "csa <name>",
	Short: "Run Connection Scan Algorithm queries over a transit timetable",
	Long: `csa loads a timetable dataset and answers the queries listed in its
queries.csv (or rank_queries.csv), writing running times and results as
CSV files alongside the dataset.`,
	Args: cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		appConfig = cfg
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runBatch(cmd, args[0], modeForward)
	},
}

func init() {
	defaults := config.DefaultAppConfig()
	rootCmd.PersistentFlags().Bool("hl", false, "use the Hub Label unrestricted-walking model instead of footpath transfers")
	rootCmd.PersistentFlags().String("root", defaults.DatasetRoot, "directory containing the dataset subdirectories")
	rootCmd.PersistentFlags().Int("workers", defaults.Workers, "number of query worker goroutines (0 = runtime.NumCPU())")
	rootCmd.AddCommand(backwardCmd, profileCmd, multicriteriaCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
