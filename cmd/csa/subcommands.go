package main

import "github.com/spf13/cobra"

var backwardCmd = &cobra.Command{
	Use:   "backward <name>",
	Short: "Answer latest-departure queries for a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runBatch(cmd, args[0], modeBackward)
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile <name>",
	Short: "Answer one-to-one profile queries for a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runBatch(cmd, args[0], modeProfile)
	},
}

var multicriteriaCmd = &cobra.Command{
	Use:   "multicriteria <name>",
	Short: "Answer multi-criteria (arrival, transfers, walk time) queries for a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runBatch(cmd, args[0], modeMultiCriteria)
	},
}
