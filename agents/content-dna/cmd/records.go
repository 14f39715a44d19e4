package main

import (
	"github.com/spf13/cobra"
)

var recordsCmd = &cobra.Command{
	Use:               "records [niche]",
	Short:             "List stored videos",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeNiches,
	RunE: func(cmd *cobra.Command, args []string) error {
		niche := ""
		if len(args) == 1 {
			niche = args[0]
		}
		return showRecords(cmd, niche)
	},
}

func init() {
	rootCmd.AddCommand(recordsCmd)
}
