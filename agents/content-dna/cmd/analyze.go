package main

import (
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <niche>",
	Short: "Show title, script and thumbnail recommendations for a niche",
	Example: `  content-dna analyze productivity
  content-dna analyze ai_tech --json | jq '.titles[0]'`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeNiches,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		return showAnalysis(cmd, args[0], asJSON)
	},
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "Print the recommendation as JSON")
	rootCmd.AddCommand(analyzeCmd)
}
