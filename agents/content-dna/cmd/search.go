package main

import (
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <niche>",
	Short: "Search YouTube for a niche and store the videos you pick",
	Example: `  # Use the niche's default search term and choose interactively
  content-dna search productivity

  # Custom query, store the first three results
  content-dna search health_fitness --query "zone 2 cardio" --select 1-3`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeNiches,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		maxResults, _ := cmd.Flags().GetInt64("max")
		selection, _ := cmd.Flags().GetString("select")

		p := newPrompter(cmd)
		return searchAndSelect(cmd, args[0], query, maxResults, selection, p.ask)
	},
}

func init() {
	searchCmd.Flags().StringP("query", "q", "", "Search query (default: the niche's search term)")
	searchCmd.Flags().Int64P("max", "n", 0, "Maximum number of results, 1-50 (default: youtube.max_results)")
	searchCmd.Flags().StringP("select", "s", "", "Videos to store without prompting, e.g. all, 1,3 or 2-4")
	rootCmd.AddCommand(searchCmd)
}
