package main

import (
	"fmt"

	"content-dna/shared/config"
	"content-dna/shared/patterns"

	"github.com/spf13/cobra"
)

var nichesCmd = &cobra.Command{
	Use:   "niches",
	Short: "List the niches known to the pattern store",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, niche := range agent.Niches() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%q\n", niche, cfg.SearchTerm(niche))
		}
		return nil
	},
}

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show files used by the application",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Data directory: %s\n", cfg.Storage.DataDir)
		if cfg.Patterns.File != "" {
			fmt.Fprintf(out, "Pattern file: %s\n", cfg.Patterns.File)
		} else {
			fmt.Fprintln(out, "Pattern file: built-in")
		}
	},
}

func init() {
	rootCmd.AddCommand(nichesCmd)
	rootCmd.AddCommand(pathsCmd)
}

// completeNiches offers pattern store niches for shell completion. Completion
// skips PersistentPreRunE, so the store is loaded here.
func completeNiches(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if agent != nil {
		return agent.Niches(), cobra.ShellCompDirectiveNoFileComp
	}

	loaded, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	store, err := patterns.Load(loaded.Patterns.File)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return store.Niches(), cobra.ShellCompDirectiveNoFileComp
}
