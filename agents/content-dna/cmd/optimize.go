package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize <niche>",
	Short: "Analyze a script and draft its description and upload settings",
	Example: `  content-dna optimize productivity --script draft.txt --title "How I Quit Social Media"

  # Read the script from stdin
  cat draft.txt | content-dna optimize ai_tech --script -`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeNiches,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("script")
		title, _ := cmd.Flags().GetString("title")
		asJSON, _ := cmd.Flags().GetBool("json")

		script, err := readScript(cmd, path)
		if err != nil {
			return err
		}
		return showOptimize(cmd, args[0], title, script, asJSON)
	},
}

func init() {
	optimizeCmd.Flags().String("script", "", "Script file to analyze, or - for stdin")
	optimizeCmd.Flags().String("title", "", "Video title (defaults to the best title draft)")
	optimizeCmd.Flags().Bool("json", false, "Print the report as JSON")
	_ = optimizeCmd.MarkFlagRequired("script")
	rootCmd.AddCommand(optimizeCmd)
}

func readScript(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read script from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read script: %w", err)
	}
	return string(data), nil
}
