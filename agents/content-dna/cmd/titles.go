package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var titlesCmd = &cobra.Command{
	Use:   "titles <niche>",
	Short: "Draft titles from the niche's best title patterns",
	Example: `  # Fill placeholders with built-in examples
  content-dna titles productivity

  # Supply your own values
  content-dna titles productivity --set action="Quit Social Media" --set positive_outcome="Read 50 Books"

  # Let Gemini pick values for a topic (needs GEMINI_API_KEY)
  content-dna titles ai_tech --ai --topic "running LLMs on a laptop"`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeNiches,
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, _ := cmd.Flags().GetStringArray("set")
		useAI, _ := cmd.Flags().GetBool("ai")
		topic, _ := cmd.Flags().GetString("topic")
		asJSON, _ := cmd.Flags().GetBool("json")

		if useAI && topic == "" {
			return fmt.Errorf("--ai requires --topic")
		}
		if useAI && len(pairs) > 0 {
			return fmt.Errorf("--set cannot be combined with --ai")
		}

		values, err := parseValues(pairs)
		if err != nil {
			return err
		}

		return showTitles(cmd, args[0], values, topic, useAI, asJSON)
	},
}

func init() {
	titlesCmd.Flags().StringArray("set", nil, "Placeholder value as name=value (repeatable)")
	titlesCmd.Flags().Bool("ai", false, "Ask Gemini to choose placeholder values")
	titlesCmd.Flags().String("topic", "", "What the video is about (used with --ai)")
	titlesCmd.Flags().Bool("json", false, "Print the drafts as JSON")
	rootCmd.AddCommand(titlesCmd)
}
