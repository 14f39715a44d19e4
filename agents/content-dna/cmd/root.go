package main

import (
	"fmt"
	"io"
	"log"

	contentdna "content-dna/agents/content-dna"
	"content-dna/shared/config"

	"github.com/spf13/cobra"
)

var (
	cfg   *config.Config
	agent *contentdna.Agent
)

// rootCmd runs the interactive menu when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "content-dna",
	Short: "Study what top YouTube videos in a niche have in common",
	Long: `Content DNA collects YouTube videos for a niche and compares them with
hand-authored title, script and thumbnail patterns.

Run without a command for the interactive menu.`,
	Example: `  # Interactive menu
  content-dna

  # Search for productivity videos and pick which ones to keep
  content-dna search productivity --query "morning routine"

  # Add one video by URL
  content-dna add ai_tech https://youtu.be/dQw4w9WgXcQ

  # Full analysis for a niche
  content-dna analyze productivity`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return fmt.Errorf("failed to get verbose flag: %w", err)
		}
		if verbose {
			log.SetOutput(cmd.ErrOrStderr())
		} else {
			log.SetOutput(io.Discard)
		}

		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
			loaded.Storage.DataDir = dir
		}
		if file, _ := cmd.Flags().GetString("patterns"); file != "" {
			loaded.Patterns.File = file
		}
		cfg = loaded

		agent = contentdna.NewAgent(cfg)
		if err := agent.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize agent: %w", err)
		}
		return nil
	},
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log progress to stderr")
	rootCmd.PersistentFlags().Bool("raw", false, "Print markdown without terminal rendering")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory holding video_records.json")
	rootCmd.PersistentFlags().String("patterns", "", "Pattern document overriding the built-in patterns")
}
