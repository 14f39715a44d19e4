package main

import (
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <niche> <YouTube URL or ID>",
	Short: "Store a single video by URL",
	Example: `  content-dna add ai_tech "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  content-dna add productivity dQw4w9WgXcQ`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return addVideo(cmd, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
