package main

import (
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <video ID or URL>",
	Short: "Delete a stored video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return removeVideo(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
