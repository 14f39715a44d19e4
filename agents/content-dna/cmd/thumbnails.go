package main

import (
	"github.com/spf13/cobra"
)

var thumbnailsCmd = &cobra.Command{
	Use:               "thumbnails <niche>",
	Short:             "List thumbnail color schemes and elements for a niche",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeNiches,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showThumbnails(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(thumbnailsCmd)
}
