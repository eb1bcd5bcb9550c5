package cmd

import (
	"context"

	"github.com/redvista/social-cli/pkg/service"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch live activity on a resource",
}

var watchPostCmd = &cobra.Command{
	Use:   "post <post-id>",
	Short: "Stream like and comment activity on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewWatcherService().WatchPost(context.Background(), args[0])
	},
}

var watchImageCmd = &cobra.Command{
	Use:   "image <image-id>",
	Short: "Stream like and comment activity on an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewWatcherService().WatchImage(context.Background(), args[0])
	},
}

func init() {
	watchCmd.AddCommand(watchPostCmd)
	watchCmd.AddCommand(watchImageCmd)
}
