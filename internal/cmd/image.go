package cmd

import (
	"github.com/redvista/social-cli/pkg/service"
	"github.com/spf13/cobra"
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Image commands",
}

var imageShowCmd = &cobra.Command{
	Use:   "show <image-id>",
	Short: "Show an image's details and comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewImageService().Show(args[0])
	},
}

var imageLikeCmd = &cobra.Command{
	Use:   "like <image-id>",
	Short: "Like an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewImageService().Like(args[0])
	},
}

var imageUnlikeCmd = &cobra.Command{
	Use:   "unlike <image-id>",
	Short: "Remove your like from an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewImageService().Unlike(args[0])
	},
}

var imageCommentCmd = &cobra.Command{
	Use:   "comment <image-id> <content>",
	Short: "Comment on an image",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewImageService().Comment(args[0], args[1])
	},
}

func init() {
	imageCmd.AddCommand(imageShowCmd)
	imageCmd.AddCommand(imageLikeCmd)
	imageCmd.AddCommand(imageUnlikeCmd)
	imageCmd.AddCommand(imageCommentCmd)
}
