package cmd

import (
	"github.com/redvista/social-cli/pkg/service"
	"github.com/spf13/cobra"
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post commands",
	Long:  "Browse and interact with posts",
}

var postListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the main feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		if user, _ := cmd.Flags().GetString("user"); user != "" {
			return service.NewPostService().ListByUser(user)
		}
		return service.NewPostService().List()
	},
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete <post-id>",
	Short: "Delete one of your posts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewPostService().Delete(args[0])
	},
}

var postShowCmd = &cobra.Command{
	Use:   "show <post-id>",
	Short: "Show one post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewPostService().Show(args[0])
	},
}

var postCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a new post",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		content, _ := cmd.Flags().GetString("content")
		return service.NewPostService().Create(title, content)
	},
}

var postLikeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Like a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewPostService().Like(args[0])
	},
}

var postUnlikeCmd = &cobra.Command{
	Use:   "unlike <post-id>",
	Short: "Remove your like from a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewPostService().Unlike(args[0])
	},
}

func init() {
	postListCmd.Flags().String("user", "", "List one author's posts instead of the feed")
	postCreateCmd.Flags().String("title", "", "Post title")
	postCreateCmd.Flags().String("content", "", "Post content")
	_ = postCreateCmd.MarkFlagRequired("content")

	postCmd.AddCommand(postListCmd)
	postCmd.AddCommand(postShowCmd)
	postCmd.AddCommand(postCreateCmd)
	postCmd.AddCommand(postDeleteCmd)
	postCmd.AddCommand(postLikeCmd)
	postCmd.AddCommand(postUnlikeCmd)
}
