package cmd

import (
	"github.com/redvista/social-cli/pkg/service"
	"github.com/spf13/cobra"
)

var friendsCmd = &cobra.Command{
	Use:   "friends",
	Short: "Friendship commands",
	Long:  "Manage friends and friend requests",
}

var friendsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your friends",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewFriendshipService().Friends()
	},
}

var friendsRequestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List incoming friend requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewFriendshipService().Requests()
	},
}

var friendsAddCmd = &cobra.Command{
	Use:   "add <user-id>",
	Short: "Send a friend request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewFriendshipService().Add(args[0])
	},
}

var friendsAcceptCmd = &cobra.Command{
	Use:   "accept <user-id>",
	Short: "Accept a friend request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewFriendshipService().Accept(args[0])
	},
}

var friendsRejectCmd = &cobra.Command{
	Use:   "reject <user-id>",
	Short: "Reject a friend request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewFriendshipService().Reject(args[0])
	},
}

var friendsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search users by username",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewFriendshipService().Search(args[0])
	},
}

var friendsStatusCmd = &cobra.Command{
	Use:   "status <user-id>",
	Short: "Show your relationship with a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewFriendshipService().Status(args[0])
	},
}

func init() {
	friendsCmd.AddCommand(friendsListCmd)
	friendsCmd.AddCommand(friendsRequestsCmd)
	friendsCmd.AddCommand(friendsAddCmd)
	friendsCmd.AddCommand(friendsAcceptCmd)
	friendsCmd.AddCommand(friendsRejectCmd)
	friendsCmd.AddCommand(friendsSearchCmd)
	friendsCmd.AddCommand(friendsStatusCmd)
}
