package service

import (
	"github.com/redvista/social-cli/pkg/api"
	"github.com/redvista/social-cli/pkg/output"
)

type CommentService struct{}

// NewCommentService creates a new comment service
func NewCommentService() *CommentService {
	return &CommentService{}
}

// List shows the comments on a post
func (s *CommentService) List(postID string) error {
	if _, err := ensureSession(); err != nil {
		return err
	}

	comments, err := api.GetComments(postID)
	if err != nil {
		output.PrintError("Failed to fetch comments: %v", err)
		return err
	}

	if len(comments) == 0 {
		output.PrintInfo("No comments yet")
		return nil
	}

	rows := make([][]string, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, []string{c.AuthorUsername, c.Content, c.CreatedAt})
	}
	return output.PrintList([]string{"Author", "Comment", "Created"}, rows, comments)
}

// Add posts a comment
func (s *CommentService) Add(postID, content string) error {
	if _, err := ensureSession(); err != nil {
		return err
	}

	comment, err := api.CreateComment(postID, content)
	if err != nil {
		output.PrintError("Failed to add comment: %v", err)
		return err
	}

	output.PrintSuccess("✓ Comment added: %s", comment.ID)
	return nil
}
