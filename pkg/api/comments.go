package api

import (
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/redvista/social-cli/pkg/client"
	"github.com/redvista/social-cli/pkg/logger"
)

// GetComments retrieves comments for a post
func GetComments(postID string) ([]Comment, error) {
	logger.Debug("Fetching comments", "post_id", postID)

	resp, err := client.GetClient().
		R().
		Get(fmt.Sprintf("/api/posts/%s/comments", postID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var comments []Comment
	if err := json.Unmarshal(resp.Body(), &comments); err != nil {
		return nil, err
	}

	return comments, nil
}

// CreateComment adds a comment to a post
func CreateComment(postID, content string) (*Comment, error) {
	logger.Debug("Creating comment", "post_id", postID)

	reqBody, err := json.Marshal(map[string]string{
		"content": content,
	})
	if err != nil {
		return nil, err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post(fmt.Sprintf("/api/posts/%s/comments", postID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var comment Comment
	if err := json.Unmarshal(resp.Body(), &comment); err != nil {
		return nil, err
	}

	return &comment, nil
}
