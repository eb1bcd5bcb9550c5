package api

import (
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/redvista/social-cli/pkg/client"
	"github.com/redvista/social-cli/pkg/logger"
)

// ListPosts retrieves the main post feed
func ListPosts() ([]Post, error) {
	logger.Debug("Fetching posts")

	resp, err := client.GetClient().
		R().
		Get("/api/posts")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var posts []Post
	if err := json.Unmarshal(resp.Body(), &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// ListPostsByUser retrieves posts authored by a single user
func ListPostsByUser(userID string) ([]Post, error) {
	logger.Debug("Fetching posts by user", "user_id", userID)

	resp, err := client.GetClient().
		R().
		Get(fmt.Sprintf("/api/posts/user/%s", userID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var posts []Post
	if err := json.Unmarshal(resp.Body(), &posts); err != nil {
		return nil, err
	}

	return posts, nil
}

// GetPost retrieves a single post by id
func GetPost(postID string) (*Post, error) {
	logger.Debug("Fetching post", "post_id", postID)

	resp, err := client.GetClient().
		R().
		Get(fmt.Sprintf("/api/posts/%s", postID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var post Post
	if err := json.Unmarshal(resp.Body(), &post); err != nil {
		return nil, err
	}

	return &post, nil
}

// CreatePost publishes a new post
func CreatePost(title, content string) (*Post, error) {
	logger.Debug("Creating post", "title", title)

	reqBody, err := json.Marshal(map[string]string{
		"title":   title,
		"content": content,
	})
	if err != nil {
		return nil, err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/api/posts")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var post Post
	if err := json.Unmarshal(resp.Body(), &post); err != nil {
		return nil, err
	}

	return &post, nil
}

// DeletePost removes a post
func DeletePost(postID string) error {
	logger.Debug("Deleting post", "post_id", postID)

	resp, err := client.GetClient().
		R().
		Delete(fmt.Sprintf("/api/posts/%s", postID))

	return CheckResponse(resp, err)
}

// LikePost likes a post and returns the authoritative post state
func LikePost(postID string) (*Post, error) {
	logger.Debug("Liking post", "post_id", postID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/api/posts/%s/like", postID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var post Post
	if err := json.Unmarshal(resp.Body(), &post); err != nil {
		return nil, err
	}

	return &post, nil
}

// UnlikePost removes a like and returns the authoritative post state
func UnlikePost(postID string) (*Post, error) {
	logger.Debug("Unliking post", "post_id", postID)

	resp, err := client.GetClient().
		R().
		Delete(fmt.Sprintf("/api/posts/%s/like", postID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var post Post
	if err := json.Unmarshal(resp.Body(), &post); err != nil {
		return nil, err
	}

	return &post, nil
}
