package api

import (
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/redvista/social-cli/pkg/client"
	"github.com/redvista/social-cli/pkg/logger"
)

// GetImageDetails retrieves a single image with like state
func GetImageDetails(imageID string) (*ImageDetails, error) {
	logger.Debug("Fetching image details", "image_id", imageID)

	resp, err := client.GetClient().
		R().
		Get(fmt.Sprintf("/api/images/%s", imageID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var details ImageDetails
	if err := json.Unmarshal(resp.Body(), &details); err != nil {
		return nil, err
	}

	return &details, nil
}

// GetImageComments retrieves comments for an image
func GetImageComments(imageID string) ([]ImageComment, error) {
	logger.Debug("Fetching image comments", "image_id", imageID)

	resp, err := client.GetClient().
		R().
		Get(fmt.Sprintf("/api/images/%s/comments", imageID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var comments []ImageComment
	if err := json.Unmarshal(resp.Body(), &comments); err != nil {
		return nil, err
	}

	return comments, nil
}

// LikeImage likes an image and returns the authoritative image state
func LikeImage(imageID string) (*ImageDetails, error) {
	logger.Debug("Liking image", "image_id", imageID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/api/images/%s/like", imageID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var details ImageDetails
	if err := json.Unmarshal(resp.Body(), &details); err != nil {
		return nil, err
	}

	return &details, nil
}

// UnlikeImage removes a like and returns the authoritative image state
func UnlikeImage(imageID string) (*ImageDetails, error) {
	logger.Debug("Unliking image", "image_id", imageID)

	resp, err := client.GetClient().
		R().
		Delete(fmt.Sprintf("/api/images/%s/like", imageID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var details ImageDetails
	if err := json.Unmarshal(resp.Body(), &details); err != nil {
		return nil, err
	}

	return &details, nil
}

// CreateImageComment adds a comment to an image
func CreateImageComment(imageID, content string) (*ImageComment, error) {
	logger.Debug("Creating image comment", "image_id", imageID)

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
		Post(fmt.Sprintf("/api/images/%s/comments", imageID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var comment ImageComment
	if err := json.Unmarshal(resp.Body(), &comment); err != nil {
		return nil, err
	}

	return &comment, nil
}
