package service

import (
	"github.com/redvista/social-cli/pkg/api"
	"github.com/redvista/social-cli/pkg/cache"
	"github.com/redvista/social-cli/pkg/optimistic"
	"github.com/redvista/social-cli/pkg/output"
)

type ImageService struct {
	store *cache.Store
}

// NewImageService creates a new image service
func NewImageService() *ImageService {
	return &ImageService{store: cache.New()}
}

// Show displays an image's details and comments
func (s *ImageService) Show(imageID string) error {
	if _, err := ensureSession(); err != nil {
		return err
	}

	details, err := api.GetImageDetails(imageID)
	if err != nil {
		output.PrintError("Failed to fetch image: %v", err)
		return err
	}
	s.store.Set(cache.ImageDetailsKey(imageID), *details)

	if err := output.PrintRecord("Image", map[string]interface{}{
		"ID":      details.ID,
		"URL":     details.URL,
		"Owner":   details.OwnerID,
		"Likes":   details.LikesCount,
		"Created": details.CreatedAt,
	}); err != nil {
		return err
	}

	comments, err := api.GetImageComments(imageID)
	if err != nil {
		output.PrintWarning("Failed to fetch image comments: %v", err)
		return nil
	}
	if len(comments) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, []string{c.AuthorUsername, c.Content, c.CreatedAt})
	}
	return output.PrintList([]string{"Author", "Comment", "Created"}, rows, comments)
}

// Like optimistically likes an image
func (s *ImageService) Like(imageID string) error {
	creds, err := ensureSession()
	if err != nil {
		return err
	}

	s.seedImage(imageID)
	actions := optimistic.NewLikeActions(s.store, creds.UserID)
	if err := actions.LikeImage(imageID); err != nil {
		output.PrintError("%v", err)
		return err
	}

	output.PrintSuccess("✓ Liked image %s", imageID)
	return nil
}

// Unlike optimistically removes an image like
func (s *ImageService) Unlike(imageID string) error {
	creds, err := ensureSession()
	if err != nil {
		return err
	}

	s.seedImage(imageID)
	actions := optimistic.NewLikeActions(s.store, creds.UserID)
	if err := actions.UnlikeImage(imageID); err != nil {
		output.PrintError("%v", err)
		return err
	}

	output.PrintSuccess("✓ Unliked image %s", imageID)
	return nil
}

// Comment adds a comment to an image
func (s *ImageService) Comment(imageID, content string) error {
	if _, err := ensureSession(); err != nil {
		return err
	}

	comment, err := api.CreateImageComment(imageID, content)
	if err != nil {
		output.PrintError("Failed to add image comment: %v", err)
		return err
	}

	output.PrintSuccess("✓ Comment added: %s", comment.ID)
	return nil
}

func (s *ImageService) seedImage(imageID string) {
	if _, ok := s.store.Read(cache.ImageDetailsKey(imageID)); ok {
		return
	}
	if details, err := api.GetImageDetails(imageID); err == nil {
		s.store.Set(cache.ImageDetailsKey(imageID), *details)
	}
}
