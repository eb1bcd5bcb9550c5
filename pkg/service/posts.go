package service

import (
	"fmt"

	"github.com/redvista/social-cli/pkg/api"
	"github.com/redvista/social-cli/pkg/cache"
	"github.com/redvista/social-cli/pkg/optimistic"
	"github.com/redvista/social-cli/pkg/output"
)

// PostService lists and mutates posts. Fetched results seed the cache
// store so like mutations patch the same state a watcher would.
type PostService struct {
	store *cache.Store
}

// NewPostService creates a new post service
func NewPostService() *PostService {
	return &PostService{store: cache.New()}
}

// List shows the main feed
func (s *PostService) List() error {
	if _, err := ensureSession(); err != nil {
		return err
	}

	posts, err := api.ListPosts()
	if err != nil {
		output.PrintError("Failed to fetch posts: %v", err)
		return err
	}
	s.store.Set(cache.PostsKey, posts)

	if len(posts) == 0 {
		output.PrintInfo("No posts yet")
		return nil
	}

	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{
			p.ID,
			p.AuthorUsername,
			truncate(p.Content, 50),
			fmt.Sprintf("%d", p.LikesCount),
			fmt.Sprintf("%d", p.CommentsCount),
		})
	}
	return output.PrintList([]string{"ID", "Author", "Content", "Likes", "Comments"}, rows, posts)
}

// ListByUser shows one author's posts
func (s *PostService) ListByUser(userID string) error {
	if _, err := ensureSession(); err != nil {
		return err
	}

	posts, err := api.ListPostsByUser(userID)
	if err != nil {
		output.PrintError("Failed to fetch posts: %v", err)
		return err
	}
	s.store.Set(cache.PostsByUserKey(userID), posts)

	if len(posts) == 0 {
		output.PrintInfo("No posts yet")
		return nil
	}

	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, []string{
			p.ID,
			truncate(p.Content, 50),
			fmt.Sprintf("%d", p.LikesCount),
			fmt.Sprintf("%d", p.CommentsCount),
		})
	}
	return output.PrintList([]string{"ID", "Content", "Likes", "Comments"}, rows, posts)
}

// Show displays one post
func (s *PostService) Show(postID string) error {
	if _, err := ensureSession(); err != nil {
		return err
	}

	post, err := api.GetPost(postID)
	if err != nil {
		output.PrintError("Failed to fetch post: %v", err)
		return err
	}
	s.store.Set(cache.PostKey(postID), *post)

	return output.PrintRecord("Post", map[string]interface{}{
		"ID":       post.ID,
		"Author":   post.AuthorUsername,
		"Content":  post.Content,
		"Likes":    post.LikesCount,
		"Comments": post.CommentsCount,
		"Created":  post.CreatedAt,
	})
}

// Create publishes a new post
func (s *PostService) Create(title, content string) error {
	if _, err := ensureSession(); err != nil {
		return err
	}

	post, err := api.CreatePost(title, content)
	if err != nil {
		output.PrintError("Failed to create post: %v", err)
		return err
	}

	output.PrintSuccess("✓ Post created: %s", post.ID)
	return nil
}

// Delete removes one of your posts
func (s *PostService) Delete(postID string) error {
	if _, err := ensureSession(); err != nil {
		return err
	}

	if err := api.DeletePost(postID); err != nil {
		output.PrintError("Failed to delete post: %v", err)
		return err
	}
	s.store.Delete(cache.PostKey(postID))
	s.store.Invalidate(cache.PostsKey)

	output.PrintSuccess("✓ Post %s deleted", postID)
	return nil
}

// Like optimistically likes a post. The cached like state flips before
// the request settles and rolls back if the server rejects it.
func (s *PostService) Like(postID string) error {
	creds, err := ensureSession()
	if err != nil {
		return err
	}

	s.seedPost(postID)
	actions := optimistic.NewLikeActions(s.store, creds.UserID)
	if err := actions.Like(postID); err != nil {
		output.PrintError("%v", err)
		return err
	}

	output.PrintSuccess("✓ Liked post %s", postID)
	s.showLikeState(postID)
	return nil
}

// Unlike optimistically removes a like
func (s *PostService) Unlike(postID string) error {
	creds, err := ensureSession()
	if err != nil {
		return err
	}

	s.seedPost(postID)
	actions := optimistic.NewLikeActions(s.store, creds.UserID)
	if err := actions.Unlike(postID); err != nil {
		output.PrintError("%v", err)
		return err
	}

	output.PrintSuccess("✓ Unliked post %s", postID)
	s.showLikeState(postID)
	return nil
}

// seedPost primes the cache with current server state so the
// speculative patch has something to act on
func (s *PostService) seedPost(postID string) {
	if _, ok := s.store.Read(cache.PostKey(postID)); ok {
		return
	}
	if post, err := api.GetPost(postID); err == nil {
		s.store.Set(cache.PostKey(postID), *post)
	}
}

func (s *PostService) showLikeState(postID string) {
	if v, ok := s.store.Read(cache.PostKey(postID)); ok {
		if post, ok := v.(api.Post); ok {
			output.PrintInfo("Likes: %d", post.LikesCount)
		}
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
