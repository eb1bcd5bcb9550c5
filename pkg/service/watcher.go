package service

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redvista/social-cli/pkg/api"
	"github.com/redvista/social-cli/pkg/cache"
	"github.com/redvista/social-cli/pkg/notifications"
	"github.com/redvista/social-cli/pkg/output"
	"github.com/redvista/social-cli/pkg/realtime"
)

// WatcherService streams live events to the terminal. Each watch run
// owns its cache store, router, and channel registry; the registry
// tears every channel down when the run ends.
type WatcherService struct{}

// NewWatcherService creates a new watcher service
func NewWatcherService() *WatcherService {
	return &WatcherService{}
}

// WatchNotifications follows the session notification channel until
// interrupted
func (w *WatcherService) WatchNotifications(ctx context.Context) error {
	creds, err := ensureSession()
	if err != nil {
		return err
	}

	store := cache.New()
	merger := notifications.NewMerger()
	sink := &printingSink{merger: merger}
	router := realtime.NewRouter(store, sink, creds.UserID)
	registry := realtime.NewRegistry(realtime.ConfigFromSettings(), nil, router)
	defer registry.CloseAll()

	// seed the merger so pushed entries dedup against history
	if bulk, err := api.GetNotifications(); err == nil {
		merger.SetBulk(bulk)
	}

	dispose, err := registry.Open(realtime.KindNotifications, creds.UserID, creds)
	if err != nil {
		return fmt.Errorf("failed to open notification channel: %w", err)
	}
	defer dispose()

	fmt.Printf("\n")
	output.PrintInfo("🔔 Watching for notifications")
	fmt.Printf("Connected as: @%s\n", creds.Username)
	fmt.Printf("Press Ctrl+C to stop\n")
	fmt.Printf("%s\n\n", strings.Repeat("─", 60))

	return waitForStop(ctx, "Notification watcher stopped")
}

// WatchPost follows one post's channel, printing like and comment
// activity as it lands in the cache
func (w *WatcherService) WatchPost(ctx context.Context, postID string) error {
	creds, err := ensureSession()
	if err != nil {
		return err
	}

	store := cache.New()
	if post, err := api.GetPost(postID); err == nil {
		store.Set(cache.PostKey(postID), *post)
	}

	router := realtime.NewRouter(store, nil, creds.UserID)
	router.SetListener(func(key realtime.Key, frame *realtime.Frame) {
		displayEvent(frame.Event, describePostEvent(store, postID, frame))
	})
	registry := realtime.NewRegistry(realtime.ConfigFromSettings(), nil, router)
	defer registry.CloseAll()

	dispose, err := registry.Open(realtime.KindPost, postID, creds)
	if err != nil {
		return fmt.Errorf("failed to open post channel: %w", err)
	}
	defer dispose()

	fmt.Printf("\n")
	output.PrintInfo("👀 Watching post %s", postID)
	fmt.Printf("Press Ctrl+C to stop\n")
	fmt.Printf("%s\n\n", strings.Repeat("─", 60))

	return waitForStop(ctx, "Post watcher stopped")
}

// WatchImage follows one image's channel
func (w *WatcherService) WatchImage(ctx context.Context, imageID string) error {
	creds, err := ensureSession()
	if err != nil {
		return err
	}

	store := cache.New()
	if details, err := api.GetImageDetails(imageID); err == nil {
		store.Set(cache.ImageDetailsKey(imageID), *details)
	}

	router := realtime.NewRouter(store, nil, creds.UserID)
	router.SetListener(func(key realtime.Key, frame *realtime.Frame) {
		displayEvent(frame.Event, describeImageEvent(store, imageID, frame))
	})
	registry := realtime.NewRegistry(realtime.ConfigFromSettings(), nil, router)
	defer registry.CloseAll()

	dispose, err := registry.Open(realtime.KindImage, imageID, creds)
	if err != nil {
		return fmt.Errorf("failed to open image channel: %w", err)
	}
	defer dispose()

	fmt.Printf("\n")
	output.PrintInfo("👀 Watching image %s", imageID)
	fmt.Printf("Press Ctrl+C to stop\n")
	fmt.Printf("%s\n\n", strings.Repeat("─", 60))

	return waitForStop(ctx, "Image watcher stopped")
}

// waitForStop blocks until SIGINT/SIGTERM or context cancellation
func waitForStop(ctx context.Context, doneMsg string) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-sigChan:
		fmt.Printf("\n")
		output.PrintSuccess("%s", doneMsg)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// printingSink forwards pushes into the merger and prints the new ones
type printingSink struct {
	merger *notifications.Merger
}

func (s *printingSink) Push(n api.Notification) bool {
	if !s.merger.Push(n) {
		return false
	}
	displayEvent(n.Type, describeNotification(n))
	return true
}

func displayEvent(kind, message string) {
	timestamp := time.Now().Format("15:04:05")
	fmt.Printf("[%s] %-18s %s\n", timestamp, kind, message)
}

func describeNotification(n api.Notification) string {
	if n.Message != "" {
		return n.Message
	}
	who := n.EmitterUsername
	if who == "" {
		who = n.EmitterID
	}
	switch n.Type {
	case api.NotificationTypeLike:
		return fmt.Sprintf("@%s liked your post", who)
	case api.NotificationTypeComment:
		return fmt.Sprintf("@%s commented on your post", who)
	case api.NotificationTypeNewFollower:
		return fmt.Sprintf("@%s followed you", who)
	case api.NotificationTypeFriendRequest:
		return fmt.Sprintf("@%s sent you a friend request", who)
	case api.NotificationTypeFriendAccepted:
		return fmt.Sprintf("@%s accepted your friend request", who)
	case api.NotificationTypeImageComment:
		return fmt.Sprintf("@%s commented on your image", who)
	default:
		return fmt.Sprintf("from @%s", who)
	}
}

func describePostEvent(store *cache.Store, postID string, frame *realtime.Frame) string {
	switch frame.Event {
	case realtime.EventPostUpdated:
		if v, ok := store.Read(cache.PostKey(postID)); ok {
			if post, ok := v.(api.Post); ok {
				return fmt.Sprintf("likes: %d", post.LikesCount)
			}
		}
		return "like state changed"
	case realtime.EventNewComment:
		return "new comment"
	case realtime.EventPostDeleted:
		return "post was deleted"
	default:
		return frame.Event
	}
}

func describeImageEvent(store *cache.Store, imageID string, frame *realtime.Frame) string {
	switch frame.Event {
	case realtime.EventImageUpdated:
		if v, ok := store.Read(cache.ImageDetailsKey(imageID)); ok {
			if details, ok := v.(api.ImageDetails); ok {
				return fmt.Sprintf("likes: %d", details.LikesCount)
			}
		}
		return "like state changed"
	case realtime.EventNewImageComment:
		return "new comment"
	default:
		return frame.Event
	}
}
