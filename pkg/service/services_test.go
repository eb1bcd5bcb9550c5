package service

import (
	"testing"
)

func TestNewAuthService(t *testing.T) {
	if NewAuthService() == nil {
		t.Error("NewAuthService returned nil")
	}
}

func TestNewPostService(t *testing.T) {
	if NewPostService() == nil {
		t.Error("NewPostService returned nil")
	}
}

func TestNewCommentService(t *testing.T) {
	if NewCommentService() == nil {
		t.Error("NewCommentService returned nil")
	}
}

func TestNewImageService(t *testing.T) {
	if NewImageService() == nil {
		t.Error("NewImageService returned nil")
	}
}

func TestNewFriendshipService(t *testing.T) {
	if NewFriendshipService() == nil {
		t.Error("NewFriendshipService returned nil")
	}
}

func TestNewNotificationService(t *testing.T) {
	if NewNotificationService() == nil {
		t.Error("NewNotificationService returned nil")
	}
}

func TestNewWatcherService(t *testing.T) {
	if NewWatcherService() == nil {
		t.Error("NewWatcherService returned nil")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 50); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := truncate("abcdefghijklmnopqrstuvwxyz", 10)
	if len(long) != 10 {
		t.Errorf("truncate length = %d, want 10", len(long))
	}
	if long[7:] != "..." {
		t.Errorf("truncate should end with ellipsis, got %q", long)
	}
}
