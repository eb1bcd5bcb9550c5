package service

import (
	"github.com/redvista/social-cli/pkg/api"
	"github.com/redvista/social-cli/pkg/notifications"
	"github.com/redvista/social-cli/pkg/output"
)

// NotificationService reads and updates the notification feed. The
// merger keeps the bulk list and any live pushes consistent; outside a
// watch session only the bulk side is populated.
type NotificationService struct {
	merger *notifications.Merger
}

// NewNotificationService creates a new notification service
func NewNotificationService() *NotificationService {
	return &NotificationService{merger: notifications.NewMerger()}
}

// List shows the merged notification feed
func (s *NotificationService) List() error {
	if _, err := ensureSession(); err != nil {
		return err
	}

	list, err := api.GetNotifications()
	if err != nil {
		output.PrintError("Failed to fetch notifications: %v", err)
		return err
	}
	s.merger.SetBulk(list)

	merged := s.merger.List()
	if len(merged) == 0 {
		output.PrintInfo("No notifications")
		return nil
	}

	rows := make([][]string, 0, len(merged))
	for _, n := range merged {
		read := ""
		if !n.Read {
			read = "●"
		}
		rows = append(rows, []string{read, n.ID, n.Type, n.Message, n.CreatedAt})
	}
	if err := output.PrintList([]string{"", "ID", "Type", "Message", "Created"}, rows, merged); err != nil {
		return err
	}

	if unread := s.merger.UnreadCount(); unread > 0 {
		output.PrintInfo("%d unread", unread)
	}
	return nil
}

// MarkRead marks specific notifications as read
func (s *NotificationService) MarkRead(ids []string) error {
	if _, err := ensureSession(); err != nil {
		return err
	}

	if err := api.MarkNotificationsAsRead(ids); err != nil {
		output.PrintError("Failed to mark as read: %v", err)
		return err
	}
	s.merger.MarkRead(ids)

	output.PrintSuccess("✓ Marked %d notification(s) as read", len(ids))
	return nil
}

// MarkAllRead marks every unread notification as read
func (s *NotificationService) MarkAllRead() error {
	if _, err := ensureSession(); err != nil {
		return err
	}

	list, err := api.GetNotifications()
	if err != nil {
		output.PrintError("Failed to fetch notifications: %v", err)
		return err
	}
	s.merger.SetBulk(list)

	ids := s.merger.UnreadIDs()
	if len(ids) == 0 {
		output.PrintInfo("Nothing unread")
		return nil
	}

	if err := api.MarkNotificationsAsRead(ids); err != nil {
		output.PrintError("Failed to mark as read: %v", err)
		return err
	}
	s.merger.MarkRead(ids)

	output.PrintSuccess("✓ Marked %d notification(s) as read", len(ids))
	return nil
}
