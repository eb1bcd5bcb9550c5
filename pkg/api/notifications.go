package api

import (
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/redvista/social-cli/pkg/client"
	"github.com/redvista/social-cli/pkg/logger"
)

// GetNotifications retrieves the full notification list (the bulk
// source the merge engine combines with live pushes)
func GetNotifications() ([]Notification, error) {
	logger.Debug("Fetching notifications")

	resp, err := client.GetClient().
		R().
		Get("/api/notifications")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var notifications []Notification
	if err := json.Unmarshal(resp.Body(), &notifications); err != nil {
		return nil, err
	}

	return notifications, nil
}

// MarkNotificationsAsRead marks the given notifications as read
func MarkNotificationsAsRead(notificationIDs []string) error {
	logger.Debug("Marking notifications as read", "count", len(notificationIDs))

	reqBody, err := json.Marshal(map[string][]string{
		"notificationIds": notificationIDs,
	})
	if err != nil {
		return err
	}

	resp, err := client.GetClient().
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(reqBody).
		Post("/api/notifications/mark-as-read")

	if err := CheckResponse(resp, err); err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}

	return nil
}
