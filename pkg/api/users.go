package api

import (
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/redvista/social-cli/pkg/client"
	"github.com/redvista/social-cli/pkg/logger"
)

// GetUser retrieves a user profile by id
func GetUser(userID string) (*User, error) {
	logger.Debug("Fetching user", "user_id", userID)

	resp, err := client.GetClient().
		R().
		Get(fmt.Sprintf("/api/users/%s", userID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(resp.Body(), &user); err != nil {
		return nil, err
	}

	return &user, nil
}

// SearchUsers searches users by username
func SearchUsers(query string) ([]User, error) {
	logger.Debug("Searching users", "query", query)

	resp, err := client.GetClient().
		R().
		SetQueryParam("q", query).
		Get("/api/users/search")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var users []User
	if err := json.Unmarshal(resp.Body(), &users); err != nil {
		return nil, err
	}

	return users, nil
}
