package api

import (
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/redvista/social-cli/pkg/client"
	"github.com/redvista/social-cli/pkg/logger"
)

// SendFriendRequest sends a friend request to a user
func SendFriendRequest(userID string) (*MessageResponse, error) {
	logger.Debug("Sending friend request", "user_id", userID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/api/friends/request/%s", userID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := json.Unmarshal(resp.Body(), &msg); err != nil {
		return nil, err
	}

	return &msg, nil
}

// AcceptFriendRequest accepts a pending friend request
func AcceptFriendRequest(userID string) (*MessageResponse, error) {
	logger.Debug("Accepting friend request", "user_id", userID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/api/friends/accept/%s", userID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := json.Unmarshal(resp.Body(), &msg); err != nil {
		return nil, err
	}

	return &msg, nil
}

// RejectFriendRequest rejects a pending friend request
func RejectFriendRequest(userID string) (*MessageResponse, error) {
	logger.Debug("Rejecting friend request", "user_id", userID)

	resp, err := client.GetClient().
		R().
		Post(fmt.Sprintf("/api/friends/reject/%s", userID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var msg MessageResponse
	if err := json.Unmarshal(resp.Body(), &msg); err != nil {
		return nil, err
	}

	return &msg, nil
}

// GetFriendRequests retrieves incoming friend requests
func GetFriendRequests() ([]FriendRequest, error) {
	logger.Debug("Fetching friend requests")

	resp, err := client.GetClient().
		R().
		Get("/api/friends/requests")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var requests []FriendRequest
	if err := json.Unmarshal(resp.Body(), &requests); err != nil {
		return nil, err
	}

	return requests, nil
}

// GetFriends retrieves the current user's friends
func GetFriends() ([]FriendRequest, error) {
	logger.Debug("Fetching friends")

	resp, err := client.GetClient().
		R().
		Get("/api/friends")

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var friends []FriendRequest
	if err := json.Unmarshal(resp.Body(), &friends); err != nil {
		return nil, err
	}

	return friends, nil
}

// GetRelationshipStatus retrieves the relationship with a specific user
func GetRelationshipStatus(userID string) (*RelationshipStatus, error) {
	logger.Debug("Fetching relationship status", "user_id", userID)

	resp, err := client.GetClient().
		R().
		Get(fmt.Sprintf("/api/friends/status/%s", userID))

	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var status RelationshipStatus
	if err := json.Unmarshal(resp.Body(), &status); err != nil {
		return nil, err
	}

	return &status, nil
}
