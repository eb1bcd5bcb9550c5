package service

import (
	"github.com/redvista/social-cli/pkg/api"
	"github.com/redvista/social-cli/pkg/cache"
	"github.com/redvista/social-cli/pkg/optimistic"
	"github.com/redvista/social-cli/pkg/output"
)

// FriendshipService manages the friend graph. Send and Accept run
// through the optimistic engine so cached relationship state updates
// ahead of the server response.
type FriendshipService struct {
	store *cache.Store
}

// NewFriendshipService creates a new friendship service
func NewFriendshipService() *FriendshipService {
	return &FriendshipService{store: cache.New()}
}

// Friends lists the current user's friends
func (s *FriendshipService) Friends() error {
	if _, err := ensureSession(); err != nil {
		return err
	}

	friends, err := api.GetFriends()
	if err != nil {
		output.PrintError("Failed to fetch friends: %v", err)
		return err
	}
	s.store.Set(cache.FriendsKey, friends)

	if len(friends) == 0 {
		output.PrintInfo("No friends yet")
		return nil
	}

	rows := make([][]string, 0, len(friends))
	for _, f := range friends {
		rows = append(rows, []string{f.ID, f.Username})
	}
	return output.PrintList([]string{"ID", "Username"}, rows, friends)
}

// Requests lists incoming friend requests
func (s *FriendshipService) Requests() error {
	creds, err := ensureSession()
	if err != nil {
		return err
	}

	requests, err := api.GetFriendRequests()
	if err != nil {
		output.PrintError("Failed to fetch friend requests: %v", err)
		return err
	}
	s.store.Set(cache.FriendRequestsKey(creds.UserID), requests)

	if len(requests) == 0 {
		output.PrintInfo("No pending friend requests")
		return nil
	}

	rows := make([][]string, 0, len(requests))
	for _, r := range requests {
		rows = append(rows, []string{r.ID, r.Username})
	}
	return output.PrintList([]string{"ID", "Username"}, rows, requests)
}

// Add sends a friend request
func (s *FriendshipService) Add(userID string) error {
	creds, err := ensureSession()
	if err != nil {
		return err
	}

	s.seedUsers(creds.UserID, userID)
	actions := optimistic.NewFriendshipActions(s.store, creds.UserID)
	if err := actions.Send(userID); err != nil {
		output.PrintError("%v", err)
		return err
	}

	output.PrintSuccess("✓ Friend request sent to %s", userID)
	return nil
}

// Accept accepts an incoming friend request
func (s *FriendshipService) Accept(userID string) error {
	creds, err := ensureSession()
	if err != nil {
		return err
	}

	s.seedUsers(creds.UserID, userID)
	actions := optimistic.NewFriendshipActions(s.store, creds.UserID)
	if err := actions.Accept(userID); err != nil {
		output.PrintError("%v", err)
		return err
	}

	output.PrintSuccess("✓ Friend request from %s accepted", userID)
	return nil
}

// Reject declines an incoming friend request
func (s *FriendshipService) Reject(userID string) error {
	creds, err := ensureSession()
	if err != nil {
		return err
	}

	actions := optimistic.NewFriendshipActions(s.store, creds.UserID)
	if err := actions.Reject(userID); err != nil {
		output.PrintError("%v", err)
		return err
	}

	output.PrintSuccess("✓ Friend request from %s rejected", userID)
	return nil
}

// Status shows the relationship with another user
func (s *FriendshipService) Status(userID string) error {
	if _, err := ensureSession(); err != nil {
		return err
	}

	status, err := api.GetRelationshipStatus(userID)
	if err != nil {
		output.PrintError("Failed to fetch relationship: %v", err)
		return err
	}

	return output.PrintRecord("Relationship", map[string]interface{}{
		"User":   userID,
		"Status": status.Status,
	})
}

// Search finds users by username
func (s *FriendshipService) Search(query string) error {
	if _, err := ensureSession(); err != nil {
		return err
	}

	users, err := api.SearchUsers(query)
	if err != nil {
		output.PrintError("Search failed: %v", err)
		return err
	}

	if len(users) == 0 {
		output.PrintInfo("No users found")
		return nil
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.ID, u.Username})
	}
	return output.PrintList([]string{"ID", "Username"}, rows, users)
}

// seedUsers primes the cache with both user records so optimistic
// patches have state to act on
func (s *FriendshipService) seedUsers(ids ...string) {
	for _, id := range ids {
		if _, ok := s.store.Read(cache.UserKey(id)); ok {
			continue
		}
		if user, err := api.GetUser(id); err == nil {
			s.store.Set(cache.UserKey(id), *user)
		}
	}
}
