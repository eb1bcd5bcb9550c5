package optimistic

import (
	"github.com/redvista/social-cli/pkg/api"
	"github.com/redvista/social-cli/pkg/cache"
)

// FriendshipActions runs friend-request mutations for the session
// user. Send and Accept patch both users' cached records speculatively;
// Reject only invalidates, matching the server's lighter response.
type FriendshipActions struct {
	engine *Engine
	userID string

	sendRequest   func(userID string) (*api.MessageResponse, error)
	acceptRequest func(userID string) (*api.MessageResponse, error)
	rejectRequest func(userID string) (*api.MessageResponse, error)
}

// NewFriendshipActions creates friendship actions for the session user
func NewFriendshipActions(store *cache.Store, userID string) *FriendshipActions {
	return &FriendshipActions{
		engine:        NewEngine(store),
		userID:        userID,
		sendRequest:   api.SendFriendRequest,
		acceptRequest: api.AcceptFriendRequest,
		rejectRequest: api.RejectFriendRequest,
	}
}

// Send optimistically records an outgoing friend request
func (fa *FriendshipActions) Send(targetID string) error {
	return fa.engine.Run(Mutation{
		Name: "send friend request",
		Keys: []string{
			cache.UserKey(fa.userID),
			cache.UserKey(targetID),
		},
		Apply: func(key string, prior interface{}) interface{} {
			switch key {
			case cache.UserKey(fa.userID):
				return patchUser(prior, func(user api.User) api.User {
					user.SentRequests = appendID(user.SentRequests, targetID)
					user.Relationships = withRelationship(user.Relationships, targetID, "request_sent")
					return user
				})
			case cache.UserKey(targetID):
				return patchUser(prior, func(user api.User) api.User {
					user.FriendRequests = appendID(user.FriendRequests, fa.userID)
					user.Relationships = withRelationship(user.Relationships, fa.userID, "request_received")
					return user
				})
			}
			return prior
		},
		Action: func() (interface{}, error) {
			return fa.sendRequest(targetID)
		},
	})
}

// Accept optimistically promotes an incoming request to a friendship
func (fa *FriendshipActions) Accept(targetID string) error {
	return fa.engine.Run(Mutation{
		Name: "accept friend request",
		Keys: []string{
			cache.UserKey(fa.userID),
			cache.UserKey(targetID),
			cache.FriendsKey,
			cache.FriendRequestsKey(fa.userID),
		},
		Apply: func(key string, prior interface{}) interface{} {
			switch key {
			case cache.UserKey(fa.userID):
				return patchUser(prior, func(user api.User) api.User {
					user.Friends = appendID(user.Friends, targetID)
					user.FriendRequests = dropID(user.FriendRequests, targetID)
					user.Relationships = withRelationship(user.Relationships, targetID, "friend")
					return user
				})
			case cache.UserKey(targetID):
				return patchUser(prior, func(user api.User) api.User {
					user.Friends = appendID(user.Friends, fa.userID)
					user.Relationships = withRelationship(user.Relationships, fa.userID, "friend")
					return user
				})
			case cache.FriendRequestsKey(fa.userID):
				return dropRequest(prior, targetID)
			}
			return prior
		},
		Action: func() (interface{}, error) {
			return fa.acceptRequest(targetID)
		},
	})
}

// Reject declines an incoming request. No speculative patch; the
// request list is invalidated once the server confirms.
func (fa *FriendshipActions) Reject(targetID string) error {
	if _, err := fa.rejectRequest(targetID); err != nil {
		return err
	}
	fa.engine.store.Invalidate(cache.FriendRequestsKey(fa.userID))
	fa.engine.store.Invalidate(cache.UserKey(fa.userID))
	fa.engine.store.Invalidate(cache.UserKey(targetID))
	return nil
}

func patchUser(prior interface{}, fn func(api.User) api.User) interface{} {
	user, ok := prior.(api.User)
	if !ok {
		return prior
	}
	return fn(user)
}

// dropRequest filters targetID out of a cached friend-request list
func dropRequest(prior interface{}, targetID string) interface{} {
	list, ok := prior.([]api.FriendRequest)
	if !ok {
		return prior
	}
	out := make([]api.FriendRequest, 0, len(list))
	for _, req := range list {
		if req.ID != targetID {
			out = append(out, req)
		}
	}
	return out
}

func withRelationship(rels map[string]string, userID, status string) map[string]string {
	out := make(map[string]string, len(rels)+1)
	for k, v := range rels {
		out[k] = v
	}
	out[userID] = status
	return out
}
