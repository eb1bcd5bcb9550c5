package optimistic

import (
	"errors"
	"testing"

	"github.com/redvista/social-cli/pkg/api"
	"github.com/redvista/social-cli/pkg/cache"
)

func newTestFriendshipActions(store *cache.Store) *FriendshipActions {
	fa := NewFriendshipActions(store, "me")
	ok := func(string) (*api.MessageResponse, error) {
		return &api.MessageResponse{Message: "ok"}, nil
	}
	fa.sendRequest = ok
	fa.acceptRequest = ok
	fa.rejectRequest = ok
	return fa
}

func TestSendPatchesBothUsers(t *testing.T) {
	store := cache.New()
	store.Set(cache.UserKey("me"), api.User{ID: "me"})
	store.Set(cache.UserKey("them"), api.User{ID: "them"})
	fa := newTestFriendshipActions(store)

	if err := fa.Send("them"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	v, _ := store.Read(cache.UserKey("me"))
	me := v.(api.User)
	if !containsID(me.SentRequests, "them") {
		t.Errorf("SentRequests = %v, want [them]", me.SentRequests)
	}
	if me.Relationships["them"] != "request_sent" {
		t.Errorf("Relationship = %s, want request_sent", me.Relationships["them"])
	}

	v, _ = store.Read(cache.UserKey("them"))
	them := v.(api.User)
	if !containsID(them.FriendRequests, "me") {
		t.Errorf("Target FriendRequests = %v, want [me]", them.FriendRequests)
	}
	if them.Relationships["me"] != "request_received" {
		t.Errorf("Target relationship = %s, want request_received", them.Relationships["me"])
	}
}

func TestSendFailureRollsBackBothUsers(t *testing.T) {
	store := cache.New()
	store.Set(cache.UserKey("me"), api.User{ID: "me"})
	store.Set(cache.UserKey("them"), api.User{ID: "them"})
	fa := newTestFriendshipActions(store)
	fa.sendRequest = func(string) (*api.MessageResponse, error) {
		return nil, errors.New("blocked")
	}

	if err := fa.Send("them"); err == nil {
		t.Fatal("Send should fail")
	}

	v, _ := store.Read(cache.UserKey("me"))
	if me := v.(api.User); len(me.SentRequests) != 0 || len(me.Relationships) != 0 {
		t.Errorf("Session user = %+v, want untouched record", me)
	}
	v, _ = store.Read(cache.UserKey("them"))
	if them := v.(api.User); len(them.FriendRequests) != 0 {
		t.Errorf("Target = %+v, want untouched record", them)
	}
}

func TestAcceptPromotesRequestToFriendship(t *testing.T) {
	store := cache.New()
	store.Set(cache.UserKey("me"), api.User{ID: "me", FriendRequests: []string{"them"}})
	store.Set(cache.UserKey("them"), api.User{ID: "them", SentRequests: []string{"me"}})
	store.Set(cache.FriendRequestsKey("me"), []api.FriendRequest{{ID: "them"}, {ID: "other"}})
	fa := newTestFriendshipActions(store)

	if err := fa.Accept("them"); err != nil {
		t.Fatalf("Accept failed: %v", err)
	}

	v, _ := store.Read(cache.UserKey("me"))
	me := v.(api.User)
	if !containsID(me.Friends, "them") {
		t.Errorf("Friends = %v, want [them]", me.Friends)
	}
	if containsID(me.FriendRequests, "them") {
		t.Error("Accepted request should leave FriendRequests")
	}
	if me.Relationships["them"] != "friend" {
		t.Errorf("Relationship = %s, want friend", me.Relationships["them"])
	}

	v, _ = store.Read(cache.FriendRequestsKey("me"))
	reqs := v.([]api.FriendRequest)
	if len(reqs) != 1 || reqs[0].ID != "other" {
		t.Errorf("Request list = %+v, want only the other request", reqs)
	}
}

func TestAcceptFailureRollsBackRequestList(t *testing.T) {
	store := cache.New()
	store.Set(cache.UserKey("me"), api.User{ID: "me", FriendRequests: []string{"them"}})
	store.Set(cache.FriendRequestsKey("me"), []api.FriendRequest{{ID: "them"}})
	fa := newTestFriendshipActions(store)
	fa.acceptRequest = func(string) (*api.MessageResponse, error) {
		return nil, errors.New("expired")
	}

	if err := fa.Accept("them"); err == nil {
		t.Fatal("Accept should fail")
	}

	v, _ := store.Read(cache.UserKey("me"))
	me := v.(api.User)
	if len(me.Friends) != 0 || !containsID(me.FriendRequests, "them") {
		t.Errorf("Session user = %+v, want original record restored", me)
	}
	v, _ = store.Read(cache.FriendRequestsKey("me"))
	if reqs := v.([]api.FriendRequest); len(reqs) != 1 {
		t.Errorf("Request list length = %d, want 1 restored", len(reqs))
	}
}

func TestRejectInvalidatesWithoutSpeculation(t *testing.T) {
	store := cache.New()
	store.Set(cache.FriendRequestsKey("me"), []api.FriendRequest{{ID: "them"}})
	fa := newTestFriendshipActions(store)

	if err := fa.Reject("them"); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}

	v, _ := store.Read(cache.FriendRequestsKey("me"))
	if reqs := v.([]api.FriendRequest); len(reqs) != 1 {
		t.Errorf("Request list should be untouched, got %+v", reqs)
	}
	if !store.Stale(cache.FriendRequestsKey("me")) {
		t.Error("Request list should be stale for refetch")
	}
}

func TestRejectFailureSurfacesError(t *testing.T) {
	store := cache.New()
	store.Set(cache.FriendRequestsKey("me"), []api.FriendRequest{{ID: "them"}})
	fa := newTestFriendshipActions(store)
	fa.rejectRequest = func(string) (*api.MessageResponse, error) {
		return nil, errors.New("gone")
	}

	if err := fa.Reject("them"); err == nil {
		t.Fatal("Reject should fail")
	}
	if store.Stale(cache.FriendRequestsKey("me")) {
		t.Error("Failed reject should not invalidate")
	}
}
