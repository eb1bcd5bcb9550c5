package realtime

import (
	"encoding/json"
	"testing"

	"github.com/redvista/social-cli/pkg/api"
	"github.com/redvista/social-cli/pkg/cache"
)

func eventFrame(t *testing.T, event string, payload interface{}) *Frame {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}
	return &Frame{Event: event, Data: data}
}

func seedPosts(store *cache.Store, posts ...api.Post) {
	store.Set(cache.PostsKey, posts)
	for _, p := range posts {
		store.Set(cache.PostKey(p.ID), p)
	}
}

func TestPostUpdatedOverwritesLikeState(t *testing.T) {
	store := cache.New()
	seedPosts(store, api.Post{ID: "p1", LikesCount: 5, LikedBy: []string{"a"}})
	rt := NewRouter(store, nil, "u1")

	rt.Dispatch(Key{KindPost, "p1"}, eventFrame(t, EventPostUpdated, PostUpdatePayload{
		PostID:     "p1",
		LikesCount: 6,
		LikedBy:    []string{"a", "b"},
	}))

	v, _ := store.Read(cache.PostsKey)
	list := v.([]api.Post)
	if list[0].LikesCount != 6 || len(list[0].LikedBy) != 2 {
		t.Errorf("List entry = %+v, want likes_count=6 liked_by=[a b]", list[0])
	}

	v, _ = store.Read(cache.PostKey("p1"))
	if post := v.(api.Post); post.LikesCount != 6 {
		t.Errorf("Post entry likes_count = %d, want 6", post.LikesCount)
	}
}

func TestPostUpdatedForeignResourceIsDropped(t *testing.T) {
	store := cache.New()
	seedPosts(store,
		api.Post{ID: "a", LikesCount: 1},
		api.Post{ID: "b", LikesCount: 2},
	)
	rt := NewRouter(store, nil, "u1")

	// update for post a arriving on post b's channel must touch nothing
	rt.Dispatch(Key{KindPost, "b"}, eventFrame(t, EventPostUpdated, PostUpdatePayload{
		PostID:     "a",
		LikesCount: 99,
	}))

	v, _ := store.Read(cache.PostKey("a"))
	if post := v.(api.Post); post.LikesCount != 1 {
		t.Errorf("Post a likes_count = %d, want 1 (unchanged)", post.LikesCount)
	}
	v, _ = store.Read(cache.PostKey("b"))
	if post := v.(api.Post); post.LikesCount != 2 {
		t.Errorf("Post b likes_count = %d, want 2 (unchanged)", post.LikesCount)
	}
}

func TestPostDeletedRemovesFromList(t *testing.T) {
	store := cache.New()
	seedPosts(store, api.Post{ID: "p1"}, api.Post{ID: "p2"})
	rt := NewRouter(store, nil, "u1")

	rt.Dispatch(Key{KindPost, "p1"}, eventFrame(t, EventPostDeleted, PostDeletedPayload{PostID: "p1"}))

	v, _ := store.Read(cache.PostsKey)
	list := v.([]api.Post)
	if len(list) != 1 || list[0].ID != "p2" {
		t.Errorf("List = %+v, want only p2", list)
	}
	if _, ok := store.Read(cache.PostKey("p1")); ok {
		t.Error("post:p1 should be deleted")
	}
}

func TestNewPostInsertIsIdempotent(t *testing.T) {
	store := cache.New()
	store.Set(cache.PostsKey, []api.Post{{ID: "old"}})
	rt := NewRouter(store, nil, "u1")

	frame := eventFrame(t, EventNewPost, api.Post{ID: "new", AuthorID: "author"})
	rt.Dispatch(Key{KindNotifications, "u1"}, frame)
	rt.Dispatch(Key{KindNotifications, "u1"}, frame)

	v, _ := store.Read(cache.PostsKey)
	list := v.([]api.Post)
	if len(list) != 2 {
		t.Fatalf("List length = %d, want 2 (redelivery must not duplicate)", len(list))
	}
	if list[0].ID != "new" {
		t.Errorf("New post should be prepended, got %s first", list[0].ID)
	}

	v, _ = store.Read(cache.PostsByUserKey("author"))
	if byUser := v.([]api.Post); len(byUser) != 1 {
		t.Errorf("Author list length = %d, want 1", len(byUser))
	}
}

func TestNewCommentBumpsCountAndInvalidates(t *testing.T) {
	store := cache.New()
	seedPosts(store, api.Post{ID: "p1", CommentsCount: 2})
	store.Set(cache.CommentsKey("p1"), []api.Comment{})
	rt := NewRouter(store, nil, "u1")

	rt.Dispatch(Key{KindPost, "p1"}, eventFrame(t, EventNewComment, CommentPayload{PostID: "p1"}))

	v, _ := store.Read(cache.PostsKey)
	if list := v.([]api.Post); list[0].CommentsCount != 3 {
		t.Errorf("comments_count = %d, want 3", list[0].CommentsCount)
	}
	if !store.Stale(cache.CommentsKey("p1")) {
		t.Error("Comment list should be stale")
	}
	if !store.Stale(cache.PostKey("p1")) {
		t.Error("post:p1 should be stale")
	}
}

func TestProfileUpdatedPatchesAuthorFields(t *testing.T) {
	store := cache.New()
	store.Set(cache.PostsKey, []api.Post{
		{ID: "p1", AuthorID: "u9", AuthorUsername: "old"},
		{ID: "p2", AuthorID: "other", AuthorUsername: "keep"},
	})
	store.Set(cache.UserKey("u9"), api.User{ID: "u9", Username: "old"})
	rt := NewRouter(store, nil, "u1")

	rt.Dispatch(Key{KindNotifications, "u1"}, eventFrame(t, EventProfileUpdated, ProfilePayload{
		UserID:   "u9",
		Username: "renamed",
	}))

	v, _ := store.Read(cache.PostsKey)
	list := v.([]api.Post)
	if list[0].AuthorUsername != "renamed" {
		t.Errorf("Post p1 author = %s, want renamed", list[0].AuthorUsername)
	}
	if list[1].AuthorUsername != "keep" {
		t.Errorf("Post p2 author = %s, want keep (different author)", list[1].AuthorUsername)
	}

	v, _ = store.Read(cache.UserKey("u9"))
	if user := v.(api.User); user.Username != "renamed" {
		t.Errorf("User record username = %s, want renamed", user.Username)
	}
}

func TestFriendRequestNotificationPatchesSessionUser(t *testing.T) {
	store := cache.New()
	store.Set(cache.UserKey("me"), api.User{ID: "me"})
	sink := &recordingSink{}
	rt := NewRouter(store, sink, "me")

	rt.Dispatch(Key{KindNotifications, "me"}, eventFrame(t, EventNewNotification, api.Notification{
		ID:        "n1",
		Type:      api.NotificationTypeFriendRequest,
		EmitterID: "sender",
	}))

	if sink.count() != 1 {
		t.Fatalf("Sink received %d notifications, want 1", sink.count())
	}

	v, _ := store.Read(cache.UserKey("me"))
	user := v.(api.User)
	if len(user.FriendRequests) != 1 || user.FriendRequests[0] != "sender" {
		t.Errorf("FriendRequests = %v, want [sender]", user.FriendRequests)
	}
	if user.Relationships["sender"] != "request_received" {
		t.Errorf("Relationship = %s, want request_received", user.Relationships["sender"])
	}
}

func TestFriendAcceptedNotificationPromotesToFriend(t *testing.T) {
	store := cache.New()
	store.Set(cache.UserKey("me"), api.User{
		ID:           "me",
		SentRequests: []string{"target"},
	})
	rt := NewRouter(store, &recordingSink{}, "me")

	rt.Dispatch(Key{KindNotifications, "me"}, eventFrame(t, EventNewNotification, api.Notification{
		ID:        "n1",
		Type:      api.NotificationTypeFriendAccepted,
		EmitterID: "target",
	}))

	v, _ := store.Read(cache.UserKey("me"))
	user := v.(api.User)
	if len(user.Friends) != 1 || user.Friends[0] != "target" {
		t.Errorf("Friends = %v, want [target]", user.Friends)
	}
	if len(user.SentRequests) != 0 {
		t.Errorf("SentRequests = %v, want empty", user.SentRequests)
	}
	if user.Relationships["target"] != "friend" {
		t.Errorf("Relationship = %s, want friend", user.Relationships["target"])
	}
}

func TestImageUpdatedForeignResourceIsDropped(t *testing.T) {
	store := cache.New()
	store.Set(cache.ImageDetailsKey("img1"), api.ImageDetails{ID: "img1", LikesCount: 3})
	rt := NewRouter(store, nil, "u1")

	rt.Dispatch(Key{KindImage, "img2"}, eventFrame(t, EventImageUpdated, ImageUpdatePayload{
		ImageID:    "img1",
		LikesCount: 50,
	}))

	v, _ := store.Read(cache.ImageDetailsKey("img1"))
	if details := v.(api.ImageDetails); details.LikesCount != 3 {
		t.Errorf("Image likes_count = %d, want 3 (unchanged)", details.LikesCount)
	}
}

func TestImageUpdatedOverwritesLikeState(t *testing.T) {
	store := cache.New()
	store.Set(cache.ImageDetailsKey("img1"), api.ImageDetails{ID: "img1", LikesCount: 3})
	rt := NewRouter(store, nil, "u1")

	rt.Dispatch(Key{KindImage, "img1"}, eventFrame(t, EventImageUpdated, ImageUpdatePayload{
		ImageID:    "img1",
		LikesCount: 4,
		LikedBy:    []string{"u1"},
	}))

	v, _ := store.Read(cache.ImageDetailsKey("img1"))
	if details := v.(api.ImageDetails); details.LikesCount != 4 {
		t.Errorf("Image likes_count = %d, want 4", details.LikesCount)
	}
}

func TestNewImageCommentInvalidates(t *testing.T) {
	store := cache.New()
	store.Set(cache.ImageDetailsKey("img1"), api.ImageDetails{ID: "img1"})
	store.Set(cache.ImageCommentsKey("img1"), []api.ImageComment{})
	rt := NewRouter(store, nil, "u1")

	rt.Dispatch(Key{KindImage, "img1"}, eventFrame(t, EventNewImageComment, ImageCommentPayload{ImageID: "img1"}))

	if !store.Stale(cache.ImageDetailsKey("img1")) {
		t.Error("Image details should be stale")
	}
	if !store.Stale(cache.ImageCommentsKey("img1")) {
		t.Error("Image comments should be stale")
	}
}

func TestUnknownEventIsDropped(t *testing.T) {
	store := cache.New()
	store.Set(cache.PostsKey, []api.Post{{ID: "p1"}})
	rt := NewRouter(store, nil, "u1")
	called := false
	rt.SetListener(func(Key, *Frame) { called = true })

	rt.Dispatch(Key{KindPost, "p1"}, &Frame{Event: "mystery_event"})

	if called {
		t.Error("Listener should not fire for unknown events")
	}
	if store.Stale(cache.PostsKey) {
		t.Error("Unknown event must not touch the cache")
	}
}

func TestListenerFiresAfterDispatch(t *testing.T) {
	store := cache.New()
	seedPosts(store, api.Post{ID: "p1"})
	rt := NewRouter(store, nil, "u1")

	var seen string
	rt.SetListener(func(key Key, frame *Frame) { seen = frame.Event })

	rt.Dispatch(Key{KindPost, "p1"}, eventFrame(t, EventPostUpdated, PostUpdatePayload{PostID: "p1"}))

	if seen != EventPostUpdated {
		t.Errorf("Listener saw %q, want post_updated", seen)
	}
}
