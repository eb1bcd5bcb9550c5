package realtime

import (
	"github.com/redvista/social-cli/pkg/api"
	"github.com/redvista/social-cli/pkg/cache"
	"github.com/redvista/social-cli/pkg/logger"
)

// NotificationSink receives notifications pushed over the session
// channel. Push reports whether the notification was new; duplicates
// are dropped.
type NotificationSink interface {
	Push(n api.Notification) bool
}

// EventListener observes every dispatched frame after the cache has
// been updated. Used by watch commands to print activity.
type EventListener func(key Key, frame *Frame)

// Router applies pushed events to the local cache. Every handler
// verifies that the event's resource id matches the channel it arrived
// on before touching shared cache entries; mismatched frames are
// dropped. That keeps a frame routed to the wrong channel, or a stale
// frame from a previous subscription, from corrupting another
// resource's state.
type Router struct {
	store    *cache.Store
	sink     NotificationSink
	userID   string
	listener EventListener
}

// NewRouter creates a router writing into store. sink may be nil when
// no one consumes notifications. userID is the session user, needed to
// patch relationship state on friendship pushes.
func NewRouter(store *cache.Store, sink NotificationSink, userID string) *Router {
	return &Router{store: store, sink: sink, userID: userID}
}

// SetListener installs an observer for dispatched frames
func (rt *Router) SetListener(fn EventListener) {
	rt.listener = fn
}

// Dispatch routes one event frame to its handler. Unknown events are
// logged and dropped.
func (rt *Router) Dispatch(key Key, frame *Frame) {
	handled := true
	switch frame.Event {
	case EventPostUpdated:
		handled = rt.handlePostUpdated(key, frame)
	case EventPostDeleted:
		handled = rt.handlePostDeleted(key, frame)
	case EventNewPost:
		handled = rt.handleNewPost(key, frame)
	case EventNewComment:
		handled = rt.handleNewComment(key, frame)
	case EventProfileUpdated:
		handled = rt.handleProfileUpdated(key, frame)
	case EventNewNotification:
		handled = rt.handleNewNotification(key, frame)
	case EventImageUpdated:
		handled = rt.handleImageUpdated(key, frame)
	case EventNewImageComment:
		handled = rt.handleNewImageComment(key, frame)
	default:
		logger.Debug("Dropping unknown event", "channel", key.String(), "event", frame.Event)
		handled = false
	}

	if handled && rt.listener != nil {
		rt.listener(key, frame)
	}
}

func (rt *Router) handlePostUpdated(key Key, frame *Frame) bool {
	var p PostUpdatePayload
	if err := decodePayload(frame.Data, &p); err != nil {
		logger.Warn("Dropping post_updated", "channel", key.String(), "error", err)
		return false
	}
	if key.Kind != KindPost || p.PostID != key.ResourceID {
		logger.Debug("Dropping post_updated for foreign resource",
			"channel", key.String(), "post_id", p.PostID)
		return false
	}

	patch := func(post api.Post) api.Post {
		post.LikesCount = p.LikesCount
		post.LikedBy = p.LikedBy
		return post
	}
	rt.store.Write(cache.PostsKey, func(prior interface{}) interface{} {
		return patchPostList(prior, p.PostID, patch)
	})
	rt.store.Write(cache.PostKey(p.PostID), func(prior interface{}) interface{} {
		return patchPost(prior, p.PostID, patch)
	})
	rt.store.Invalidate("postsByUser")
	return true
}

func (rt *Router) handlePostDeleted(key Key, frame *Frame) bool {
	var p PostDeletedPayload
	if err := decodePayload(frame.Data, &p); err != nil {
		logger.Warn("Dropping post_deleted", "channel", key.String(), "error", err)
		return false
	}
	if key.Kind != KindPost || p.PostID != key.ResourceID {
		logger.Debug("Dropping post_deleted for foreign resource",
			"channel", key.String(), "post_id", p.PostID)
		return false
	}

	rt.store.Write(cache.PostsKey, func(prior interface{}) interface{} {
		return removeFromPostList(prior, p.PostID)
	})
	rt.store.Delete(cache.PostKey(p.PostID))
	rt.store.Invalidate("postsByUser")
	return true
}

func (rt *Router) handleNewPost(key Key, frame *Frame) bool {
	var post api.Post
	if err := decodePayload(frame.Data, &post); err != nil {
		logger.Warn("Dropping new_post", "channel", key.String(), "error", err)
		return false
	}
	if post.ID == "" {
		logger.Debug("Dropping new_post without id", "channel", key.String())
		return false
	}

	// insert-if-absent keeps redelivered pushes idempotent
	rt.store.Write(cache.PostsKey, func(prior interface{}) interface{} {
		return prependPostIfAbsent(prior, post)
	})
	if post.AuthorID != "" {
		rt.store.Write(cache.PostsByUserKey(post.AuthorID), func(prior interface{}) interface{} {
			return prependPostIfAbsent(prior, post)
		})
	}
	rt.store.Set(cache.PostKey(post.ID), post)
	return true
}

func (rt *Router) handleNewComment(key Key, frame *Frame) bool {
	var p CommentPayload
	if err := decodePayload(frame.Data, &p); err != nil {
		logger.Warn("Dropping new_comment", "channel", key.String(), "error", err)
		return false
	}
	if key.Kind != KindPost || p.PostID != key.ResourceID {
		logger.Debug("Dropping new_comment for foreign resource",
			"channel", key.String(), "post_id", p.PostID)
		return false
	}

	rt.store.Write(cache.PostsKey, func(prior interface{}) interface{} {
		return patchPostList(prior, p.PostID, func(post api.Post) api.Post {
			post.CommentsCount++
			return post
		})
	})
	rt.store.Invalidate(cache.CommentsKey(p.PostID))
	rt.store.Invalidate(cache.PostKey(p.PostID))
	return true
}

func (rt *Router) handleProfileUpdated(key Key, frame *Frame) bool {
	var p ProfilePayload
	if err := decodePayload(frame.Data, &p); err != nil {
		logger.Warn("Dropping profile_updated", "channel", key.String(), "error", err)
		return false
	}
	if p.UserID == "" {
		logger.Debug("Dropping profile_updated without id", "channel", key.String())
		return false
	}

	patch := func(post api.Post) api.Post {
		if post.AuthorID != p.UserID {
			return post
		}
		post.AuthorUsername = p.Username
		post.AuthorProfilePicture = p.ProfilePicture
		return post
	}
	rt.store.Write(cache.PostsKey, func(prior interface{}) interface{} {
		return mapPostList(prior, patch)
	})
	rt.store.Write(cache.PostsByUserKey(p.UserID), func(prior interface{}) interface{} {
		return mapPostList(prior, patch)
	})
	rt.store.Write(cache.UserKey(p.UserID), func(prior interface{}) interface{} {
		user, ok := prior.(api.User)
		if !ok {
			return prior
		}
		user.Username = p.Username
		user.ProfilePicture = p.ProfilePicture
		return user
	})
	return true
}

func (rt *Router) handleNewNotification(key Key, frame *Frame) bool {
	if key.Kind != KindNotifications {
		logger.Debug("Dropping new_notification off the session channel", "channel", key.String())
		return false
	}
	n, err := decodeNotification(frame.Data)
	if err != nil {
		logger.Warn("Dropping new_notification", "channel", key.String(), "error", err)
		return false
	}
	if n.Type == "" {
		logger.Debug("Dropping untyped notification", "channel", key.String())
		return false
	}

	if rt.sink != nil {
		rt.sink.Push(*n)
	}

	switch n.Type {
	case api.NotificationTypeFriendRequest:
		rt.applyFriendRequest(n.EmitterID)
	case api.NotificationTypeFriendAccepted:
		rt.applyFriendAccepted(n.EmitterID)
	}
	return true
}

// applyFriendRequest records an incoming request on the session user's
// cached record so relationship lookups reflect it without a refetch.
func (rt *Router) applyFriendRequest(emitterID string) {
	if emitterID == "" || rt.userID == "" {
		return
	}
	rt.store.Write(cache.UserKey(rt.userID), func(prior interface{}) interface{} {
		user, ok := prior.(api.User)
		if !ok {
			return prior
		}
		user.FriendRequests = addID(user.FriendRequests, emitterID)
		user.Relationships = setRelationship(user.Relationships, emitterID, "request_received")
		return user
	})
	rt.store.Invalidate(cache.FriendRequestsKey(rt.userID))
}

// applyFriendAccepted promotes a sent request to a friendship
func (rt *Router) applyFriendAccepted(emitterID string) {
	if emitterID == "" || rt.userID == "" {
		return
	}
	rt.store.Write(cache.UserKey(rt.userID), func(prior interface{}) interface{} {
		user, ok := prior.(api.User)
		if !ok {
			return prior
		}
		user.Friends = addID(user.Friends, emitterID)
		user.SentRequests = removeID(user.SentRequests, emitterID)
		user.Relationships = setRelationship(user.Relationships, emitterID, "friend")
		return user
	})
	rt.store.Invalidate(cache.FriendsKey)
}

func (rt *Router) handleImageUpdated(key Key, frame *Frame) bool {
	var p ImageUpdatePayload
	if err := decodePayload(frame.Data, &p); err != nil {
		logger.Warn("Dropping image_updated", "channel", key.String(), "error", err)
		return false
	}
	if key.Kind != KindImage || p.ImageID != key.ResourceID {
		logger.Debug("Dropping image_updated for foreign resource",
			"channel", key.String(), "image_id", p.ImageID)
		return false
	}

	rt.store.Write(cache.ImageDetailsKey(p.ImageID), func(prior interface{}) interface{} {
		details, ok := prior.(api.ImageDetails)
		if !ok {
			return prior
		}
		details.LikesCount = p.LikesCount
		details.LikedBy = p.LikedBy
		return details
	})
	return true
}

func (rt *Router) handleNewImageComment(key Key, frame *Frame) bool {
	var p ImageCommentPayload
	if err := decodePayload(frame.Data, &p); err != nil {
		logger.Warn("Dropping new_image_comment", "channel", key.String(), "error", err)
		return false
	}
	if key.Kind != KindImage || p.ImageID != key.ResourceID {
		logger.Debug("Dropping new_image_comment for foreign resource",
			"channel", key.String(), "image_id", p.ImageID)
		return false
	}

	rt.store.Invalidate(cache.ImageDetailsKey(p.ImageID))
	rt.store.Invalidate(cache.ImageCommentsKey(p.ImageID))
	return true
}

// patchPostList maps fn over the post with the given id in a cached
// list. Values of unexpected type are returned unchanged.
func patchPostList(prior interface{}, postID string, fn func(api.Post) api.Post) interface{} {
	list, ok := prior.([]api.Post)
	if !ok {
		return prior
	}
	out := make([]api.Post, len(list))
	for i, post := range list {
		if post.ID == postID {
			out[i] = fn(post)
		} else {
			out[i] = post
		}
	}
	return out
}

// mapPostList maps fn over every post in a cached list
func mapPostList(prior interface{}, fn func(api.Post) api.Post) interface{} {
	list, ok := prior.([]api.Post)
	if !ok {
		return prior
	}
	out := make([]api.Post, len(list))
	for i, post := range list {
		out[i] = fn(post)
	}
	return out
}

// patchPost applies fn to a cached single post
func patchPost(prior interface{}, postID string, fn func(api.Post) api.Post) interface{} {
	post, ok := prior.(api.Post)
	if !ok || post.ID != postID {
		return prior
	}
	return fn(post)
}

func removeFromPostList(prior interface{}, postID string) interface{} {
	list, ok := prior.([]api.Post)
	if !ok {
		return prior
	}
	out := make([]api.Post, 0, len(list))
	for _, post := range list {
		if post.ID != postID {
			out = append(out, post)
		}
	}
	return out
}

func prependPostIfAbsent(prior interface{}, post api.Post) interface{} {
	list, ok := prior.([]api.Post)
	if !ok {
		if prior == nil {
			return []api.Post{post}
		}
		return prior
	}
	for _, existing := range list {
		if existing.ID == post.ID {
			return list
		}
	}
	return append([]api.Post{post}, list...)
}

func addID(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(append([]string(nil), ids...), id)
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func setRelationship(rels map[string]string, userID, status string) map[string]string {
	out := make(map[string]string, len(rels)+1)
	for k, v := range rels {
		out[k] = v
	}
	out[userID] = status
	return out
}
