package optimistic

import (
	"github.com/redvista/social-cli/pkg/api"
	"github.com/redvista/social-cli/pkg/cache"
)

// LikeActions runs like and unlike mutations for the session user.
// Each call patches every cached view of the post, likes count and the
// liked_by membership, before the request leaves the machine.
//
// Rapid toggles on the same post race the server: each call snapshots
// whatever state the previous one left behind, so an interleaved
// failure can roll back to a speculative value. Callers that need
// strict ordering wait for each call to settle.
type LikeActions struct {
	engine *Engine
	userID string

	// remote calls, swappable in tests
	likePost    func(postID string) (*api.Post, error)
	unlikePost  func(postID string) (*api.Post, error)
	likeImage   func(imageID string) (*api.ImageDetails, error)
	unlikeImage func(imageID string) (*api.ImageDetails, error)
}

// NewLikeActions creates like actions for the given session user
func NewLikeActions(store *cache.Store, userID string) *LikeActions {
	return &LikeActions{
		engine:      NewEngine(store),
		userID:      userID,
		likePost:    api.LikePost,
		unlikePost:  api.UnlikePost,
		likeImage:   api.LikeImage,
		unlikeImage: api.UnlikeImage,
	}
}

func (la *LikeActions) postKeys(postID string) []string {
	return []string{
		cache.PostsKey,
		cache.PostKey(postID),
		cache.PostsByUserKey(la.userID),
	}
}

// Toggle likes or unlikes based on the current like state
func (la *LikeActions) Toggle(postID string, currentlyLiked bool) error {
	if currentlyLiked {
		return la.Unlike(postID)
	}
	return la.Like(postID)
}

// Like optimistically likes a post
func (la *LikeActions) Like(postID string) error {
	return la.engine.Run(Mutation{
		Name: "like post",
		Keys: la.postKeys(postID),
		Apply: func(key string, prior interface{}) interface{} {
			return applyPostPatch(prior, postID, func(post api.Post) api.Post {
				if containsID(post.LikedBy, la.userID) {
					return post
				}
				post.LikesCount++
				post.LikedBy = appendID(post.LikedBy, la.userID)
				return post
			})
		},
		Action: func() (interface{}, error) {
			return la.likePost(postID)
		},
		Reconcile: reconcilePost(postID),
	})
}

// Unlike optimistically removes a like
func (la *LikeActions) Unlike(postID string) error {
	return la.engine.Run(Mutation{
		Name: "unlike post",
		Keys: la.postKeys(postID),
		Apply: func(key string, prior interface{}) interface{} {
			return applyPostPatch(prior, postID, func(post api.Post) api.Post {
				if !containsID(post.LikedBy, la.userID) {
					return post
				}
				post.LikesCount--
				post.LikedBy = dropID(post.LikedBy, la.userID)
				return post
			})
		},
		Action: func() (interface{}, error) {
			return la.unlikePost(postID)
		},
		Reconcile: reconcilePost(postID),
	})
}

// LikeImage optimistically likes an image
func (la *LikeActions) LikeImage(imageID string) error {
	return la.engine.Run(Mutation{
		Name: "like image",
		Keys: []string{cache.ImageDetailsKey(imageID)},
		Apply: func(key string, prior interface{}) interface{} {
			return applyImagePatch(prior, func(details api.ImageDetails) api.ImageDetails {
				if containsID(details.LikedBy, la.userID) {
					return details
				}
				details.LikesCount++
				details.LikedBy = appendID(details.LikedBy, la.userID)
				return details
			})
		},
		Action: func() (interface{}, error) {
			return la.likeImage(imageID)
		},
		Reconcile: reconcileImage(imageID),
	})
}

// UnlikeImage optimistically removes an image like
func (la *LikeActions) UnlikeImage(imageID string) error {
	return la.engine.Run(Mutation{
		Name: "unlike image",
		Keys: []string{cache.ImageDetailsKey(imageID)},
		Apply: func(key string, prior interface{}) interface{} {
			return applyImagePatch(prior, func(details api.ImageDetails) api.ImageDetails {
				if !containsID(details.LikedBy, la.userID) {
					return details
				}
				details.LikesCount--
				details.LikedBy = dropID(details.LikedBy, la.userID)
				return details
			})
		},
		Action: func() (interface{}, error) {
			return la.unlikeImage(imageID)
		},
		Reconcile: reconcileImage(imageID),
	})
}

// reconcilePost writes the server's authoritative post over the
// per-post cache entry
func reconcilePost(postID string) func(*cache.Store, interface{}) {
	return func(store *cache.Store, response interface{}) {
		post, ok := response.(*api.Post)
		if !ok || post == nil {
			return
		}
		store.Set(cache.PostKey(postID), *post)
	}
}

func reconcileImage(imageID string) func(*cache.Store, interface{}) {
	return func(store *cache.Store, response interface{}) {
		details, ok := response.(*api.ImageDetails)
		if !ok || details == nil {
			return
		}
		store.Set(cache.ImageDetailsKey(imageID), *details)
	}
}

// applyPostPatch maps fn over the matching post in whatever shape the
// key holds: a list or a single record. Unexpected shapes pass through
// untouched.
func applyPostPatch(prior interface{}, postID string, fn func(api.Post) api.Post) interface{} {
	switch v := prior.(type) {
	case []api.Post:
		out := make([]api.Post, len(v))
		for i, post := range v {
			if post.ID == postID {
				out[i] = fn(post)
			} else {
				out[i] = post
			}
		}
		return out
	case api.Post:
		if v.ID != postID {
			return v
		}
		return fn(v)
	default:
		return prior
	}
}

func applyImagePatch(prior interface{}, fn func(api.ImageDetails) api.ImageDetails) interface{} {
	details, ok := prior.(api.ImageDetails)
	if !ok {
		return prior
	}
	return fn(details)
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func appendID(ids []string, id string) []string {
	return append(append([]string(nil), ids...), id)
}

func dropID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
