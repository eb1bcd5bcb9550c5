package cache

import (
	"strings"
	"sync"
)

// Well-known cache keys. List keys hold []api.Post style slices, the
// per-resource keys hold single records.
const (
	PostsKey   = "posts"
	FriendsKey = "friends"
)

// PostKey returns the cache key for a single post
func PostKey(postID string) string {
	return "post:" + postID
}

// PostsByUserKey returns the cache key for a user's post list
func PostsByUserKey(userID string) string {
	return "postsByUser:" + userID
}

// UserKey returns the cache key for a user record
func UserKey(userID string) string {
	return "user:" + userID
}

// CommentsKey returns the cache key for a post's comment list
func CommentsKey(postID string) string {
	return "comments:" + postID
}

// ImageDetailsKey returns the cache key for an image record
func ImageDetailsKey(imageID string) string {
	return "imageDetails:" + imageID
}

// ImageCommentsKey returns the cache key for an image's comment list
func ImageCommentsKey(imageID string) string {
	return "imageComments:" + imageID
}

// FriendRequestsKey returns the cache key for a user's incoming requests
func FriendRequestsKey(userID string) string {
	return "friendRequests:" + userID
}

// Updater computes a new value from the prior one. It receives nil when
// the key is absent and must not mutate the prior value in place.
type Updater func(prior interface{}) interface{}

type entry struct {
	value interface{}
	stale bool
}

// Store is a keyed read cache. All mutations go through Write so that
// concurrent push handlers and optimistic mutations never interleave a
// read-modify-write on the same key.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// New creates an empty store
func New() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// Read returns the cached value for key. The second result is false
// when the key is absent. Stale entries are still returned; callers
// that care check Stale.
func (s *Store) Read(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Write applies update to the prior value of key and stores the result.
// A write clears the stale mark.
func (s *Store) Write(key string, update Updater) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var prior interface{}
	if e, ok := s.entries[key]; ok {
		prior = e.value
	}
	s.entries[key] = &entry{value: update(prior)}
}

// Set stores value under key, replacing any prior value
func (s *Store) Set(key string, value interface{}) {
	s.Write(key, func(interface{}) interface{} { return value })
}

// Delete removes key entirely
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Invalidate marks the exact key, and every key nested under it
// ("posts" covers "posts" but not "postsByUser:u1"; "postsByUser"
// covers every per-user list), as stale so the next reader refetches.
func (s *Store) Invalidate(keyOrPrefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k, e := range s.entries {
		if k == keyOrPrefix {
			e.stale = true
			continue
		}
		if strings.HasPrefix(k, keyOrPrefix) && len(k) > len(keyOrPrefix) && k[len(keyOrPrefix)] == ':' {
			e.stale = true
		}
	}
}

// Stale reports whether key is present but marked stale
func (s *Store) Stale(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	return ok && e.stale
}

// Keys returns every key currently present
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	return keys
}

// Clear drops every entry
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*entry)
}
