package api

// Auth Request/Response Types
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	User        User   `json:"user"`
}

// User is the platform profile record. Relationship fields mirror the
// server's friendship model: relationships maps a user id to one of
// "friend", "request_sent", "request_received" or "none".
type User struct {
	ID             string            `json:"id"`
	Email          string            `json:"email,omitempty"`
	Username       string            `json:"username"`
	Bio            string            `json:"bio,omitempty"`
	ProfilePicture string            `json:"profile_picture,omitempty"`
	CoverPhoto     string            `json:"cover_photo,omitempty"`
	Friends        []string          `json:"friends,omitempty"`
	FriendRequests []string          `json:"friend_requests,omitempty"`
	SentRequests   []string          `json:"sent_requests,omitempty"`
	Relationships  map[string]string `json:"relationships,omitempty"`
	CreatedAt      string            `json:"created_at,omitempty"`
}

// Post carries the author display fields denormalized onto it, which is
// why profile_updated pushes have to patch every cached post list.
type Post struct {
	ID                   string   `json:"_id"`
	Title                string   `json:"title"`
	Content              string   `json:"content"`
	AuthorID             string   `json:"author_id"`
	AuthorUsername       string   `json:"author_username"`
	AuthorProfilePicture string   `json:"author_profile_picture,omitempty"`
	LikesCount           int      `json:"likes_count"`
	LikedBy              []string `json:"liked_by"`
	CommentsCount        int      `json:"comments_count"`
	ImageURL             string   `json:"image_url,omitempty"`
	CreatedAt            string   `json:"created_at"`
	UpdatedAt            string   `json:"updated_at,omitempty"`
}

type Comment struct {
	ID             string `json:"_id"`
	PostID         string `json:"post_id"`
	Content        string `json:"content"`
	AuthorID       string `json:"author_id"`
	AuthorUsername string `json:"author_username"`
	CreatedAt      string `json:"created_at"`
}

type ImageDetails struct {
	ID         string   `json:"_id"`
	URL        string   `json:"url"`
	OwnerID    string   `json:"owner_id"`
	LikesCount int      `json:"likes_count"`
	LikedBy    []string `json:"liked_by"`
	CreatedAt  string   `json:"created_at"`
}

type ImageComment struct {
	ID             string `json:"_id"`
	ImageID        string `json:"image_id"`
	Content        string `json:"content"`
	AuthorID       string `json:"author_id"`
	AuthorUsername string `json:"author_username"`
	CreatedAt      string `json:"created_at"`
}

// Notification types, matching the push payloads byte for byte so the
// merge engine can treat bulk-fetched and pushed entries uniformly.
const (
	NotificationTypeLike           = "like"
	NotificationTypeComment        = "comment"
	NotificationTypeNewFollower    = "new_follower"
	NotificationTypeFriendRequest  = "friend_request"
	NotificationTypeFriendAccepted = "friend_accepted"
	NotificationTypePing           = "ping"
	NotificationTypeImageComment   = "image_comment"
)

type Notification struct {
	ID              string `json:"_id"`
	UserID          string `json:"user_id"`
	EmitterID       string `json:"emitter_id"`
	EmitterUsername string `json:"emitter_username"`
	PostID          string `json:"post_id,omitempty"`
	CommentID       string `json:"comment_id,omitempty"`
	ImageID         string `json:"image_id,omitempty"`
	Type            string `json:"type"`
	Message         string `json:"message"`
	Read            bool   `json:"read"`
	CreatedAt       string `json:"created_at"`
}

type FriendRequest struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
	Bio            string `json:"bio,omitempty"`
	CoverPhoto     string `json:"cover_photo,omitempty"`
}

type RelationshipStatus struct {
	Status string `json:"status"`
}

// MessageResponse is the generic {message} acknowledgment many write
// endpoints return.
type MessageResponse struct {
	Message string `json:"message"`
}

// Error Response
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Detail  string                 `json:"detail,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
