package realtime

import (
	"bytes"
	"encoding/json"

	"github.com/redvista/social-cli/pkg/api"
	apperrors "github.com/redvista/social-cli/pkg/errors"
)

// Event names pushed by the server
const (
	EventPostUpdated     = "post_updated"
	EventPostDeleted     = "post_deleted"
	EventNewPost         = "new_post"
	EventNewComment      = "new_comment"
	EventProfileUpdated  = "profile_updated"
	EventNewNotification = "new_notification"
	EventImageUpdated    = "image_updated"
	EventNewImageComment = "new_image_comment"
)

// Frame is one inbound websocket message. Exactly one of the three
// shapes is populated: an auth ack (Status), a control message (Type,
// ping/pong), or a pushed event (Event + Data).
type Frame struct {
	Event  string          `json:"event"`
	Data   json.RawMessage `json:"data"`
	Status string          `json:"status"`
	Type   string          `json:"type"`
}

// IsAuthAck reports whether the frame is the server's handshake ack
func (f *Frame) IsAuthAck() bool {
	return f.Status == "authenticated"
}

// IsPong reports whether the frame is a heartbeat reply
func (f *Frame) IsPong() bool {
	return f.Type == "pong"
}

// IsPing reports whether the frame is a server-initiated keepalive
func (f *Frame) IsPing() bool {
	return f.Type == "ping"
}

// ParseFrame decodes an inbound message. The server sends JSON frames,
// but some endpoints also send bare "ping"/"pong" text, so those are
// accepted before JSON decoding.
func ParseFrame(data []byte) (*Frame, error) {
	switch string(bytes.TrimSpace(data)) {
	case "ping":
		return &Frame{Type: "ping"}, nil
	case "pong":
		return &Frame{Type: "pong"}, nil
	}

	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, apperrors.ProtocolError("malformed frame", err)
	}
	return &f, nil
}

type authFrame struct {
	Type   string `json:"type"`
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type controlFrame struct {
	Type string `json:"type"`
}

// PostUpdatePayload carries the authoritative like state for one post
type PostUpdatePayload struct {
	PostID     string   `json:"post_id"`
	LikesCount int      `json:"likes_count"`
	LikedBy    []string `json:"liked_by"`
}

// PostDeletedPayload identifies a removed post
type PostDeletedPayload struct {
	PostID string `json:"post_id"`
}

// CommentPayload identifies the post a new comment landed on
type CommentPayload struct {
	PostID string `json:"post_id"`
}

// ProfilePayload carries updated author fields to splice into cached
// posts and user records
type ProfilePayload struct {
	UserID         string `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
}

// ImageUpdatePayload carries the authoritative like state for one image
type ImageUpdatePayload struct {
	ImageID    string   `json:"image_id"`
	LikesCount int      `json:"likes_count"`
	LikedBy    []string `json:"liked_by"`
}

// ImageCommentPayload identifies the image a new comment landed on
type ImageCommentPayload struct {
	ImageID string `json:"image_id"`
}

func decodePayload(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		return apperrors.ProtocolError("event frame has no data", nil)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return apperrors.ProtocolError("malformed event payload", err)
	}
	return nil
}

// decodeNotification is split out because the payload reuses the REST
// Notification shape.
func decodeNotification(data json.RawMessage) (*api.Notification, error) {
	var n api.Notification
	if err := decodePayload(data, &n); err != nil {
		return nil, err
	}
	return &n, nil
}
