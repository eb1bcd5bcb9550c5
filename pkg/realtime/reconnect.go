package realtime

import (
	"time"

	"github.com/gorilla/websocket"
)

// Policy decides whether and when a dropped channel reopens. The
// notification channel backs off linearly since the session usually
// outlives brief server restarts; per-resource channels back off
// exponentially because many of them can drop at once.
type Policy struct {
	MaxAttempts int

	SessionBaseDelay time.Duration
	SessionDelayCap  time.Duration

	ResourceBaseDelay time.Duration
	ResourceDelayCap  time.Duration
}

// DefaultPolicy returns the backoff schedule used in production
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:       5,
		SessionBaseDelay:  3 * time.Second,
		SessionDelayCap:   15 * time.Second,
		ResourceBaseDelay: 1 * time.Second,
		ResourceDelayCap:  30 * time.Second,
	}
}

// Intentional reports whether a close code means the server ended the
// channel on purpose: normal closure, or policy violation after a
// rejected handshake. Intentional closes never reconnect.
func Intentional(code int) bool {
	return code == websocket.CloseNormalClosure || code == websocket.ClosePolicyViolation
}

// ShouldReconnect reports whether a channel that closed with code after
// the given number of completed attempts gets another try.
func (p Policy) ShouldReconnect(code, attempts int) bool {
	if Intentional(code) {
		return false
	}
	return attempts < p.MaxAttempts
}

// Delay returns the wait before reconnect attempt number attempt
// (1-based). Both curves are monotonically non-decreasing and capped.
func (p Policy) Delay(kind Kind, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	if kind == KindNotifications {
		d := p.SessionBaseDelay * time.Duration(attempt)
		if d > p.SessionDelayCap {
			return p.SessionDelayCap
		}
		return d
	}

	d := p.ResourceBaseDelay << uint(attempt-1)
	if d <= 0 || d > p.ResourceDelayCap {
		return p.ResourceDelayCap
	}
	return d
}
