package realtime

import (
	"fmt"
	"sync"
	"time"
)

// Kind names the three channel families the server exposes
type Kind string

const (
	KindNotifications Kind = "notifications"
	KindPost          Kind = "post"
	KindImage         Kind = "image"
)

// Key identifies one logical channel. The registry keeps at most one
// live channel per key.
type Key struct {
	Kind       Kind
	ResourceID string
}

func (k Key) String() string {
	return string(k.Kind) + "/" + k.ResourceID
}

// path returns the websocket request path for this channel
func (k Key) path() string {
	switch k.Kind {
	case KindNotifications:
		return "/ws/notifications/" + k.ResourceID
	case KindImage:
		return "/ws/images/" + k.ResourceID
	default:
		return "/ws/" + k.ResourceID
	}
}

// State is a channel's position in its lifecycle
type State int

const (
	StateConnecting State = iota
	StateAuthenticating
	StateActive
	StateClosing
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateAuthenticating:
		return "authenticating"
	case StateActive:
		return "active"
	case StateClosing:
		return "closing"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// channel is the registry's record of one live subscription
type channel struct {
	key Key

	mu        sync.Mutex
	conn      Conn
	state     State
	attempts  int
	hbStop    chan struct{}
	lastPong  time.Time
	closeOnce sync.Once
	done      chan struct{}
}

func newChannel(key Key) *channel {
	return &channel{
		key:   key,
		state: StateConnecting,
		done:  make(chan struct{}),
	}
}

func (c *channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// setState transitions the channel and stops the heartbeat whenever it
// leaves the active state.
func (c *channel) setState(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateActive && s != StateActive {
		c.stopHeartbeatLocked()
	}
	c.state = s
}

func (c *channel) setConn(conn Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn = conn
}

func (c *channel) getConn() Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}

// live reports whether the channel is connecting, authenticating, or
// active. Open treats a live channel as already satisfied.
func (c *channel) live() bool {
	switch c.State() {
	case StateConnecting, StateAuthenticating, StateActive:
		return true
	}
	return false
}

func (c *channel) closing() bool {
	return c.State() == StateClosing
}

// bumpAttempts increments the reconnect counter and returns the new
// 1-based attempt number.
func (c *channel) bumpAttempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempts++
	return c.attempts
}

func (c *channel) attemptCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

// resetAttempts clears the counter after a successful auth ack so each
// outage gets the full retry budget.
func (c *channel) resetAttempts() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attempts = 0
}

// startHeartbeat arms a fresh heartbeat stop channel and returns it.
// Returns nil when the channel is no longer active.
func (c *channel) startHeartbeat() chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateActive {
		return nil
	}
	c.stopHeartbeatLocked()
	c.hbStop = make(chan struct{})
	return c.hbStop
}

func (c *channel) stopHeartbeatLocked() {
	if c.hbStop != nil {
		close(c.hbStop)
		c.hbStop = nil
	}
}

func (c *channel) touchPong() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastPong = time.Now()
}

// shutdown closes the done channel exactly once
func (c *channel) shutdown() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
