package realtime

import (
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redvista/social-cli/pkg/config"
	"github.com/redvista/social-cli/pkg/credentials"
	apperrors "github.com/redvista/social-cli/pkg/errors"
	"github.com/redvista/social-cli/pkg/logger"
)

// Conn is the transport surface the registry needs. *websocket.Conn
// satisfies it; tests substitute scripted fakes.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Dialer opens a websocket connection to a fully-formed URL
type Dialer interface {
	Dial(rawURL string) (Conn, error)
}

type gorillaDialer struct {
	handshakeTimeout time.Duration
}

func (d gorillaDialer) Dial(rawURL string) (Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: d.handshakeTimeout,
	}
	conn, _, err := dialer.Dial(rawURL, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Config holds the registry tunables
type Config struct {
	Host              string
	UseTLS            bool
	HeartbeatInterval time.Duration
	HandshakeTimeout  time.Duration
	Policy            Policy
}

// ConfigFromSettings builds a Config from the loaded configuration file
func ConfigFromSettings() Config {
	cfg := Config{
		Host:              config.GetString("realtime.host"),
		UseTLS:            config.GetBool("realtime.use_tls"),
		HeartbeatInterval: time.Duration(config.GetInt("realtime.heartbeat_interval")) * time.Second,
		HandshakeTimeout:  10 * time.Second,
		Policy:            DefaultPolicy(),
	}
	if max := config.GetInt("realtime.max_reconnect_attempts"); max > 0 {
		cfg.Policy.MaxAttempts = max
	}
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = 20 * time.Second
	}
	return cfg
}

// Registry owns every live channel for the session. It deduplicates
// opens per key, runs the handshake and heartbeat, and reopens dropped
// channels per its reconnect policy.
type Registry struct {
	cfg    Config
	dialer Dialer
	router *Router

	mu       sync.Mutex
	channels map[Key]*channel
}

// NewRegistry creates a registry. A nil dialer gets the gorilla
// websocket dialer.
func NewRegistry(cfg Config, dialer Dialer, router *Router) *Registry {
	if dialer == nil {
		dialer = gorillaDialer{handshakeTimeout: cfg.HandshakeTimeout}
	}
	return &Registry{
		cfg:      cfg,
		dialer:   dialer,
		router:   router,
		channels: make(map[Key]*channel),
	}
}

// Open subscribes to a channel and returns a disposer that releases the
// subscription. Opening a key that is already live is a no-op beyond
// returning a fresh disposer. The disposer is safe to call more than
// once; only the first call closes the channel.
func (r *Registry) Open(kind Kind, resourceID string, creds *credentials.Credentials) (func(), error) {
	if resourceID == "" {
		return nil, apperrors.ChannelError("channel resource id is empty", nil)
	}
	key := Key{Kind: kind, ResourceID: resourceID}

	r.mu.Lock()
	if existing, ok := r.channels[key]; ok {
		if existing.live() {
			r.mu.Unlock()
			logger.Debug("Channel already open", "channel", key.String())
			return r.disposer(key), nil
		}
		// stale failed/closing record, replace it
		delete(r.channels, key)
	}
	ch := newChannel(key)
	r.channels[key] = ch
	r.mu.Unlock()

	if err := r.connect(ch, creds); err != nil {
		r.remove(ch)
		return nil, err
	}
	return r.disposer(key), nil
}

func (r *Registry) disposer(key Key) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			r.Close(key.Kind, key.ResourceID)
		})
	}
}

// Close tears down a channel without reconnecting. Closing an unknown
// channel is a no-op.
func (r *Registry) Close(kind Kind, resourceID string) {
	key := Key{Kind: kind, ResourceID: resourceID}

	r.mu.Lock()
	ch, ok := r.channels[key]
	if ok {
		delete(r.channels, key)
	}
	r.mu.Unlock()
	if !ok {
		return
	}

	logger.Debug("Closing channel", "channel", key.String())
	ch.setState(StateClosing)
	ch.shutdown()
	if conn := ch.getConn(); conn != nil {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "subscription disposed")
		_ = conn.WriteMessage(websocket.CloseMessage, msg)
		_ = conn.Close()
	}
}

// CloseAll tears down every channel, used on logout and shutdown
func (r *Registry) CloseAll() {
	r.mu.Lock()
	keys := make([]Key, 0, len(r.channels))
	for k := range r.channels {
		keys = append(keys, k)
	}
	r.mu.Unlock()

	for _, k := range keys {
		r.Close(k.Kind, k.ResourceID)
	}
}

// State reports the lifecycle state of a channel. The second result is
// false when no channel exists for the key.
func (r *Registry) State(kind Kind, resourceID string) (State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, ok := r.channels[Key{Kind: kind, ResourceID: resourceID}]
	if !ok {
		return 0, false
	}
	return ch.State(), true
}

func (r *Registry) remove(ch *channel) {
	r.mu.Lock()
	if current, ok := r.channels[ch.key]; ok && current == ch {
		delete(r.channels, ch.key)
	}
	r.mu.Unlock()
}

func (r *Registry) channelURL(key Key) string {
	scheme := "ws"
	if r.cfg.UseTLS {
		scheme = "wss"
	}
	u := url.URL{Scheme: scheme, Host: r.cfg.Host, Path: key.path()}
	return u.String()
}

// connect dials the channel's endpoint, sends the auth frame, and
// starts the read loop. The channel stays in authenticating state until
// the server acks.
func (r *Registry) connect(ch *channel, creds *credentials.Credentials) error {
	rawURL := r.channelURL(ch.key)
	logger.Debug("Dialing channel", "channel", ch.key.String(), "url", rawURL)

	ch.setState(StateConnecting)
	conn, err := r.dialer.Dial(rawURL)
	if err != nil {
		return apperrors.ChannelError("failed to connect to "+ch.key.String(), err)
	}
	ch.setConn(conn)
	ch.setState(StateAuthenticating)

	auth, err := json.Marshal(authFrame{
		Type:   "auth",
		Token:  creds.AccessToken,
		UserID: creds.UserID,
	})
	if err != nil {
		_ = conn.Close()
		return apperrors.ChannelError("failed to encode auth frame", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, auth); err != nil {
		_ = conn.Close()
		return apperrors.ChannelError("failed to send auth frame", err)
	}

	go r.readLoop(ch, conn, creds)
	return nil
}

// readLoop drains one connection. It exits when the connection drops,
// handing off to handleDisconnect unless the close was requested.
func (r *Registry) readLoop(ch *channel, conn Conn, creds *credentials.Credentials) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ch.closing() {
				return
			}
			r.handleDisconnect(ch, creds, closeCode(err))
			return
		}

		frame, perr := ParseFrame(data)
		if perr != nil {
			logger.Warn("Dropping malformed frame", "channel", ch.key.String(), "error", perr)
			continue
		}

		switch {
		case frame.IsAuthAck():
			logger.Debug("Channel authenticated", "channel", ch.key.String())
			ch.setState(StateActive)
			ch.resetAttempts()
			if stop := ch.startHeartbeat(); stop != nil {
				go r.heartbeat(ch, conn, stop)
			}
		case frame.IsPong():
			ch.touchPong()
		case frame.IsPing():
			pong, _ := json.Marshal(controlFrame{Type: "pong"})
			if err := conn.WriteMessage(websocket.TextMessage, pong); err != nil {
				logger.Warn("Failed to answer ping", "channel", ch.key.String(), "error", err)
			}
		default:
			if ch.State() != StateActive {
				// events before the auth ack are dropped, not buffered
				logger.Debug("Dropping pre-ack frame", "channel", ch.key.String(), "event", frame.Event)
				continue
			}
			if r.router != nil {
				r.router.Dispatch(ch.key, frame)
			}
		}
	}
}

// heartbeat sends a ping every interval while the channel stays active
func (r *Registry) heartbeat(ch *channel, conn Conn, stop chan struct{}) {
	ticker := time.NewTicker(r.cfg.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ping, _ := json.Marshal(controlFrame{Type: "ping"})
			if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				logger.Debug("Heartbeat write failed", "channel", ch.key.String(), "error", err)
				return
			}
		case <-stop:
			return
		case <-ch.done:
			return
		}
	}
}

// handleDisconnect decides the fate of a dropped channel: give up on an
// intentional close, mark failed when the retry budget is spent, or
// schedule a redial after the policy delay.
func (r *Registry) handleDisconnect(ch *channel, creds *credentials.Credentials, code int) {
	if Intentional(code) {
		logger.Info("Channel closed by server", "channel", ch.key.String(), "code", code)
		ch.setState(StateClosing)
		ch.shutdown()
		r.remove(ch)
		return
	}

	if !r.cfg.Policy.ShouldReconnect(code, ch.attemptCount()) {
		logger.Error("Channel failed, retry budget exhausted",
			"channel", ch.key.String(), "attempts", ch.attemptCount())
		ch.setState(StateFailed)
		ch.shutdown()
		return
	}

	attempt := ch.bumpAttempts()
	delay := r.cfg.Policy.Delay(ch.key.Kind, attempt)
	logger.Warn("Channel dropped, reconnecting",
		"channel", ch.key.String(), "code", code, "attempt", attempt, "delay", delay)
	ch.setState(StateConnecting)

	go func() {
		select {
		case <-time.After(delay):
		case <-ch.done:
			return
		}
		if ch.closing() {
			return
		}
		r.redial(ch, creds)
	}()
}

// redial re-runs the connect sequence. A dial failure counts against
// the same retry budget as a dropped connection.
func (r *Registry) redial(ch *channel, creds *credentials.Credentials) {
	if err := r.connect(ch, creds); err != nil {
		logger.Debug("Redial failed", "channel", ch.key.String(), "error", err)
		r.handleDisconnect(ch, creds, websocket.CloseAbnormalClosure)
	}
}

// closeCode extracts the websocket close code from a read error.
// Non-close errors (resets, timeouts) count as abnormal closure.
func closeCode(err error) int {
	if ce, ok := err.(*websocket.CloseError); ok {
		return ce.Code
	}
	return websocket.CloseAbnormalClosure
}
