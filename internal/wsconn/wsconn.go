// Package wsconn provides a WebSocket client with automatic reconnection.
package wsconn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
)

// State represents the connection state.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
	StateReconnecting State = "reconnecting"
	StateClosed       State = "closed"
)

// Config holds WebSocket client configuration.
type Config struct {
	URL            string
	Name           string // connection name for logging
	Subprotocols   []string
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	MaxReconnects  int // 0 = infinite
	PingInterval   time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxMessageSize int64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(url, name string) Config {
	return Config{
		URL:            url,
		Name:           name,
		InitialBackoff: 1 * time.Second,
		MaxBackoff:     30 * time.Second,
		MaxReconnects:  0, // infinite
		PingInterval:   30 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxMessageSize: 4 << 20, // archive blocks with embedded commands are large
	}
}

// MessageHandler receives every raw message read from the connection.
type MessageHandler func(ctx context.Context, data []byte)

// StateChangeHandler observes state transitions. err is non-nil when the
// transition was caused by a failure.
type StateChangeHandler func(state State, err error)

// Client is a reconnecting WebSocket client.
type Client struct {
	config Config

	conn   *websocket.Conn
	connMu sync.RWMutex

	onMessage     MessageHandler
	onStateChange StateChangeHandler
	onReconnect   func()
	handlerMu     sync.RWMutex

	state   State
	stateMu sync.RWMutex

	closed atomic.Bool
	done   chan struct{}
}

// New creates a new WebSocket client.
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("wsconn: empty url")
	}
	return &Client{
		config: cfg,
		state:  StateDisconnected,
		done:   make(chan struct{}),
	}, nil
}

// OnMessage registers the message handler. Must be set before Connect.
func (c *Client) OnMessage(handler MessageHandler) {
	c.handlerMu.Lock()
	c.onMessage = handler
	c.handlerMu.Unlock()
}

// OnStateChange registers a state transition observer.
func (c *Client) OnStateChange(handler StateChangeHandler) {
	c.handlerMu.Lock()
	c.onStateChange = handler
	c.handlerMu.Unlock()
}

// OnReconnect registers a hook invoked after every successful reconnect,
// so callers can replay subscription handshakes.
func (c *Client) OnReconnect(fn func()) {
	c.handlerMu.Lock()
	c.onReconnect = fn
	c.handlerMu.Unlock()
}

// Connect dials once and starts the read and ping loops.
func (c *Client) Connect(ctx context.Context) error {
	if c.closed.Load() {
		return errors.New("wsconn: client is closed")
	}

	c.setState(StateConnecting, nil)

	if err := c.dial(ctx); err != nil {
		c.setState(StateDisconnected, err)
		return err
	}

	c.setState(StateConnected, nil)

	go c.readLoop(ctx)
	if c.config.PingInterval > 0 {
		go c.pingLoop(ctx)
	}
	return nil
}

// ConnectWithRetry dials with exponential backoff until connected, the
// context is cancelled, or MaxReconnects is exhausted.
func (c *Client) ConnectWithRetry(ctx context.Context) error {
	backoff := c.config.InitialBackoff
	attempts := 0

	for {
		err := c.Connect(ctx)
		if err == nil {
			return nil
		}

		attempts++
		if c.config.MaxReconnects > 0 && attempts >= c.config.MaxReconnects {
			return fmt.Errorf("wsconn %s: giving up after %d attempts: %w", c.config.Name, attempts, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.done:
			return errors.New("wsconn: closed")
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > c.config.MaxBackoff {
			backoff = c.config.MaxBackoff
		}
	}
}

func (c *Client) dial(ctx context.Context) error {
	opts := &websocket.DialOptions{Subprotocols: c.config.Subprotocols}

	conn, _, err := websocket.Dial(ctx, c.config.URL, opts)
	if err != nil {
		return fmt.Errorf("wsconn %s: dial: %w", c.config.Name, err)
	}
	if c.config.MaxMessageSize > 0 {
		conn.SetReadLimit(c.config.MaxMessageSize)
	}

	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()
	return nil
}

// readLoop reads messages until the connection drops, then reconnects.
func (c *Client) readLoop(ctx context.Context) {
	for {
		c.connMu.RLock()
		conn := c.conn
		c.connMu.RUnlock()
		if conn == nil {
			return
		}

		readCtx := ctx
		var cancel context.CancelFunc
		if c.config.ReadTimeout > 0 {
			readCtx, cancel = context.WithTimeout(ctx, c.config.ReadTimeout)
		}
		_, data, err := conn.Read(readCtx)
		if cancel != nil {
			cancel()
		}

		if err != nil {
			if c.closed.Load() || ctx.Err() != nil {
				return
			}
			c.setState(StateReconnecting, err)
			if rerr := c.reconnect(ctx); rerr != nil {
				c.setState(StateDisconnected, rerr)
				return
			}
			// reconnect started a fresh read loop
			return
		}

		c.handlerMu.RLock()
		handler := c.onMessage
		c.handlerMu.RUnlock()
		if handler != nil {
			handler(ctx, data)
		}
	}
}

// reconnect re-dials with backoff and replays the reconnect hook.
func (c *Client) reconnect(ctx context.Context) error {
	backoff := c.config.InitialBackoff
	attempts := 0

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.done:
			return errors.New("wsconn: closed")
		case <-time.After(backoff):
		}

		if err := c.dial(ctx); err == nil {
			c.setState(StateConnected, nil)

			c.handlerMu.RLock()
			hook := c.onReconnect
			c.handlerMu.RUnlock()
			if hook != nil {
				hook()
			}

			go c.readLoop(ctx)
			return nil
		}

		attempts++
		if c.config.MaxReconnects > 0 && attempts >= c.config.MaxReconnects {
			return fmt.Errorf("wsconn %s: reconnect gave up after %d attempts", c.config.Name, attempts)
		}

		backoff *= 2
		if backoff > c.config.MaxBackoff {
			backoff = c.config.MaxBackoff
		}
	}
}

// pingLoop keeps the connection alive.
func (c *Client) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(c.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case <-ticker.C:
			c.connMu.RLock()
			conn := c.conn
			c.connMu.RUnlock()
			if conn == nil {
				continue
			}
			pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			_ = conn.Ping(pingCtx)
			cancel()
		}
	}
}

// Send writes a text message through the WebSocket.
func (c *Client) Send(ctx context.Context, msg []byte) error {
	c.connMu.RLock()
	conn := c.conn
	c.connMu.RUnlock()

	if conn == nil {
		return errors.New("wsconn: not connected")
	}

	if c.config.WriteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.WriteTimeout)
		defer cancel()
	}
	return conn.Write(ctx, websocket.MessageText, msg)
}

// SendJSON marshals v and sends it as a text message.
func (c *Client) SendJSON(ctx context.Context, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("wsconn: marshal: %w", err)
	}
	return c.Send(ctx, data)
}

// State returns the current connection state.
func (c *Client) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

// IsConnected reports whether the connection is currently established.
func (c *Client) IsConnected() bool {
	return c.State() == StateConnected
}

// Close gracefully closes the WebSocket connection. Idempotent.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	close(c.done)
	c.setState(StateClosed, nil)

	c.connMu.Lock()
	conn := c.conn
	c.conn = nil
	c.connMu.Unlock()

	if conn != nil {
		_ = conn.Close(websocket.StatusNormalClosure, "client closing")
	}
	return nil
}

func (c *Client) setState(state State, err error) {
	c.stateMu.Lock()
	c.state = state
	c.stateMu.Unlock()

	c.handlerMu.RLock()
	handler := c.onStateChange
	c.handlerMu.RUnlock()
	if handler != nil {
		handler(state, err)
	}
}
