// Package socket is a thin event-oriented client for the telemetry server.
// Messages are JSON envelopes carried in websocket text frames.
package socket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	vd "vehicle_dashboard"
	"vehicle_dashboard/internal/logger"
)

const (
	writeWait   = 10 * time.Second
	pongWait    = 60 * time.Second
	pingPeriod  = (pongWait * 9) / 10
	dialTimeout = 10 * time.Second
	maxMsgSize  = 1 << 16
)

// ErrNotConnected is returned by Emit while the channel is down.
var ErrNotConnected = errors.New("socket: not connected")

// Client keeps one connection to the telemetry server open and dispatches
// inbound events to registered handlers.
type Client struct {
	url    string
	log    *logger.Logger
	dialer *websocket.Dialer
	header http.Header

	hmu      sync.RWMutex
	handlers map[string]Handler

	// cmu guards conn and serializes writes on it.
	cmu       sync.Mutex
	conn      *websocket.Conn
	connected bool
}

// NewClient returns a client for the websocket endpoint at url. Nothing is
// dialed until Run.
func NewClient(url string, log *logger.Logger) *Client {
	return &Client{
		url:      url,
		log:      logger.OrNop(log),
		dialer:   &websocket.Dialer{HandshakeTimeout: dialTimeout, Proxy: http.ProxyFromEnvironment},
		handlers: make(map[string]Handler),
	}
}

// On registers the handler for event, replacing any previous one.
func (c *Client) On(event string, h Handler) {
	c.hmu.Lock()
	defer c.hmu.Unlock()
	c.handlers[event] = h
}

// Emit sends event with an optional payload. It does not wait for any reply.
func (c *Client) Emit(event string, payload interface{}) error {
	msg, err := encode(event, payload)
	if err != nil {
		return err
	}

	c.cmu.Lock()
	defer c.cmu.Unlock()
	if c.conn == nil {
		return ErrNotConnected
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		return errors.Wrapf(err, "emit %q", event)
	}
	return nil
}

// isConnected reports whether the channel is currently up.
func (c *Client) isConnected() bool {
	c.cmu.Lock()
	defer c.cmu.Unlock()
	return c.conn != nil && c.connected
}

// Run connects and keeps reconnecting until ctx is done.
func (c *Client) Run(ctx context.Context) error {
	err := retry(ctx, c, c.log)
	if cerr := c.Close(); cerr != nil {
		c.log.Warnw("socket_close_failed", "err", cerr)
	}
	return err
}

func (c *Client) Name() string { return c.url }

// Open dials the server.
func (c *Client) Open() error {
	conn, _, err := c.dialer.Dial(c.url, c.header)
	if err != nil {
		return errors.Wrapf(err, "dial %s", c.url)
	}
	conn.SetReadLimit(maxMsgSize)

	c.cmu.Lock()
	c.conn = conn
	c.cmu.Unlock()
	return nil
}

// Close drops the connection and fires "disconnect" if it had been started.
func (c *Client) Close() error {
	c.cmu.Lock()
	conn, wasConnected := c.conn, c.connected
	c.conn, c.connected = nil, false
	c.cmu.Unlock()

	if conn == nil {
		return nil
	}
	err := conn.Close()
	if wasConnected {
		c.log.Infow("socket_disconnected", "url", c.url)
		c.fire(vd.EventDisconnect, nil)
	}
	return err
}

// Start fires "connect" and reads until the connection fails or ctx is done.
func (c *Client) Start(ctx context.Context) error {
	c.cmu.Lock()
	conn := c.conn
	if conn == nil {
		c.cmu.Unlock()
		return ErrNotConnected
	}
	c.connected = true
	c.cmu.Unlock()

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go c.keepalive(ctx, conn, done)

	c.log.Infow("socket_connected", "url", c.url)
	c.fire(vd.EventConnect, nil)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.Wrap(err, "read")
		}
		env, err := decode(msg)
		if err != nil {
			c.log.Warnw("socket_bad_message", "err", err)
			continue
		}
		c.fire(env.Event, env.Data)
	}
}

// keepalive pings the server and unblocks the reader when ctx ends.
func (c *Client) keepalive(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			_ = conn.Close()
			return
		case <-ping.C:
			c.cmu.Lock()
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := conn.WriteMessage(websocket.PingMessage, nil)
			c.cmu.Unlock()
			if err != nil {
				c.log.Infow("socket_ping_failed", "err", err)
				_ = conn.Close()
				return
			}
		}
	}
}

func (c *Client) fire(event string, data json.RawMessage) {
	c.hmu.RLock()
	h, ok := c.handlers[event]
	c.hmu.RUnlock()
	if !ok {
		c.log.Debugw("socket_unhandled_event", "event", event)
		return
	}
	h(data)
}
