package ws

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
)

// sendBufferSize bounds the per-client outbound queue. A client that falls
// this far behind the event stream is dropped by the broadcaster.
const sendBufferSize = 256

// Client is one WebSocket connection with its subscription set.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}

	mu         sync.RWMutex
	all        bool
	workspaces map[string]struct{}
	sessions   map[string]struct{}
	alive      bool

	closeOnce sync.Once
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		id:         ulid.Make().String(),
		conn:       conn,
		send:       make(chan []byte, sendBufferSize),
		done:       make(chan struct{}),
		workspaces: make(map[string]struct{}),
		sessions:   make(map[string]struct{}),
		alive:      true,
	}
}

func (c *Client) ID() string { return c.id }

// Matches reports whether a frame for the given workspace/session should be
// delivered to this client. A client with no subscriptions receives nothing.
func (c *Client) Matches(workspaceID, sessionID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.all {
		return true
	}
	if workspaceID != "" {
		if _, ok := c.workspaces[workspaceID]; ok {
			return true
		}
	}
	if sessionID != "" {
		if _, ok := c.sessions[sessionID]; ok {
			return true
		}
	}
	return false
}

// TrySend enqueues a frame without blocking. False means the buffer is full
// and the caller should drop the client.
func (c *Client) TrySend(frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// Close tears the connection down. Safe to call more than once; the write
// pump exits when the connection errors out.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

func (c *Client) subscribe(scope, workspaceID, sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case scope == "all":
		c.all = true
	case workspaceID != "":
		c.workspaces[workspaceID] = struct{}{}
	case sessionID != "":
		c.sessions[sessionID] = struct{}{}
	}
}

func (c *Client) unsubscribe(scope, workspaceID, sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case scope == "all":
		c.all = false
	case workspaceID != "":
		delete(c.workspaces, workspaceID)
	case sessionID != "":
		delete(c.sessions, sessionID)
	}
}

func (c *Client) markAlive() {
	c.mu.Lock()
	c.alive = true
	c.mu.Unlock()
}

// checkAndClearAlive returns whether the client responded since the last
// keepalive tick, and arms the next tick.
func (c *Client) checkAndClearAlive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	was := c.alive
	c.alive = false
	return was
}
