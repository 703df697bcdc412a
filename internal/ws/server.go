// Package ws exposes the live event feed over a WebSocket endpoint. Clients
// authenticate with the shared API token, then manage a subscription set
// (everything, single workspaces, or single sessions) that filters the frames
// the broadcaster pushes at them.
package ws

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/devtrail/devtrail/internal/broadcast"
)

// closeUnauthorized is the application close code sent when the token is
// missing or wrong. The connection must be upgraded first so the client can
// observe the code.
const closeUnauthorized = 4401

const writeWait = 10 * time.Second

// clientFrame is any message a client sends.
type clientFrame struct {
	Type        string `json:"type"`
	Scope       string `json:"scope,omitempty"`
	WorkspaceID string `json:"workspace_id,omitempty"`
	SessionID   string `json:"session_id,omitempty"`
}

type ackFrame struct {
	Type        string `json:"type"`
	Scope       string `json:"scope,omitempty"`
	WorkspaceID string `json:"workspace_id,omitempty"`
	SessionID   string `json:"session_id,omitempty"`
}

type errorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

var pingFrame = []byte(`{"type":"ping"}`)

// Server owns the /ws endpoint and the keepalive loop.
type Server struct {
	hub          *broadcast.Broadcaster
	apiKey       string
	logger       *zap.Logger
	pingInterval time.Duration
	pongTimeout  time.Duration
	upgrader     websocket.Upgrader

	mu      sync.Mutex
	clients map[string]*Client
}

func NewServer(hub *broadcast.Broadcaster, apiKey string, pingInterval, pongTimeout time.Duration, logger *zap.Logger) *Server {
	return &Server{
		hub:          hub,
		apiKey:       apiKey,
		logger:       logger,
		pingInterval: pingInterval,
		pongTimeout:  pongTimeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The dashboard is served from arbitrary local origins.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[string]*Client),
	}
}

// Handle upgrades the connection and runs the read loop until the client
// disconnects. Bad tokens are rejected after the upgrade with close code
// 4401 so browser clients can distinguish auth failures from network errors.
func (s *Server) Handle(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	if !s.authorized(c) {
		deadline := time.Now().Add(writeWait)
		msg := websocket.FormatCloseMessage(closeUnauthorized, "invalid token")
		_ = conn.WriteControl(websocket.CloseMessage, msg, deadline)
		conn.Close()
		return nil
	}

	client := newClient(conn)
	s.register(client)
	s.logger.Info("ws client connected", zap.String("client_id", client.ID()))

	go s.writePump(client)
	s.readPump(client)
	return nil
}

func (s *Server) authorized(c echo.Context) bool {
	token := c.QueryParam("token")
	if token == "" {
		auth := c.Request().Header.Get(echo.HeaderAuthorization)
		const prefix = "Bearer "
		if len(auth) > len(prefix) {
			token = auth[len(prefix):]
		}
	}
	if token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.apiKey)) == 1
}

func (s *Server) register(client *Client) {
	s.mu.Lock()
	s.clients[client.ID()] = client
	s.mu.Unlock()
	s.hub.Register(client)
}

func (s *Server) remove(client *Client) {
	s.mu.Lock()
	delete(s.clients, client.ID())
	s.mu.Unlock()
	s.hub.Unregister(client.ID())
	client.Close()
}

// readPump consumes client frames until the connection drops. Any inbound
// frame counts as liveness.
func (s *Server) readPump(client *Client) {
	defer func() {
		s.remove(client)
		s.logger.Info("ws client disconnected", zap.String("client_id", client.ID()))
	}()

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			return
		}
		client.markAlive()

		var frame clientFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			s.sendError(client, "malformed frame")
			continue
		}
		s.handleFrame(client, frame)
	}
}

func (s *Server) handleFrame(client *Client, frame clientFrame) {
	switch frame.Type {
	case "subscribe":
		if !validScope(frame) {
			s.sendError(client, "subscribe requires scope \"all\", workspace_id, or session_id")
			return
		}
		client.subscribe(frame.Scope, frame.WorkspaceID, frame.SessionID)
		s.sendAck(client, "subscribed", frame)
	case "unsubscribe":
		if !validScope(frame) {
			s.sendError(client, "unsubscribe requires scope \"all\", workspace_id, or session_id")
			return
		}
		client.unsubscribe(frame.Scope, frame.WorkspaceID, frame.SessionID)
		s.sendAck(client, "unsubscribed", frame)
	case "pong":
		// markAlive already ran; nothing else to do.
	default:
		s.sendError(client, "unknown frame type "+frame.Type)
	}
}

func validScope(frame clientFrame) bool {
	return frame.Scope == "all" || frame.WorkspaceID != "" || frame.SessionID != ""
}

func (s *Server) sendAck(client *Client, ackType string, frame clientFrame) {
	data, _ := json.Marshal(ackFrame{
		Type:        ackType,
		Scope:       frame.Scope,
		WorkspaceID: frame.WorkspaceID,
		SessionID:   frame.SessionID,
	})
	client.TrySend(data)
}

func (s *Server) sendError(client *Client, message string) {
	data, _ := json.Marshal(errorFrame{Type: "error", Message: message})
	client.TrySend(data)
}

// writePump drains the client's send queue onto the wire until the client
// is closed.
func (s *Server) writePump(client *Client) {
	for {
		select {
		case <-client.done:
			return
		case frame := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				client.Close()
				return
			}
		}
	}
}

// Run drives application-level keepalive. Each tick, clients that never
// responded since the previous ping are torn down; the rest get a fresh
// {"type":"ping"} and must answer (or send anything) before the next tick.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.closeAll()
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Server) sweep() {
	s.mu.Lock()
	clients := make([]*Client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, client := range clients {
		if !client.checkAndClearAlive() {
			s.logger.Info("ws client timed out", zap.String("client_id", client.ID()))
			s.remove(client)
			continue
		}
		if !client.TrySend(pingFrame) {
			s.remove(client)
		}
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	clients := make([]*Client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, client := range clients {
		s.remove(client)
	}
}
