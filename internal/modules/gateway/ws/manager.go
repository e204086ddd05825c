// Package ws owns the websocket connection pool and the outbound event
// envelope.
package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gorilla/websocket"

	"github.com/cloudstok/teen-patti-2.0-backend/internal/config"
	"github.com/cloudstok/teen-patti-2.0-backend/pkg/logger"
)

type CloseReason string

const (
	ReasonWriteError CloseReason = "write_error"
	ReasonPingError  CloseReason = "ping_error"
	ReasonReadError  CloseReason = "read_error"
	ReasonShutdown   CloseReason = "server_shutdown"
	ReasonBufferFull CloseReason = "buffer_full"
	ReasonTimeout    CloseReason = "timeout"
)

// Envelope is the outbound wire frame: every event is a named JSON object
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Connection represents one player's websocket connection
type Connection struct {
	ConnID    string
	Conn      *websocket.Conn
	Send      chan []byte
	manager   *Manager
	closeOnce sync.Once
}

// Manager manages all websocket connections, keyed by connection ID
type Manager struct {
	clients    map[string]*Connection
	register   chan *Connection
	unregister chan *Connection
	mu         sync.RWMutex

	node *snowflake.Node
	cfg  config.GatewayConfig
}

// NewManager creates a new connection manager
func NewManager(cfg config.GatewayConfig) (*Manager, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, err
	}
	return &Manager{
		clients:    make(map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		node:       node,
		cfg:        cfg,
	}, nil
}

// NextConnID mints a unique connection identifier
func (m *Manager) NextConnID() string {
	return m.node.Generate().String()
}

// Register registers a new connection under connID
func (m *Manager) Register(conn *websocket.Conn, connID string) *Connection {
	c := &Connection{
		ConnID:  connID,
		Conn:    conn,
		Send:    make(chan []byte, 1024),
		manager: m,
	}
	m.register <- c
	return c
}

// Run starts the manager loop
func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client.ConnID] = client
			m.mu.Unlock()

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client.ConnID]; ok {
				delete(m.clients, client.ConnID)
				client.CloseWithReason(ReasonShutdown, nil)
			}
			m.mu.Unlock()
		}
	}
}

// Broadcast sends an event to every connected client
func (m *Manager) Broadcast(event string, data interface{}) {
	message, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		logger.ErrorGlobal().Err(err).Str("event", event).Msg("Broadcast encode failed")
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, client := range m.clients {
		select {
		case client.Send <- message:
		default:
			// Buffer full, drop client; the unregister channel cleans up
			client.CloseWithReason(ReasonBufferFull, nil)
		}
	}
}

// SendToConn sends an event to one connection
func (m *Manager) SendToConn(connID string, event string, data interface{}) {
	message, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		logger.ErrorGlobal().Err(err).Str("event", event).Msg("Send encode failed")
		return
	}

	m.mu.RLock()
	client, ok := m.clients[connID]
	m.mu.RUnlock()

	if !ok {
		return
	}

	select {
	case client.Send <- message:
		return
	default:
	}

	// buffer full, wait briefly before giving up on a slow client
	select {
	case client.Send <- message:
	case <-time.After(5 * time.Second):
		client.CloseWithReason(ReasonTimeout, nil)
	}
}

// Shutdown closes all connections
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, client := range m.clients {
		client.CloseWithReason(ReasonShutdown, nil)
	}
}

// CloseWithReason closes the connection with a reason
func (c *Connection) CloseWithReason(r CloseReason, err error) {
	c.closeOnce.Do(func() {
		logger.Error(context.Background()).
			Str("conn_id", c.ConnID).
			Str("reason", string(r)).
			Err(err).
			Msg("ws connection closed")
		c.Conn.Close()
	})
}

// WritePump pumps messages from the hub to the websocket connection
func (c *Connection) WritePump() {
	ticker := time.NewTicker(c.manager.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.manager.cfg.WriteWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				c.CloseWithReason(ReasonWriteError, err)
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				c.CloseWithReason(ReasonWriteError, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.manager.cfg.WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.CloseWithReason(ReasonPingError, err)
				return
			}
		}
	}
}

// ReadPump pumps inbound messages to the handler until the connection dies
func (c *Connection) ReadPump(handleMessage func(string, []byte)) {
	var readErr error
	defer func() {
		c.manager.unregister <- c
		c.CloseWithReason(ReasonReadError, readErr)
	}()

	c.Conn.SetReadLimit(c.manager.cfg.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.manager.cfg.PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.manager.cfg.PongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				readErr = err
			}
			break
		}

		handleMessage(c.ConnID, message)
	}
}
