package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/binhbb2204/movie-stats-viz/pkg/logger"
	"github.com/binhbb2204/movie-stats-viz/pkg/metrics"
)

type Client struct {
	ID          string
	Conn        *websocket.Conn
	Send        chan []byte
	Manager     *Manager
	ConnectedAt time.Time
	LastActive  time.Time
	mu          sync.Mutex
}

// Manager fans server messages out to every connected page.
type Manager struct {
	clients    map[string]*Client
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	log        *logger.Logger
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        logger.GetLogger().WithContext("component", "ws_manager"),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled, then
// closes every client.
func (m *Manager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(m.done)
			m.mu.Lock()
			for id, client := range m.clients {
				close(client.Send)
				delete(m.clients, id)
			}
			metrics.SetActiveConnections(0)
			m.mu.Unlock()
			return

		case client := <-m.register:
			m.mu.Lock()
			m.clients[client.ID] = client
			metrics.SetActiveConnections(int64(len(m.clients)))
			m.mu.Unlock()
			m.log.Debug("ws_client_registered", "client_id", client.ID)

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client.ID]; ok {
				delete(m.clients, client.ID)
				close(client.Send)
			}
			metrics.SetActiveConnections(int64(len(m.clients)))
			m.mu.Unlock()
			m.log.Debug("ws_client_unregistered", "client_id", client.ID, "connected_for", time.Since(client.ConnectedAt).String())

		case message := <-m.broadcast:
			m.mu.Lock()
			for id, client := range m.clients {
				select {
				case client.Send <- message:
				default:
					// slow page; it reconnects and reloads the snapshot
					close(client.Send)
					delete(m.clients, id)
					m.log.Warn("ws_client_dropped", "client_id", id)
				}
			}
			metrics.SetActiveConnections(int64(len(m.clients)))
			m.mu.Unlock()
		}
	}
}

// BroadcastMessage queues message for every client. It never blocks; when
// the queue is full the message is dropped.
func (m *Manager) BroadcastMessage(message []byte) {
	select {
	case m.broadcast <- message:
	default:
		m.log.Warn("ws_broadcast_dropped", "bytes", len(message))
	}
}

// Register hands client to the run loop. It reports false once the manager
// has stopped.
func (m *Manager) Register(client *Client) bool {
	select {
	case m.register <- client:
		return true
	case <-m.done:
		return false
	}
}

func (m *Manager) Unregister(client *Client) {
	select {
	case m.unregister <- client:
	case <-m.done:
	}
}

func (m *Manager) GetClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (c *Client) ReadPump() {
	defer func() {
		c.Manager.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		c.UpdateActivity()
		return nil
	})

	// pages never send anything meaningful; reading only detects close
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Manager.log.Error("ws_read_error", "client_id", c.ID, "error", err.Error())
			}
			return
		}
		c.UpdateActivity()
	}
}

func (c *Client) UpdateActivity() {
	c.mu.Lock()
	c.LastActive = time.Now()
	c.mu.Unlock()
}

func (c *Client) GetLastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.LastActive
}

func (c *Client) WritePump() {
	defer c.Conn.Close()
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
