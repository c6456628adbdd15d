package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/binhbb2204/movie-stats-viz/pkg/logger"
)

const (
	pingPeriod     = 30 * time.Second
	pongWait       = 60 * time.Second
	writeWait      = 10 * time.Second
	maxMessageSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server upgrades dashboard pages to websocket and registers them with the
// manager. Welcome supplies the first frame each new page receives.
type Server struct {
	manager *Manager
	Welcome func() interface{}
}

func NewServer(manager *Manager) *Server {
	return &Server{manager: manager}
}

func (s *Server) Manager() *Manager {
	return s.manager
}

// Publish wraps data in a frame of type t and broadcasts it.
func (s *Server) Publish(t MessageType, data interface{}) {
	frame, err := json.Marshal(ServerMessage{Type: t, Data: data, Timestamp: time.Now()})
	if err != nil {
		logger.Error("ws_marshal_failed", "type", t, "error", err.Error())
		return
	}
	s.manager.BroadcastMessage(frame)
}

func (s *Server) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("ws_upgrade_failed", "error", err.Error())
		return
	}

	now := time.Now()
	client := &Client{
		ID:          uuid.NewString(),
		Conn:        conn,
		Send:        make(chan []byte, 16),
		Manager:     s.manager,
		ConnectedAt: now,
		LastActive:  now,
	}

	if s.Welcome != nil {
		if frame, err := json.Marshal(ServerMessage{Type: MessageTypeWelcome, Data: s.Welcome(), Timestamp: now}); err == nil {
			client.Send <- frame
		}
	}

	if !s.manager.Register(client) {
		conn.Close()
		return
	}
	logger.Info("ws_client_connected", "client_id", client.ID, "remote", c.ClientIP())

	go client.WritePump()
	go client.ReadPump()
}
