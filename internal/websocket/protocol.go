package websocket

import "time"

type MessageType string

const (
	MessageTypeSnapshot MessageType = "snapshot"
	MessageTypeWelcome  MessageType = "welcome"
)

// ServerMessage is the only frame the hub sends; Data carries the payload
// for Type.
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
