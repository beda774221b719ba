package websocket

import (
	"time"
)

// Message is the base message structure exchanged over the board channel.
// Data field uses 'any' to allow different payload types through channels
type Message struct {
	Type      MessageType `json:"type"`
	JobID     uint        `json:"jobId,omitempty"`
	UserID    uint        `json:"userId"`
	Username  string      `json:"username"`
	Timestamp time.Time   `json:"timestamp"`
	Data      any         `json:"data"`
}

// MessageType represents the type of WebSocket message
type MessageType string

const (
	// Board operations (require database processing)
	MessageTypeCandidateMove MessageType = "candidate_move"
	ResponseCandidateMove    MessageType = "response_candidate_move"
	MessageTypeEmailSent     MessageType = "email_sent"
	ResponseEmailSent        MessageType = "response_email_sent"
	MessageTypeBoardGet      MessageType = "board_get"
	ResponseBoardGet         MessageType = "response_board_get"

	// Presence messages (no processing)
	MessageTypeUserJoin  MessageType = "user_join"
	MessageTypeUserLeave MessageType = "user_leave"

	// System messages
	MessageTypeError MessageType = "error"
	MessageTypePing  MessageType = "ping"
	MessageTypePong  MessageType = "pong"
)
