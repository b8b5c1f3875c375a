package core

import "time"

const (
	AppName      = "Journal"
	AppUserAgent = "Journal/0.1"
	AppVersion   = "0.1.0"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single turn as sent to the language model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ValidRole reports whether role may be stored in a session.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAssistant
}

type StoredMessage struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (m StoredMessage) AsMessage() Message {
	return Message{Role: m.Role, Content: m.Content}
}

type Session struct {
	ID           string    `json:"session_id"`
	Name         string    `json:"session_name"`
	CreatedAt    time.Time `json:"created_at"`
	Named        bool      `json:"-"`
	MessageCount int       `json:"message_count"`
}
