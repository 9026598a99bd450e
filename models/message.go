package models

import "time"

// Message roles understood by the chat completion protocol.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message represents one turn of a conversation session
type Message struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	SessionID    string    `gorm:"not null;uniqueIndex:idx_session_order,priority:1" json:"session_id"`
	MessageOrder int       `gorm:"not null;uniqueIndex:idx_session_order,priority:2" json:"message_order"`
	Role         string    `gorm:"not null" json:"role"`
	Content      string    `json:"content"`
	ToolCallID   string    `json:"tool_call_id,omitempty"`
	ToolName     string    `json:"tool_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
