package models

import "time"

// SavedConversation is a named, user-owned pointer to a conversation session
type SavedConversation struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_user_session,priority:1;uniqueIndex:idx_user_name,priority:1" json:"user_id"`
	SessionID string    `gorm:"not null;uniqueIndex:idx_user_session,priority:2" json:"session_id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_user_name,priority:2" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
