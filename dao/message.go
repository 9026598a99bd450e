package dao

import (
	"context"

	"gorm.io/gorm"

	"github.com/USBABC1/v60/models"
)

// MessageDAO handles message-related database operations
type MessageDAO struct {
	db *gorm.DB
}

func NewMessageDAO(db *gorm.DB) *MessageDAO {
	return &MessageDAO{db: db}
}

// Append persists msg with the next message_order for the session. The order
// is computed and inserted inside one transaction; the unique index on
// (session_id, message_order) rejects concurrent writers that lost the race.
func (d *MessageDAO) Append(ctx context.Context, sessionID string, msg *models.Message) (*models.Message, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last int
		if err := tx.Model(&models.Message{}).
			Where("session_id = ?", sessionID).
			Select("COALESCE(MAX(message_order), 0)").
			Scan(&last).Error; err != nil {
			return err
		}
		msg.SessionID = sessionID
		msg.MessageOrder = last + 1
		return tx.Create(msg).Error
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// GetRecent retrieves up to limit most-recent messages in ascending order
func (d *MessageDAO) GetRecent(ctx context.Context, sessionID string, limit int) ([]models.Message, error) {
	var messages []models.Message
	if err := d.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("message_order DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}
	// Reverse into ascending order
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// GetAll retrieves every message in a session in ascending order
func (d *MessageDAO) GetAll(ctx context.Context, sessionID string) ([]models.Message, error) {
	var messages []models.Message
	if err := d.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("message_order ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// LastOrder returns the highest message_order in the session, 0 when empty
func (d *MessageDAO) LastOrder(ctx context.Context, sessionID string) (int, error) {
	var last int
	if err := d.db.WithContext(ctx).Model(&models.Message{}).
		Where("session_id = ?", sessionID).
		Select("COALESCE(MAX(message_order), 0)").
		Scan(&last).Error; err != nil {
		return 0, err
	}
	return last, nil
}

// DeleteBySession removes all messages for a session
func (d *MessageDAO) DeleteBySession(ctx context.Context, sessionID string) error {
	return d.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.Message{}).Error
}
