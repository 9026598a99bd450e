package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/USBABC1/v60/models"
)

// SavedConversationDAO handles saved-conversation database operations
type SavedConversationDAO struct {
	db *gorm.DB
}

func NewSavedConversationDAO(db *gorm.DB) *SavedConversationDAO {
	return &SavedConversationDAO{db: db}
}

// Create inserts a new saved conversation
func (d *SavedConversationDAO) Create(ctx context.Context, sc *models.SavedConversation) error {
	return d.db.WithContext(ctx).Create(sc).Error
}

// ListByUser retrieves a user's saved conversations, newest first
func (d *SavedConversationDAO) ListByUser(ctx context.Context, userID uint64) ([]models.SavedConversation, error) {
	var convos []models.SavedConversation
	if err := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&convos).Error; err != nil {
		return nil, err
	}
	return convos, nil
}

// GetByID retrieves one saved conversation owned by the user, nil when absent
func (d *SavedConversationDAO) GetByID(ctx context.Context, id, userID uint64) (*models.SavedConversation, error) {
	var sc models.SavedConversation
	err := d.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&sc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sc, nil
}

// FindByUserSession retrieves the snapshot a user made of a session, nil when absent
func (d *SavedConversationDAO) FindByUserSession(ctx context.Context, userID uint64, sessionID string) (*models.SavedConversation, error) {
	var sc models.SavedConversation
	err := d.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		First(&sc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sc, nil
}

// FindByUserName retrieves a user's snapshot by its name, nil when absent
func (d *SavedConversationDAO) FindByUserName(ctx context.Context, userID uint64, name string) (*models.SavedConversation, error) {
	var sc models.SavedConversation
	err := d.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&sc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sc, nil
}

// Delete removes an ownership-matched saved conversation, reporting whether a row was deleted
func (d *SavedConversationDAO) Delete(ctx context.Context, id, userID uint64) (bool, error) {
	res := d.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.SavedConversation{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteBySession removes every snapshot pointing at a session, for any owner
func (d *SavedConversationDAO) DeleteBySession(ctx context.Context, sessionID string) error {
	return d.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&models.SavedConversation{}).Error
}
