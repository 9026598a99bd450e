package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/USBABC1/v60/models"
)

// CampaignDAO handles campaign-related database operations
type CampaignDAO struct {
	db *gorm.DB
}

func NewCampaignDAO(db *gorm.DB) *CampaignDAO {
	return &CampaignDAO{db: db}
}

// ListNames retrieves the names of all campaigns
func (d *CampaignDAO) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := d.db.WithContext(ctx).Model(&models.Campaign{}).
		Order("created_at ASC").
		Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// GetByName retrieves one campaign by exact name, nil when absent.
// Duplicate names resolve to the first match.
func (d *CampaignDAO) GetByName(ctx context.Context, name string) (*models.Campaign, error) {
	var c models.Campaign
	err := d.db.WithContext(ctx).Where("name = ?", name).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// GetByID retrieves one campaign by id, nil when absent
func (d *CampaignDAO) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	var c models.Campaign
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// FindIDByName resolves a campaign name to its id, empty when absent
func (d *CampaignDAO) FindIDByName(ctx context.Context, name string) (string, error) {
	c, err := d.GetByName(ctx, name)
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", nil
	}
	return c.ID, nil
}

// Create inserts a new campaign
func (d *CampaignDAO) Create(ctx context.Context, c *models.Campaign) error {
	return d.db.WithContext(ctx).Create(c).Error
}

// Patch applies a partial update to a campaign
func (d *CampaignDAO) Patch(ctx context.Context, id string, fields map[string]interface{}) error {
	return d.db.WithContext(ctx).Model(&models.Campaign{}).
		Where("id = ?", id).
		Updates(fields).Error
}
