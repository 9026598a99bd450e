package models

import "time"

// Campaign statuses accepted by create/modify operations.
const (
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusDraft     = "draft"
	CampaignStatusCompleted = "completed"
)

// Campaign represents a marketing campaign
type Campaign struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"not null;index" json:"name"`
	Status          string    `gorm:"default:draft" json:"status"`
	Budget          float64   `gorm:"default:0" json:"budget"`
	DailyBudget     float64   `gorm:"default:0" json:"daily_budget"`
	CostTraffic     float64   `gorm:"default:0" json:"cost_traffic"`
	CostCreative    float64   `gorm:"default:0" json:"cost_creative"`
	CostOperational float64   `gorm:"default:0" json:"cost_operational"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
