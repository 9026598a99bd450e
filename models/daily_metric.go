package models

import "time"

// DailyMetric holds one day of performance numbers for a campaign
type DailyMetric struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CampaignID  string    `gorm:"not null;uniqueIndex:idx_campaign_date,priority:1" json:"campaign_id"`
	MetricDate  time.Time `gorm:"not null;uniqueIndex:idx_campaign_date,priority:2" json:"metric_date"`
	Clicks      int       `gorm:"default:0" json:"clicks"`
	Impressions int       `gorm:"default:0" json:"impressions"`
	Conversions int       `gorm:"default:0" json:"conversions"`
	Cost        float64   `gorm:"default:0" json:"cost"`
	Revenue     float64   `gorm:"default:0" json:"revenue"`
	Leads       int       `gorm:"default:0" json:"leads"`
	CreatedAt   time.Time `json:"created_at"`
}
