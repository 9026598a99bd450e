package dao

import (
	"context"

	"gorm.io/gorm"

	"github.com/USBABC1/v60/models"
)

// MetricDAO handles daily-metric database operations
type MetricDAO struct {
	db *gorm.DB
}

func NewMetricDAO(db *gorm.DB) *MetricDAO {
	return &MetricDAO{db: db}
}

// SumCostAndRevenue aggregates total cost and revenue recorded for a campaign
func (d *MetricDAO) SumCostAndRevenue(ctx context.Context, campaignID string) (float64, float64, error) {
	var totals struct {
		TotalCost    float64
		TotalRevenue float64
	}
	err := d.db.WithContext(ctx).Model(&models.DailyMetric{}).
		Where("campaign_id = ?", campaignID).
		Select("COALESCE(SUM(cost), 0) AS total_cost, COALESCE(SUM(revenue), 0) AS total_revenue").
		Scan(&totals).Error
	if err != nil {
		return 0, 0, err
	}
	return totals.TotalCost, totals.TotalRevenue, nil
}
