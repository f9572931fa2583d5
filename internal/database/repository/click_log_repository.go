package repository

import (
	"github.com/formteam/formtrack-backend/internal/models"

	"gorm.io/gorm"
)

type ClickLogRepository struct {
	db *gorm.DB
}

func NewClickLogRepository(db *gorm.DB) *ClickLogRepository {
	return &ClickLogRepository{db: db}
}

// Insert stores a single click row
func (r *ClickLogRepository) Insert(log *models.ClickLog) error {
	return r.db.Create(log).Error
}

// GetByCampaignID retrieves click rows for a campaign, newest first
func (r *ClickLogRepository) GetByCampaignID(campaignID uint, limit int) ([]*models.ClickLog, error) {
	var logs []*models.ClickLog
	q := r.db.Where("campaign_id = ?", campaignID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&logs).Error
	return logs, err
}
