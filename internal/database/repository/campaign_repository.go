package repository

import (
	"github.com/formteam/formtrack-backend/internal/models"

	"gorm.io/gorm"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create creates a new campaign. The tracking_code unique index is the
// authoritative collision guard; a duplicate assignment surfaces as
// gorm.ErrDuplicatedKey.
func (r *CampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

// FindByTrackingCode retrieves the campaign owning a tracking code.
// The lookup is exact-match (codes are case-sensitive).
func (r *CampaignRepository) FindByTrackingCode(code string) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.db.First(&campaign, "tracking_code = ?", code).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

// TrackingCodeExists checks whether any campaign already uses the code
func (r *CampaignRepository) TrackingCodeExists(code string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Campaign{}).Where("tracking_code = ?", code).Count(&count).Error
	return count > 0, err
}

// GetByOwnerID retrieves all campaigns for a specific admin
func (r *CampaignRepository) GetByOwnerID(ownerID string) ([]*models.Campaign, error) {
	var campaigns []*models.Campaign
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&campaigns).Error
	return campaigns, err
}

// GetByOwnerIDAndID retrieves a campaign by owner and campaign ID
func (r *CampaignRepository) GetByOwnerIDAndID(ownerID string, campaignID uint) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.Where("owner_id = ? AND id = ?", ownerID, campaignID).
		First(&campaign).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// Update updates a campaign
func (r *CampaignRepository) Update(campaign *models.Campaign) error {
	return r.db.Save(campaign).Error
}

// UpdateTrackingCode atomically replaces the tracking code of a campaign
func (r *CampaignRepository) UpdateTrackingCode(campaignID uint, code string) error {
	return r.db.Model(&models.Campaign{}).Where("id = ?", campaignID).
		Update("tracking_code", code).Error
}

// DeleteByOwnerIDAndID hard-deletes a campaign owned by the given admin.
// Returns gorm.ErrRecordNotFound when nothing matched.
func (r *CampaignRepository) DeleteByOwnerIDAndID(ownerID string, campaignID uint) error {
	result := r.db.Where("owner_id = ? AND id = ?", ownerID, campaignID).
		Delete(&models.Campaign{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountClicks returns the number of logged clicks for a campaign
func (r *CampaignRepository) CountClicks(campaignID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ClickLog{}).Where("campaign_id = ?", campaignID).Count(&count).Error
	return count, err
}
