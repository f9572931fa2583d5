package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/formteam/formtrack-backend/internal/models"
	"github.com/formteam/formtrack-backend/internal/tracking"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CampaignStore is the persistence surface the campaign service needs
type CampaignStore interface {
	Create(campaign *models.Campaign) error
	TrackingCodeExists(code string) (bool, error)
	GetByOwnerID(ownerID string) ([]*models.Campaign, error)
	GetByOwnerIDAndID(ownerID string, campaignID uint) (*models.Campaign, error)
	Update(campaign *models.Campaign) error
	UpdateTrackingCode(campaignID uint, code string) error
	DeleteByOwnerIDAndID(ownerID string, campaignID uint) error
	CountClicks(campaignID uint) (int64, error)
}

// ClickReader exposes the persisted click history of a campaign
type ClickReader interface {
	GetByCampaignID(campaignID uint, limit int) ([]*models.ClickLog, error)
}

type CampaignService struct {
	campaigns       CampaignStore
	clickLogs       ClickReader
	generator       *tracking.Generator
	trackingBaseURL string
}

func NewCampaignService(campaigns CampaignStore, clickLogs ClickReader, generator *tracking.Generator, trackingBaseURL string) *CampaignService {
	return &CampaignService{
		campaigns:       campaigns,
		clickLogs:       clickLogs,
		generator:       generator,
		trackingBaseURL: trackingBaseURL,
	}
}

// CreateCampaign creates a campaign for an admin and assigns its tracking
// code. The pre-check plus insert can race with a concurrent create, so a
// duplicate-key failure triggers one retry of the whole sequence.
func (s *CampaignService) CreateCampaign(ownerID string, req *models.CreateCampaignRequest) (*models.CampaignResponse, error) {
	status := models.StatusActive
	if req.Status != "" {
		parsed, err := models.ParseCampaignStatus(req.Status)
		if err != nil {
			return nil, err
		}
		if parsed != models.StatusDraft && parsed != models.StatusActive {
			return nil, fmt.Errorf("invalid campaign status %q: new campaigns must start as draft or active", parsed)
		}
		status = parsed
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	var campaign *models.Campaign
	for attempt := 0; attempt < 2; attempt++ {
		code, err := tracking.AllocateTrackingCode(s.generator, s.campaigns.TrackingCodeExists)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate tracking code: %w", err)
		}

		campaign = &models.Campaign{
			OwnerID:         ownerID,
			Name:            req.Name,
			Advertiser:      req.Advertiser,
			Category:        req.Category,
			Status:          status,
			PayoutType:      req.PayoutType,
			PayoutAmount:    req.PayoutAmount,
			Currency:        currency,
			ConversionEvent: req.ConversionEvent,
			OfferURL:        req.OfferURL,
			TrackingCode:    &code,
			PostbackURL:     req.PostbackURL,
		}

		err = s.campaigns.Create(campaign)
		if err == nil {
			return s.toResponse(campaign), nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to create campaign: %w", err)
		}
		logrus.Warnf("Tracking code %s lost an insert race, retrying allocation", code)
	}
	return nil, errors.New("failed to create campaign: tracking code collisions persisted")
}

// GetCampaignsByOwner retrieves all campaigns for an admin
func (s *CampaignService) GetCampaignsByOwner(ownerID string) ([]*models.CampaignResponse, error) {
	campaigns, err := s.campaigns.GetByOwnerID(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaigns: %w", err)
	}

	responses := make([]*models.CampaignResponse, len(campaigns))
	for i, campaign := range campaigns {
		responses[i] = s.toResponse(campaign)
	}
	return responses, nil
}

// GetCampaignByID retrieves a campaign by ID (admin must own it)
func (s *CampaignService) GetCampaignByID(ownerID string, campaignID uint) (*models.CampaignResponse, error) {
	campaign, err := s.campaigns.GetByOwnerIDAndID(ownerID, campaignID)
	if err != nil {
		return nil, errors.New("campaign not found")
	}
	return s.toResponse(campaign), nil
}

// UpdateCampaign updates a campaign (admin must own it). Status transitions
// are free-form but the value must parse; casing is normalized here so the
// resolver never sees a non-canonical status.
func (s *CampaignService) UpdateCampaign(ownerID string, campaignID uint, req *models.UpdateCampaignRequest) (*models.CampaignResponse, error) {
	campaign, err := s.campaigns.GetByOwnerIDAndID(ownerID, campaignID)
	if err != nil {
		return nil, errors.New("campaign not found")
	}

	if req.Status != nil {
		parsed, err := models.ParseCampaignStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		campaign.Status = parsed
	}
	if req.Name != nil {
		campaign.Name = *req.Name
	}
	if req.Advertiser != nil {
		campaign.Advertiser = *req.Advertiser
	}
	if req.Category != nil {
		campaign.Category = *req.Category
	}
	if req.PayoutType != nil {
		campaign.PayoutType = *req.PayoutType
	}
	if req.PayoutAmount != nil {
		campaign.PayoutAmount = *req.PayoutAmount
	}
	if req.Currency != nil {
		campaign.Currency = *req.Currency
	}
	if req.ConversionEvent != nil {
		campaign.ConversionEvent = *req.ConversionEvent
	}
	if req.OfferURL != nil {
		campaign.OfferURL = *req.OfferURL
	}
	if req.PostbackURL != nil {
		campaign.PostbackURL = *req.PostbackURL
	}

	if err := s.campaigns.Update(campaign); err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}
	return s.toResponse(campaign), nil
}

// RegenerateTrackingCode atomically replaces the campaign's tracking code
// with a freshly allocated one. The old code stops resolving immediately.
func (s *CampaignService) RegenerateTrackingCode(ownerID string, campaignID uint) (*models.CampaignResponse, error) {
	campaign, err := s.campaigns.GetByOwnerIDAndID(ownerID, campaignID)
	if err != nil {
		return nil, errors.New("campaign not found")
	}

	for attempt := 0; attempt < 2; attempt++ {
		code, err := tracking.AllocateTrackingCode(s.generator, s.campaigns.TrackingCodeExists)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate tracking code: %w", err)
		}

		err = s.campaigns.UpdateTrackingCode(campaign.ID, code)
		if err == nil {
			campaign.TrackingCode = &code
			return s.toResponse(campaign), nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to regenerate tracking code: %w", err)
		}
		logrus.Warnf("Tracking code %s lost an update race, retrying allocation", code)
	}
	return nil, errors.New("failed to regenerate tracking code: collisions persisted")
}

// GetClicks retrieves the most recent clicks of a campaign the admin owns
func (s *CampaignService) GetClicks(ownerID string, campaignID uint, limit int) ([]*models.ClickLog, error) {
	if _, err := s.campaigns.GetByOwnerIDAndID(ownerID, campaignID); err != nil {
		return nil, errors.New("campaign not found")
	}

	logs, err := s.clickLogs.GetByCampaignID(campaignID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get clicks: %w", err)
	}
	return logs, nil
}

// DeleteCampaign hard-deletes a campaign (admin must own it)
func (s *CampaignService) DeleteCampaign(ownerID string, campaignID uint) error {
	err := s.campaigns.DeleteByOwnerIDAndID(ownerID, campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("campaign not found")
		}
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	return nil
}

// toResponse converts a campaign model to its API response
func (s *CampaignService) toResponse(campaign *models.Campaign) *models.CampaignResponse {
	resp := &models.CampaignResponse{
		ID:              campaign.ID,
		OwnerID:         campaign.OwnerID,
		Name:            campaign.Name,
		Advertiser:      campaign.Advertiser,
		Category:        campaign.Category,
		Status:          string(campaign.Status),
		PayoutType:      campaign.PayoutType,
		PayoutAmount:    campaign.PayoutAmount,
		Currency:        campaign.Currency,
		ConversionEvent: campaign.ConversionEvent,
		OfferURL:        campaign.OfferURL,
		PostbackURL:     campaign.PostbackURL,
		CreatedAt:       campaign.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       campaign.UpdatedAt.Format(time.RFC3339),
	}

	if campaign.TrackingCode != nil {
		resp.TrackingCode = *campaign.TrackingCode
		resp.TrackingURL = fmt.Sprintf("%s/track/%s", s.trackingBaseURL, *campaign.TrackingCode)
	}

	if count, err := s.campaigns.CountClicks(campaign.ID); err == nil {
		resp.ClickCount = count
	}
	return resp
}
