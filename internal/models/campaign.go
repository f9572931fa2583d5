package models

import (
	"fmt"
	"strings"
	"time"
)

// CampaignStatus is the lifecycle status of a campaign. Exactly four values are
// persisted; anything else is rejected at the write boundary.
type CampaignStatus string

const (
	StatusDraft  CampaignStatus = "draft"
	StatusActive CampaignStatus = "active"
	StatusStop   CampaignStatus = "stop"
	StatusExpire CampaignStatus = "expire"
)

// ParseCampaignStatus normalizes a status string to its canonical lowercase form.
// Input casing is forgiven ("Stop" and "stop" both parse), unknown values fail.
func ParseCampaignStatus(s string) (CampaignStatus, error) {
	switch CampaignStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusDraft:
		return StatusDraft, nil
	case StatusActive:
		return StatusActive, nil
	case StatusStop:
		return StatusStop, nil
	case StatusExpire:
		return StatusExpire, nil
	}
	return "", fmt.Errorf("invalid campaign status %q", s)
}

// Campaign represents an affiliate campaign owned by an admin
type Campaign struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	OwnerID         string         `json:"owner_id" gorm:"not null;index;type:uuid"`
	Name            string         `json:"name" gorm:"type:varchar(255);not null"`
	Advertiser      string         `json:"advertiser" gorm:"type:varchar(255)"`
	Category        string         `json:"category" gorm:"type:varchar(100)"`
	Status          CampaignStatus `json:"status" gorm:"type:varchar(20);not null;default:'draft';index"`
	PayoutType      string         `json:"payout_type" gorm:"type:varchar(20)"` // CPA, CPL, CPS
	PayoutAmount    float64        `json:"payout_amount" gorm:"type:decimal(12,2)"`
	Currency        string         `json:"currency" gorm:"type:varchar(10);default:'USD'"`
	ConversionEvent string         `json:"conversion_event" gorm:"type:varchar(255)"`
	OfferURL        string         `json:"offer_url" gorm:"type:text;not null"`
	TrackingCode    *string        `json:"tracking_code" gorm:"type:varchar(16);uniqueIndex"`
	PostbackURL     string         `json:"postback_url" gorm:"type:text"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	// Relationships
	Owner     Admin      `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE"`
	ClickLogs []ClickLog `json:"click_logs,omitempty" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Campaign model
func (Campaign) TableName() string {
	return "campaigns"
}

// CreateCampaignRequest represents the request to create a new campaign
type CreateCampaignRequest struct {
	Name            string  `json:"name" binding:"required" example:"Summer Promo"`
	Advertiser      string  `json:"advertiser" example:"Acme Corp"`
	Category        string  `json:"category" example:"E-commerce"`
	Status          string  `json:"status,omitempty" example:"active"` // draft or active; defaults to active
	PayoutType      string  `json:"payout_type" example:"CPA"`
	PayoutAmount    float64 `json:"payout_amount" example:"50"`
	Currency        string  `json:"currency" example:"USD"`
	ConversionEvent string  `json:"conversion_event" example:"Purchase"`
	OfferURL        string  `json:"offer_url" binding:"required,url" example:"https://advertiser.example/offer"`
	PostbackURL     string  `json:"postback_url,omitempty" example:"https://partner.example/postback"`
}

// UpdateCampaignRequest represents the request to update a campaign.
// Nil pointers leave the corresponding field untouched.
type UpdateCampaignRequest struct {
	Name            *string  `json:"name,omitempty"`
	Advertiser      *string  `json:"advertiser,omitempty"`
	Category        *string  `json:"category,omitempty"`
	Status          *string  `json:"status,omitempty" example:"stop"`
	PayoutType      *string  `json:"payout_type,omitempty"`
	PayoutAmount    *float64 `json:"payout_amount,omitempty"`
	Currency        *string  `json:"currency,omitempty"`
	ConversionEvent *string  `json:"conversion_event,omitempty"`
	OfferURL        *string  `json:"offer_url,omitempty"`
	PostbackURL     *string  `json:"postback_url,omitempty"`
}

// CampaignResponse represents the response for campaign operations
type CampaignResponse struct {
	ID              uint    `json:"id" example:"42"`
	OwnerID         string  `json:"owner_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name            string  `json:"name" example:"Summer Promo"`
	Advertiser      string  `json:"advertiser" example:"Acme Corp"`
	Category        string  `json:"category" example:"E-commerce"`
	Status          string  `json:"status" example:"active"`
	PayoutType      string  `json:"payout_type" example:"CPA"`
	PayoutAmount    float64 `json:"payout_amount" example:"50"`
	Currency        string  `json:"currency" example:"USD"`
	ConversionEvent string  `json:"conversion_event" example:"Purchase"`
	OfferURL        string  `json:"offer_url" example:"https://advertiser.example/offer"`
	TrackingCode    string  `json:"tracking_code" example:"aB3xYz91"`
	TrackingURL     string  `json:"tracking_url" example:"https://api.formtrack.example/track/aB3xYz91"`
	PostbackURL     string  `json:"postback_url,omitempty"`
	ClickCount      int64   `json:"click_count" example:"1287"`
	CreatedAt       string  `json:"created_at" example:"2025-01-09T10:30:00Z"`
	UpdatedAt       string  `json:"updated_at" example:"2025-01-09T10:30:00Z"`
}
