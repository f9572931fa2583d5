package models

import (
	"time"
)

// ClickLog is a best-effort record of one tracking-link resolution against a
// campaign. Insert-only; there is no dedup or rate limiting.
type ClickLog struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CampaignID uint      `json:"campaign_id" gorm:"not null;index"`
	IPAddress  string    `json:"ip_address" gorm:"type:varchar(45)"`
	UserAgent  string    `json:"user_agent" gorm:"type:varchar(500)"`
	Referer    string    `json:"referer" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`

	// Relationships
	Campaign Campaign `json:"campaign,omitempty" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the ClickLog model
func (ClickLog) TableName() string {
	return "click_logs"
}

// ClickEvent is the wire form of a click published to the message queue
type ClickEvent struct {
	EventID    string    `json:"event_id"`
	CampaignID uint      `json:"campaign_id"`
	IPAddress  string    `json:"ip_address"`
	UserAgent  string    `json:"user_agent"`
	Referer    string    `json:"referer"`
	OccurredAt time.Time `json:"occurred_at"`
}
