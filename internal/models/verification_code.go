package models

import (
	"time"
)

// VerificationCode is a transient OTP sent to an email address during
// registration. One live code per email; re-requesting replaces it.
type VerificationCode struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Code      string    `json:"-" gorm:"type:varchar(10);not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the VerificationCode model
func (VerificationCode) TableName() string {
	return "verification_codes"
}

// SendOTPRequest asks for a verification code to be emailed
type SendOTPRequest struct {
	Email string `json:"email" binding:"required,email" example:"jane@acme.test"`
}

// VerifyOTPRequest validates a previously emailed code
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email" example:"jane@acme.test"`
	Code  string `json:"code" binding:"required" example:"482913"`
}
