package repository

import (
	"time"

	"github.com/formteam/formtrack-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VerificationCodeRepository struct {
	db *gorm.DB
}

func NewVerificationCodeRepository(db *gorm.DB) *VerificationCodeRepository {
	return &VerificationCodeRepository{db: db}
}

// Upsert stores a verification code for an email, replacing any live one
func (r *VerificationCodeRepository) Upsert(code *models.VerificationCode) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "created_at"}),
	}).Create(code).Error
}

// GetByEmail retrieves the live verification code for an email
func (r *VerificationCodeRepository) GetByEmail(email string) (*models.VerificationCode, error) {
	var code models.VerificationCode
	if err := r.db.First(&code, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &code, nil
}

// DeleteByEmail removes the code once consumed
func (r *VerificationCodeRepository) DeleteByEmail(email string) error {
	return r.db.Delete(&models.VerificationCode{}, "email = ?", email).Error
}

// DeleteExpired removes all codes past their expiry
func (r *VerificationCodeRepository) DeleteExpired() (int64, error) {
	result := r.db.Where("expires_at < ?", time.Now()).Delete(&models.VerificationCode{})
	return result.RowsAffected, result.Error
}
