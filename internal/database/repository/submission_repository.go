package repository

import (
	"github.com/formteam/formtrack-backend/internal/models"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Create stores a new submission. Submissions are never updated.
func (r *SubmissionRepository) Create(submission *models.Submission) error {
	return r.db.Create(submission).Error
}

// GetByFormID retrieves all submissions for a form, newest first
func (r *SubmissionRepository) GetByFormID(formID string) ([]*models.Submission, error) {
	var submissions []*models.Submission
	err := r.db.Where("form_id = ?", formID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	return submissions, err
}

// CountByFormID returns the number of submissions for a form
func (r *SubmissionRepository) CountByFormID(formID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Submission{}).Where("form_id = ?", formID).Count(&count).Error
	return count, err
}
