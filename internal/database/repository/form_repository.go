package repository

import (
	"github.com/formteam/formtrack-backend/internal/models"

	"gorm.io/gorm"
)

type FormRepository struct {
	db *gorm.DB
}

func NewFormRepository(db *gorm.DB) *FormRepository {
	return &FormRepository{db: db}
}

// Create creates a new form. The primary key doubles as the unique index
// guarding concurrent ID allocation.
func (r *FormRepository) Create(form *models.Form) error {
	return r.db.Create(form).Error
}

// GetByID retrieves a form by its public ID
func (r *FormRepository) GetByID(id string) (*models.Form, error) {
	var form models.Form
	if err := r.db.First(&form, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

// IDExists checks whether a form ID is already taken
func (r *FormRepository) IDExists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Form{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// GetByOwnerID retrieves all forms for a specific admin
func (r *FormRepository) GetByOwnerID(ownerID string) ([]*models.Form, error) {
	var forms []*models.Form
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&forms).Error
	return forms, err
}

// GetByOwnerIDAndID retrieves a form by owner and form ID
func (r *FormRepository) GetByOwnerIDAndID(ownerID, formID string) (*models.Form, error) {
	var form models.Form
	err := r.db.Where("owner_id = ? AND id = ?", ownerID, formID).
		First(&form).Error
	if err != nil {
		return nil, err
	}
	return &form, nil
}

// DeleteByOwnerIDAndID hard-deletes a form owned by the given admin;
// submissions cascade at the storage layer
func (r *FormRepository) DeleteByOwnerIDAndID(ownerID, formID string) error {
	result := r.db.Where("owner_id = ? AND id = ?", ownerID, formID).
		Delete(&models.Form{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
