package repository

import (
	"time"

	"github.com/formteam/formtrack-backend/internal/models"

	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create creates a new admin account
func (r *AdminRepository) Create(admin *models.Admin) error {
	return r.db.Create(admin).Error
}

// GetByID retrieves an admin by ID
func (r *AdminRepository) GetByID(id string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.First(&admin, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// GetByEmail retrieves an admin by email
func (r *AdminRepository) GetByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.First(&admin, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// CheckEmailExists checks if an email is already registered
func (r *AdminRepository) CheckEmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Admin{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// GetByApprovalStatus retrieves all admins in a given approval state
func (r *AdminRepository) GetByApprovalStatus(status string) ([]*models.Admin, error) {
	var admins []*models.Admin
	err := r.db.Where("approval_status = ?", status).
		Order("created_at DESC").
		Find(&admins).Error
	return admins, err
}

// GetAll retrieves all admin accounts (superadmin only)
func (r *AdminRepository) GetAll() ([]*models.Admin, error) {
	var admins []*models.Admin
	err := r.db.Order("created_at DESC").Find(&admins).Error
	return admins, err
}

// Update updates an admin record
func (r *AdminRepository) Update(admin *models.Admin) error {
	return r.db.Save(admin).Error
}

// UpdateLastLogin updates the last login timestamp
func (r *AdminRepository) UpdateLastLogin(id string) error {
	now := time.Now()
	return r.db.Model(&models.Admin{}).Where("id = ?", id).
		Update("last_login_at", &now).Error
}

// Delete hard-deletes an admin account
func (r *AdminRepository) Delete(id string) error {
	return r.db.Delete(&models.Admin{}, "id = ?", id).Error
}
