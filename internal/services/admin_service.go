package services

import (
	"errors"
	"fmt"

	"github.com/formteam/formtrack-backend/internal/database/repository"
	"github.com/formteam/formtrack-backend/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminService implements the superadmin account-management operations
type AdminService struct {
	adminRepo *repository.AdminRepository
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{adminRepo: repository.NewAdminRepository(db)}
}

// ListAll returns every admin account
func (s *AdminService) ListAll() ([]*models.Admin, error) {
	return s.adminRepo.GetAll()
}

// ListPending returns accounts awaiting approval
func (s *AdminService) ListPending() ([]*models.Admin, error) {
	return s.adminRepo.GetByApprovalStatus(models.ApprovalPending)
}

// ListRejected returns rejected accounts
func (s *AdminService) ListRejected() ([]*models.Admin, error) {
	return s.adminRepo.GetByApprovalStatus(models.ApprovalRejected)
}

// Approve moves a pending admin to approved
func (s *AdminService) Approve(adminID string) (*models.Admin, error) {
	return s.setApproval(adminID, models.ApprovalPending, models.ApprovalApproved, "")
}

// Reject moves a pending admin to rejected, recording the reason
func (s *AdminService) Reject(adminID, reason string) (*models.Admin, error) {
	return s.setApproval(adminID, models.ApprovalPending, models.ApprovalRejected, reason)
}

// ApproveRejected re-approves a previously rejected admin
func (s *AdminService) ApproveRejected(adminID string) (*models.Admin, error) {
	return s.setApproval(adminID, models.ApprovalRejected, models.ApprovalApproved, "")
}

// RejectApproved revokes approval from an approved admin
func (s *AdminService) RejectApproved(adminID, reason string) (*models.Admin, error) {
	return s.setApproval(adminID, models.ApprovalApproved, models.ApprovalRejected, reason)
}

func (s *AdminService) setApproval(adminID, fromStatus, toStatus, reason string) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return nil, errors.New("admin not found")
	}
	if admin.IsSuperAdmin() {
		return nil, errors.New("cannot change approval of a superadmin")
	}
	if admin.ApprovalStatus != fromStatus {
		return nil, fmt.Errorf("admin is %s, not %s", admin.ApprovalStatus, fromStatus)
	}

	admin.ApprovalStatus = toStatus
	admin.RejectionReason = reason
	if err := s.adminRepo.Update(admin); err != nil {
		return nil, fmt.Errorf("failed to update approval status: %w", err)
	}

	logrus.Infof("Admin %s moved from %s to %s", admin.Email, fromStatus, toStatus)
	return admin, nil
}

// CreateAdmin creates an approved, verified admin directly (superadmin only)
func (s *AdminService) CreateAdmin(req *models.CreateAdminRequest) (*models.Admin, error) {
	exists, err := s.adminRepo.CheckEmailExists(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, errors.New("email already exists")
	}

	role := req.Role
	if role == "" {
		role = models.RoleAdmin
	}
	if role != models.RoleAdmin && role != models.RoleSuperAdmin {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.Admin{
		Email:          req.Email,
		PasswordHash:   string(hashedPassword),
		Name:           req.Name,
		Company:        req.Company,
		Role:           role,
		ApprovalStatus: models.ApprovalApproved,
		EmailVerified:  true,
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

// DeleteAdmin hard-deletes an admin account and, by cascade, its forms and
// campaigns
func (s *AdminService) DeleteAdmin(adminID string) error {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return errors.New("admin not found")
	}
	if admin.IsSuperAdmin() {
		return errors.New("cannot delete a superadmin")
	}
	return s.adminRepo.Delete(adminID)
}

// ResetPassword sets a new password for an admin (superadmin only)
func (s *AdminService) ResetPassword(adminID, newPassword string) error {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return errors.New("admin not found")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin.PasswordHash = string(hashedPassword)
	return s.adminRepo.Update(admin)
}
