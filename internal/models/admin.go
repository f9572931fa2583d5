package models

import (
	"time"
)

// Admin approval statuses.
const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Admin roles.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// Admin represents an admin account that owns forms and campaigns
type Admin struct {
	ID              string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Email           string     `json:"email" gorm:"type:varchar(255);not null;unique;index"`
	PasswordHash    string     `json:"-" gorm:"type:varchar(255);not null"`
	Name            string     `json:"name" gorm:"type:varchar(255)"`
	Company         string     `json:"company" gorm:"type:varchar(255)"`
	Role            string     `json:"role" gorm:"type:varchar(20);not null;default:'admin';index"`
	ApprovalStatus  string     `json:"approval_status" gorm:"type:varchar(20);not null;default:'pending';index"`
	RejectionReason string     `json:"rejection_reason,omitempty" gorm:"type:text"`
	EmailVerified   bool       `json:"email_verified" gorm:"default:false"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`

	// Relationships
	Forms     []Form     `json:"forms,omitempty" gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE"`
	Campaigns []Campaign `json:"campaigns,omitempty" gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Admin model
func (Admin) TableName() string {
	return "admins"
}

// IsSuperAdmin reports whether the admin has the superadmin role
func (a *Admin) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}

// IsApproved reports whether the admin may authenticate and own resources
func (a *Admin) IsApproved() bool {
	return a.ApprovalStatus == ApprovalApproved
}

// CreateAdminRequest represents the superadmin request to create an admin directly
type CreateAdminRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@acme.test"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required" example:"Jane Doe"`
	Company  string `json:"company,omitempty" example:"Acme Inc"`
	Role     string `json:"role,omitempty" example:"admin"`
}

// RejectAdminRequest carries the reason recorded when an admin is rejected
type RejectAdminRequest struct {
	Reason string `json:"reason" binding:"required" example:"Unverifiable company details"`
}
