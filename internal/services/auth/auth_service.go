package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/formteam/formtrack-backend/internal/database/repository"
	"github.com/formteam/formtrack-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	adminRepo      *repository.AdminRepository
	jwtSecret      []byte
	accessTokenTTL time.Duration
}

func NewAuthService(db *gorm.DB) *AuthService {
	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		jwtSecret = []byte("default-secret-key-change-in-production")
	}

	accessTokenTTL := 24 * time.Hour
	if ttl := os.Getenv("ACCESS_TOKEN_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil {
			accessTokenTTL = parsed
		}
	}

	return &AuthService{
		adminRepo:      repository.NewAdminRepository(db),
		jwtSecret:      jwtSecret,
		accessTokenTTL: accessTokenTTL,
	}
}

// Register creates a new admin account in the pending approval state
func (s *AuthService) Register(req *models.RegisterRequest) (*models.Admin, error) {
	exists, err := s.adminRepo.CheckEmailExists(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, errors.New("email already exists")
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
		Role:           models.RoleAdmin,
		ApprovalStatus: models.ApprovalPending,
	}

	if err := s.adminRepo.Create(admin); err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	logrus.Infof("Admin %s registered, awaiting approval", admin.Email)
	return admin, nil
}

// Login authenticates an approved, email-verified admin
func (s *AuthService) Login(req *models.LoginRequest) (*models.AuthResponse, error) {
	admin, err := s.adminRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	if !admin.EmailVerified {
		return nil, errors.New("email not verified")
	}

	switch admin.ApprovalStatus {
	case models.ApprovalApproved:
	case models.ApprovalPending:
		return nil, errors.New("account pending approval")
	case models.ApprovalRejected:
		if admin.RejectionReason != "" {
			return nil, fmt.Errorf("account rejected: %s", admin.RejectionReason)
		}
		return nil, errors.New("account rejected")
	default:
		return nil, errors.New("account not approved")
	}

	if err := s.adminRepo.UpdateLastLogin(admin.ID); err != nil {
		logrus.Warnf("Failed to update last login for %s: %v", admin.Email, err)
	}

	return s.generateAuthResponse(admin)
}

// ValidateToken validates and parses a JWT token
func (s *AuthService) ValidateToken(tokenString string) (*models.TokenInfo, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return &models.TokenInfo{
		AdminID:   claims.AdminID,
		Email:     claims.Email,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// UpdateProfile updates the authenticated admin's profile fields
func (s *AuthService) UpdateProfile(adminID string, req *models.UpdateProfileRequest) (*models.Admin, error) {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return nil, errors.New("admin not found")
	}

	if req.Name != "" {
		admin.Name = req.Name
	}
	if req.Company != "" {
		admin.Company = req.Company
	}

	if err := s.adminRepo.Update(admin); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return admin, nil
}

// ChangePassword changes an admin's own password
func (s *AuthService) ChangePassword(adminID, currentPassword, newPassword string) error {
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return errors.New("admin not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(currentPassword)); err != nil {
		return errors.New("current password is incorrect")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin.PasswordHash = string(hashedPassword)
	return s.adminRepo.Update(admin)
}

// CreateSuperAdmin creates the superadmin account from env if it doesn't exist
func (s *AuthService) CreateSuperAdmin() error {
	email := os.Getenv("SUPERADMIN_EMAIL")
	password := os.Getenv("SUPERADMIN_PASSWORD")
	if email == "" || password == "" {
		return errors.New("SUPERADMIN_EMAIL and SUPERADMIN_PASSWORD not set")
	}

	if existing, err := s.adminRepo.GetByEmail(email); err == nil && existing != nil {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	superadmin := &models.Admin{
		Email:          email,
		PasswordHash:   string(hashedPassword),
		Name:           "Super Admin",
		Role:           models.RoleSuperAdmin,
		ApprovalStatus: models.ApprovalApproved,
		EmailVerified:  true,
	}

	if err := s.adminRepo.Create(superadmin); err != nil {
		return fmt.Errorf("failed to create superadmin: %w", err)
	}
	return nil
}

// GetAdmin returns the admin for the given ID
func (s *AuthService) GetAdmin(adminID string) (*models.Admin, error) {
	return s.adminRepo.GetByID(adminID)
}

// generateAuthResponse builds the access token response for an admin
func (s *AuthService) generateAuthResponse(admin *models.Admin) (*models.AuthResponse, error) {
	claims := &models.JWTClaims{
		AdminID: admin.ID,
		Email:   admin.Email,
		Role:    admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "formtrack-backend",
			Subject:   admin.ID,
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &models.AuthResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.accessTokenTTL.Seconds()),
		Admin:       *admin,
	}, nil
}
