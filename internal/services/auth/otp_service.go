package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/formteam/formtrack-backend/internal/database/repository"
	"github.com/formteam/formtrack-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const otpValidity = 10 * time.Minute

// Verification failures the HTTP layer maps to 4xx responses.
var (
	ErrEmailNotRegistered = errors.New("email not registered")
	ErrOTPNotRequested    = errors.New("no verification code requested for this email")
	ErrOTPExpired         = errors.New("verification code expired")
	ErrOTPIncorrect       = errors.New("incorrect verification code")
)

// Mailer delivers verification codes. Satisfied by services.MailerService.
type Mailer interface {
	SendOTPEmail(email, code string) error
}

// OTPService issues and checks transient email verification codes
type OTPService struct {
	codeRepo  *repository.VerificationCodeRepository
	adminRepo *repository.AdminRepository
	mailer    Mailer
}

func NewOTPService(db *gorm.DB, mailer Mailer) *OTPService {
	return &OTPService{
		codeRepo:  repository.NewVerificationCodeRepository(db),
		adminRepo: repository.NewAdminRepository(db),
		mailer:    mailer,
	}
}

// SendOTP generates a 6-digit code, stores it with an expiry and emails it.
// Re-requesting replaces any live code for the email.
func (s *OTPService) SendOTP(email string) error {
	if _, err := s.adminRepo.GetByEmail(email); err != nil {
		return ErrEmailNotRegistered
	}

	code, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	record := &models.VerificationCode{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(otpValidity),
		CreatedAt: time.Now(),
	}
	if err := s.codeRepo.Upsert(record); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	if err := s.mailer.SendOTPEmail(email, code); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	logrus.Infof("Verification code sent to %s", email)
	return nil
}

// VerifyOTP checks a submitted code, consumes it and marks the admin's email
// as verified
func (s *OTPService) VerifyOTP(email, code string) error {
	record, err := s.codeRepo.GetByEmail(email)
	if err != nil {
		return ErrOTPNotRequested
	}

	if time.Now().After(record.ExpiresAt) {
		return ErrOTPExpired
	}
	if record.Code != code {
		return ErrOTPIncorrect
	}

	if err := s.codeRepo.DeleteByEmail(email); err != nil {
		logrus.Warnf("Failed to delete consumed verification code for %s: %v", email, err)
	}

	admin, err := s.adminRepo.GetByEmail(email)
	if err != nil {
		return errors.New("no account registered for this email")
	}
	if admin.EmailVerified {
		return nil
	}

	admin.EmailVerified = true
	if err := s.adminRepo.Update(admin); err != nil {
		return fmt.Errorf("failed to mark email verified: %w", err)
	}
	return nil
}

// CleanupExpired removes stale verification codes
func (s *OTPService) CleanupExpired() {
	removed, err := s.codeRepo.DeleteExpired()
	if err != nil {
		logrus.Warnf("Failed to clean up expired verification codes: %v", err)
		return
	}
	if removed > 0 {
		logrus.Infof("Removed %d expired verification codes", removed)
	}
}

// generateOTP returns a 6-digit numeric code
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
