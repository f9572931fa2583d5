package auth

import (
	"time"

	"github.com/sirupsen/logrus"
)

// OTPCleanupService periodically removes expired verification codes
type OTPCleanupService struct {
	otpService *OTPService
	interval   time.Duration
	stopChan   chan bool
}

func NewOTPCleanupService(otpService *OTPService) *OTPCleanupService {
	return &OTPCleanupService{
		otpService: otpService,
		interval:   time.Hour,
		stopChan:   make(chan bool),
	}
}

// Start starts the cleanup loop
func (s *OTPCleanupService) Start() {
	go s.run()
	logrus.Info("Verification code cleanup service started")
}

// Stop stops the cleanup loop
func (s *OTPCleanupService) Stop() {
	s.stopChan <- true
	logrus.Info("Verification code cleanup service stopped")
}

func (s *OTPCleanupService) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.otpService.CleanupExpired()

	for {
		select {
		case <-ticker.C:
			s.otpService.CleanupExpired()
		case <-s.stopChan:
			return
		}
	}
}
