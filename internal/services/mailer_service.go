package services

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// MailerService sends transactional email over SMTP
type MailerService struct {
	host   string
	port   int
	user   string
	pass   string
	sender string
}

func NewMailerService() *MailerService {
	port, err := strconv.Atoi(getEnv("SMTP_PORT", "465"))
	if err != nil {
		port = 465
	}

	return &MailerService{
		host:   getEnv("SMTP_HOST", ""),
		port:   port,
		user:   getEnv("SMTP_USER", ""),
		pass:   getEnv("SMTP_PASS", ""),
		sender: getEnv("SMTP_SENDER", "no-reply@formtrack.example"),
	}
}

// SendOTPEmail sends a verification code to the given address
func (s *MailerService) SendOTPEmail(email, code string) error {
	if s.host == "" {
		// No SMTP configured: log the code so local development still works.
		logrus.Warnf("SMTP not configured, verification code for %s: %s", email, code)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.sender)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your verification code")
	m.SetBody("text/plain", fmt.Sprintf("Your verification code is: %s\n\nIt expires in 10 minutes.", code))

	d := gomail.NewDialer(s.host, s.port, s.user, s.pass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", email, err)
	}

	logrus.Infof("Verification email sent to %s", email)
	return nil
}
