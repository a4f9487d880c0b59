package services

import (
	"crypto/rand"
	"fmt"
	"gopkg.in/gomail.v2"
	"math/big"
	"sync"
	"time"
	"walk2gether-api/config"
	"walk2gether-api/models"
)

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer

	// In-memory storage for verification codes
	verificationCodes map[string]VerificationCode
	mutex             sync.RWMutex
}

type VerificationCode struct {
	Code      string    `json:"code"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	service := &EmailService{
		config:            cfg,
		dialer:            dialer,
		verificationCodes: make(map[string]VerificationCode),
	}

	// Start cleanup goroutine
	go service.cleanupExpiredCodes()

	return service
}

// Generate a random 4-digit verification code
func (es *EmailService) generateVerificationCode() string {
	const digits = "0123456789"
	code := make([]byte, 4)

	for i := range code {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		code[i] = digits[num.Int64()]
	}

	return string(code)
}

// SendVerificationEmail sends an account verification code
func (es *EmailService) SendVerificationEmail(email, name string) (string, error) {
	// Reuse an existing valid unused code if there is one
	es.mutex.RLock()
	existingCode, exists := es.verificationCodes[email]
	es.mutex.RUnlock()

	var code string
	if exists && !existingCode.Used && time.Now().Before(existingCode.ExpiresAt) {
		code = existingCode.Code
	} else {
		code = es.generateVerificationCode()

		// Store verification code (expires in 10 minutes)
		es.mutex.Lock()
		es.verificationCodes[email] = VerificationCode{
			Code:      code,
			Email:     email,
			ExpiresAt: time.Now().Add(10 * time.Minute),
			Used:      false,
		}
		es.mutex.Unlock()
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(es.config.FromEmail, es.config.FromName))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Verify your Walk2Gether account")
	m.SetBody("text/html", fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>Welcome to Walk2Gether! Enter this code to verify your email:</p>
		<h1 style="letter-spacing: 4px;">%s</h1>
		<p>The code expires in 10 minutes.</p>
	`, name, code))

	if err := es.dialer.DialAndSend(m); err != nil {
		return "", fmt.Errorf("failed to send verification email: %w", err)
	}

	return code, nil
}

// VerifyCode checks a submitted verification code
func (es *EmailService) VerifyCode(email, code string) bool {
	es.mutex.Lock()
	defer es.mutex.Unlock()

	stored, exists := es.verificationCodes[email]
	if !exists || stored.Used || time.Now().After(stored.ExpiresAt) {
		return false
	}

	if stored.Code != code {
		return false
	}

	stored.Used = true
	es.verificationCodes[email] = stored
	return true
}

// GetVerificationCode returns the stored code for an email (debug endpoint)
func (es *EmailService) GetVerificationCode(email string) (string, bool) {
	es.mutex.RLock()
	defer es.mutex.RUnlock()

	stored, exists := es.verificationCodes[email]
	if !exists || stored.Used || time.Now().After(stored.ExpiresAt) {
		return "", false
	}
	return stored.Code, true
}

// SendWalkInvitationEmail notifies an invited user about a new walk
func (es *EmailService) SendWalkInvitationEmail(email, name string, walk *models.Walk) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(es.config.FromEmail, es.config.FromName))
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("%s invited you to a walk", walk.OrganizerName))
	m.SetBody("text/html", fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>%s invited you to a walk at <strong>%s</strong> on %s.</p>
		<p>Open the app to respond.</p>
	`, name, walk.OrganizerName, walk.LocationName, walk.Date.Format("Monday, Jan 2 at 3:04 PM")))

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send walk invitation email: %w", err)
	}
	return nil
}

// cleanupExpiredCodes periodically drops expired verification codes
func (es *EmailService) cleanupExpiredCodes() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		es.mutex.Lock()
		now := time.Now()
		for email, code := range es.verificationCodes {
			if now.After(code.ExpiresAt) || code.Used {
				delete(es.verificationCodes, email)
			}
		}
		es.mutex.Unlock()
	}
}
