package services

import (
	"fmt"
	"gopkg.in/gomail.v2"

	"taskpilot/internal/models"
)

type EmailService interface {
	SendOtpEmail(email, code string) error
	SendTaskReminderEmail(email string, task *models.Task) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendOtpEmail(email, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your OTP Code")

	body := fmt.Sprintf(
		"Hello,\n\nYour OTP for account verification is: %s.\n\nUse this to complete your registration.",
		code,
	)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}
	return nil
}

func (s *emailService) SendTaskReminderEmail(email string, task *models.Task) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Task reminder: "+task.Name)

	body := fmt.Sprintf(`
		<h3>Task due</h3>
		<p>Your task <strong>%s</strong> was scheduled for %s and is still open.</p>
	`, task.Name, task.ScheduledFor.Format("02 Jan 2006 15:04"))
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send task reminder email: %w", err)
	}
	return nil
}
