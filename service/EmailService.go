package service

import (
	"crypto/tls"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailSender delivers a single message. Failures are the caller's problem:
// mandatory OTP dispatch surfaces them, best-effort mail swallows them.
type EmailSender interface {
	Send(to, subject, body string) error
}

type EmailService struct {
	dialer *gomail.Dialer
	sender string
}

func NewEmailService() *EmailService {
	// Read from .env
	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	sender := os.Getenv("SMTP_SENDER_NAME")

	port, _ := strconv.Atoi(portStr)

	dialer := gomail.NewDialer(host, port, user, pass)

	// Fix for common TLS issues (optional but recommended for dev)
	dialer.TLSConfig = &tls.Config{InsecureSkipVerify: true}

	return &EmailService{
		dialer: dialer,
		sender: sender,
	}
}

func (s *EmailService) Send(to, subject, body string) error {
	m := gomail.NewMessage()

	// Example: "Logistics Pvt Ltd <support@logistics.com>"
	m.SetHeader("From", fmt.Sprintf("%s <%s>", s.sender, s.dialer.Username))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return err
	}
	return nil
}
