package mailer

import (
	"fmt"
	"net/smtp"
	"os"
)

// Mailer sends a single plain-text email
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends email through a plain SMTP relay
type SMTPMailer struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

// NewSMTPFromEnv builds a mailer from SMTP_* environment variables
func NewSMTPFromEnv() *SMTPMailer {
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USERNAME")
	}
	return &SMTPMailer{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     from,
		FromName: "Covoiturage Team",
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	if m.Username == "" || m.Password == "" {
		return fmt.Errorf("email credentials not configured")
	}

	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)

	message := []byte(fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"\r\n"+
			"%s\r\n",
		m.FromName, m.From, to, subject, body))

	addr := m.Host + ":" + m.Port
	if err := smtp.SendMail(addr, auth, m.From, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
