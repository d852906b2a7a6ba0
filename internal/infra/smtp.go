package infra

import (
	"bytes"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"

	"autoparts/internal/config"
)

// Mailer wraps SMTP configuration for sending emails with PDF attachments.
type Mailer struct {
	host     string
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

// Attachment is an in-memory file attached to an outgoing email.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Send delivers a plain-text email with optional attachments.
func (m *Mailer) Send(to, subject, body string, attachments ...Attachment) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	for _, a := range attachments {
		if _, err := e.Attach(bytes.NewReader(a.Data), a.Name, a.ContentType); err != nil {
			return fmt.Errorf("mailer: attach %s: %w", a.Name, err)
		}
	}

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	return e.Send(m.addr, auth)
}
