package mail

import (
	"fmt"
	"net/smtp"

	"github.com/ashstar-ai/mainframe/internal/config"
)

// Sender delivers transactional mail. Delivery is best-effort everywhere it
// is used; callers never fail a request over a lost email.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends through a plain-auth SMTP relay.
type SMTPSender struct {
	cfg config.MailConfig
}

// NewSMTPSender builds a sender from the relay configuration.
func NewSMTPSender(cfg config.MailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send delivers one message.
func (s *SMTPSender) Send(to, subject, body string) error {
	addr := s.cfg.Host + ":" + s.cfg.Port
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.cfg.From, to, subject, body)

	if err := smtp.SendMail(addr, auth, s.cfg.Username, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}
