package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/jubilee-retail/backoffice/internal/domain/identity"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/config"
	"gopkg.in/gomail.v2"
)

// ErrChannelNotConfigured is returned when no sender serves the
// requested channel
var ErrChannelNotConfigured = errors.New("no sender configured for channel")

// EmailSender dispatches one-time codes over SMTP
type EmailSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailSender creates an SMTP-backed OTP sender
func NewEmailSender(cfg config.MailConfig) *EmailSender {
	return &EmailSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Channel implements Sender
func (s *EmailSender) Channel() identity.OtpChannel {
	return identity.OtpChannelEmail
}

// Send implements Sender
func (s *EmailSender) Send(ctx context.Context, msg OtpMessage) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.Recipient)
	m.SetHeader("Subject", "Your Jubilee Retail verification code")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nYour verification code is %s. It expires in 5 minutes.\n\nIf you did not request this code, contact your administrator.\n",
		msg.Username, msg.Code))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	return nil
}
