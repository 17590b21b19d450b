package notify

import (
	"context"

	"github.com/jubilee-retail/backoffice/internal/domain/identity"
	"go.uber.org/zap"
)

// LogSender writes codes to the log instead of dispatching them.
// Development use only.
type LogSender struct {
	channel identity.OtpChannel
	logger  *zap.Logger
}

// NewLogSender creates a log-only sender for the given channel
func NewLogSender(channel identity.OtpChannel, logger *zap.Logger) *LogSender {
	return &LogSender{channel: channel, logger: logger.Named("notify")}
}

// Channel implements Sender
func (s *LogSender) Channel() identity.OtpChannel {
	return s.channel
}

// Send implements Sender
func (s *LogSender) Send(ctx context.Context, msg OtpMessage) error {
	s.logger.Info("OTP dispatch (log only)",
		zap.String("channel", string(s.channel)),
		zap.String("recipient", msg.Recipient),
		zap.String("code", msg.Code),
	)
	return nil
}
