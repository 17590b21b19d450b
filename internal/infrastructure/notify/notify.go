package notify

import (
	"context"

	"github.com/jubilee-retail/backoffice/internal/domain/identity"
)

// OtpMessage is one code dispatch to a recipient
type OtpMessage struct {
	Recipient string // Email address or phone number, per channel
	Username  string
	Code      string
}

// Sender dispatches one-time codes over a single channel
type Sender interface {
	Channel() identity.OtpChannel
	Send(ctx context.Context, msg OtpMessage) error
}

// Dispatcher routes an OTP to the sender registered for its channel
type Dispatcher struct {
	senders map[identity.OtpChannel]Sender
}

// NewDispatcher creates a dispatcher over the given senders. A later
// sender for the same channel replaces an earlier one.
func NewDispatcher(senders ...Sender) *Dispatcher {
	d := &Dispatcher{senders: make(map[identity.OtpChannel]Sender)}
	for _, s := range senders {
		d.senders[s.Channel()] = s
	}
	return d
}

// Send dispatches the message on the requested channel
func (d *Dispatcher) Send(ctx context.Context, channel identity.OtpChannel, msg OtpMessage) error {
	sender, ok := d.senders[channel]
	if !ok {
		return ErrChannelNotConfigured
	}
	return sender.Send(ctx, msg)
}
