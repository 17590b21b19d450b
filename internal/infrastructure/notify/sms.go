package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jubilee-retail/backoffice/internal/domain/identity"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/config"
)

// SMSSender dispatches one-time codes through an HTTP SMS gateway
type SMSSender struct {
	client     *http.Client
	gatewayURL string
	apiKey     string
	senderID   string
}

// NewSMSSender creates a gateway-backed OTP sender
func NewSMSSender(cfg config.SMSConfig) *SMSSender {
	return &SMSSender{
		client:     &http.Client{Timeout: cfg.Timeout},
		gatewayURL: cfg.GatewayURL,
		apiKey:     cfg.APIKey,
		senderID:   cfg.SenderID,
	}
}

// Channel implements Sender
func (s *SMSSender) Channel() identity.OtpChannel {
	return identity.OtpChannelSMS
}

type smsRequest struct {
	To       string `json:"to"`
	SenderID string `json:"sender_id"`
	Message  string `json:"message"`
}

// Send implements Sender
func (s *SMSSender) Send(ctx context.Context, msg OtpMessage) error {
	payload, err := json.Marshal(smsRequest{
		To:       msg.Recipient,
		SenderID: s.senderID,
		Message:  fmt.Sprintf("Jubilee Retail code: %s. Expires in 5 minutes.", msg.Code),
	})
	if err != nil {
		return fmt.Errorf("failed to encode SMS request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gatewayURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call SMS gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("SMS gateway returned status %d", resp.StatusCode)
	}
	return nil
}
