package identity

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
)

// OTP flow constants. The pending-login window and the code share one
// 300-second TTL measured from credential validation.
const (
	OtpTTL         = 300 * time.Second
	OtpCodeLength  = 6
	OtpMaxAttempts = 5
	OtpResendAfter = 60 * time.Second
)

// OtpChannel is the delivery channel for a one-time code
type OtpChannel string

const (
	OtpChannelEmail OtpChannel = "email"
	OtpChannelSMS   OtpChannel = "sms"
)

// ParseOtpChannel validates a channel name
func ParseOtpChannel(s string) (OtpChannel, error) {
	switch OtpChannel(s) {
	case OtpChannelEmail, OtpChannelSMS:
		return OtpChannel(s), nil
	default:
		return "", shared.NewDomainError("INVALID_OTP_CHANNEL", "Channel must be email or sms")
	}
}

// PendingLogin is the state between a successful credential check and a
// successful OTP verification. It carries everything the verify step
// needs so the user record is not re-read mid-flow.
type PendingLogin struct {
	Reference string     `json:"reference"`
	UserID    uuid.UUID  `json:"user_id"`
	Username  string     `json:"username"`
	CodeHash  string     `json:"code_hash,omitempty"`
	Channel   OtpChannel `json:"channel,omitempty"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
	Attempts  int        `json:"attempts"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewPendingLogin starts the OTP window for a user
func NewPendingLogin(userID uuid.UUID, username string) (*PendingLogin, error) {
	ref, err := generateReference()
	if err != nil {
		return nil, shared.NewDomainError("OTP_REFERENCE_ERROR", "Failed to generate pending reference")
	}
	return &PendingLogin{
		Reference: ref,
		UserID:    userID,
		Username:  username,
		CreatedAt: time.Now(),
	}, nil
}

// AttachCode records the hash of a freshly generated code and the channel
// it was dispatched on. A resend inside the cooldown window is rejected.
func (p *PendingLogin) AttachCode(code string, channel OtpChannel) error {
	if p.SentAt != nil && time.Since(*p.SentAt) < OtpResendAfter {
		return shared.NewDomainError("OTP_RESEND_TOO_SOON", "A code was sent recently, wait before requesting another")
	}
	p.CodeHash = HashOtpCode(code)
	p.Channel = channel
	now := time.Now()
	p.SentAt = &now
	p.Attempts = 0
	return nil
}

// Verify checks a submitted code against the stored hash. The attempt
// counter only advances on well-formed submissions.
func (p *PendingLogin) Verify(code string) error {
	if p.CodeHash == "" {
		return shared.NewDomainError("OTP_NOT_SENT", "No code has been sent for this login")
	}
	if !otpCodeRegex.MatchString(code) {
		return shared.ErrOtpInvalid
	}
	if p.Attempts >= OtpMaxAttempts {
		return shared.NewDomainError("OTP_ATTEMPTS_EXCEEDED", "Too many incorrect codes, log in again")
	}
	p.Attempts++
	if subtle.ConstantTimeCompare([]byte(HashOtpCode(code)), []byte(p.CodeHash)) != 1 {
		return shared.ErrOtpInvalid
	}
	return nil
}

var otpCodeRegex = regexp.MustCompile(`^[0-9]{6}$`)

// GenerateOtpCode returns a random 6-digit code, zero-padded
func GenerateOtpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// HashOtpCode returns the hex SHA-256 of a code. Codes are short-lived
// and rate-limited, so a fast hash is acceptable here.
func HashOtpCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func generateReference() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
