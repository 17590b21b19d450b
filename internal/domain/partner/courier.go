package partner

import (
	"strings"

	"github.com/jubilee-retail/backoffice/internal/domain/shared"
)

// Courier is a delivery service used to ship issued policy documents.
// TrackingURL is a template; "{tracking}" is replaced with the consignment
// number when building the public tracking link.
type Courier struct {
	shared.BaseEntity
	Name        string
	ServiceCode string
	TrackingURL string
	IsActive    bool
}

// NewCourier creates a new active courier
func NewCourier(name, serviceCode string) (*Courier, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateCode(serviceCode); err != nil {
		return nil, err
	}
	return &Courier{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        strings.TrimSpace(name),
		ServiceCode: normalizeCode(serviceCode),
		IsActive:    true,
	}, nil
}

// Rename changes the courier display name
func (c *Courier) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(name)
	c.Touch()
	return nil
}

// SetTrackingURL sets the tracking link template
func (c *Courier) SetTrackingURL(url string) error {
	if len(url) > 500 {
		return shared.NewDomainError("INVALID_TRACKING_URL", "Tracking URL cannot exceed 500 characters")
	}
	c.TrackingURL = strings.TrimSpace(url)
	c.Touch()
	return nil
}

// TrackingLink builds the public tracking link for a consignment number.
// Returns empty if no template is configured.
func (c *Courier) TrackingLink(trackingNo string) string {
	if c.TrackingURL == "" || trackingNo == "" {
		return ""
	}
	return strings.ReplaceAll(c.TrackingURL, "{tracking}", trackingNo)
}

// Activate enables the courier
func (c *Courier) Activate() {
	c.IsActive = true
	c.Touch()
}

// Deactivate disables the courier for new shipments
func (c *Courier) Deactivate() {
	c.IsActive = false
	c.Touch()
}
