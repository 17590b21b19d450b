package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Plan is a sellable price point of a product
type Plan struct {
	shared.BaseEntity
	ProductID      uuid.UUID
	Code           string
	Name           string
	Premium        decimal.Decimal // Gross premium per policy term
	CoverAmount    decimal.Decimal
	DurationMonths int
	IsActive       bool
}

// NewPlan creates a new active plan under a product
func NewPlan(productID uuid.UUID, code, name string, premium, coverAmount decimal.Decimal, durationMonths int) (*Plan, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if premium.IsNegative() || premium.IsZero() {
		return nil, shared.NewDomainError("INVALID_PREMIUM", "Premium must be greater than zero")
	}
	if coverAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COVER_AMOUNT", "Cover amount cannot be negative")
	}
	if durationMonths < 1 || durationMonths > 120 {
		return nil, shared.NewDomainError("INVALID_DURATION", "Duration must be between 1 and 120 months")
	}
	return &Plan{
		BaseEntity:     shared.NewBaseEntity(),
		ProductID:      productID,
		Code:           normalizeCode(code),
		Name:           strings.TrimSpace(name),
		Premium:        premium,
		CoverAmount:    coverAmount,
		DurationMonths: durationMonths,
		IsActive:       true,
	}, nil
}

// Rename changes the plan display name
func (p *Plan) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	p.Name = strings.TrimSpace(name)
	p.Touch()
	return nil
}

// Reprice sets a new premium and cover amount
func (p *Plan) Reprice(premium, coverAmount decimal.Decimal) error {
	if premium.IsNegative() || premium.IsZero() {
		return shared.NewDomainError("INVALID_PREMIUM", "Premium must be greater than zero")
	}
	if coverAmount.IsNegative() {
		return shared.NewDomainError("INVALID_COVER_AMOUNT", "Cover amount cannot be negative")
	}
	p.Premium = premium
	p.CoverAmount = coverAmount
	p.Touch()
	return nil
}

// SetDuration changes the policy term length
func (p *Plan) SetDuration(months int) error {
	if months < 1 || months > 120 {
		return shared.NewDomainError("INVALID_DURATION", "Duration must be between 1 and 120 months")
	}
	p.DurationMonths = months
	p.Touch()
	return nil
}

// Activate enables the plan for sale
func (p *Plan) Activate() {
	p.IsActive = true
	p.Touch()
}

// Deactivate withdraws the plan from sale
func (p *Plan) Deactivate() {
	p.IsActive = false
	p.Touch()
}
