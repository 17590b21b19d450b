package catalog

import (
	"strings"
	"time"

	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DiscountType selects how a coupon's value is applied
type DiscountType string

const (
	DiscountPercent DiscountType = "percent" // Value is a percentage of the premium
	DiscountFixed   DiscountType = "fixed"   // Value is a fixed amount off
)

// Coupon is a discount voucher applied at order creation
type Coupon struct {
	shared.BaseEntity
	Code           string
	Type           DiscountType
	Value          decimal.Decimal
	ValidFrom      time.Time
	ValidUntil     time.Time
	MaxRedemptions int // 0 means unlimited
	Redemptions    int
	IsActive       bool
}

// NewCoupon creates a new active coupon
func NewCoupon(code string, discountType DiscountType, value decimal.Decimal, validFrom, validUntil time.Time, maxRedemptions int) (*Coupon, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	switch discountType {
	case DiscountPercent:
		if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(100)) {
			return nil, shared.NewDomainError("INVALID_DISCOUNT", "Percent discount must be between 0 and 100")
		}
	case DiscountFixed:
		if value.IsNegative() {
			return nil, shared.NewDomainError("INVALID_DISCOUNT", "Fixed discount cannot be negative")
		}
	default:
		return nil, shared.NewDomainError("INVALID_DISCOUNT_TYPE", "Discount type must be percent or fixed")
	}
	if !validUntil.After(validFrom) {
		return nil, shared.NewDomainError("INVALID_VALIDITY", "Valid-until must be after valid-from")
	}
	if maxRedemptions < 0 {
		return nil, shared.NewDomainError("INVALID_MAX_REDEMPTIONS", "Max redemptions cannot be negative")
	}
	return &Coupon{
		BaseEntity:     shared.NewBaseEntity(),
		Code:           strings.ToUpper(strings.TrimSpace(code)),
		Type:           discountType,
		Value:          value,
		ValidFrom:      validFrom,
		ValidUntil:     validUntil,
		MaxRedemptions: maxRedemptions,
		IsActive:       true,
	}, nil
}

// CanRedeem checks whether the coupon is usable at the given time
func (c *Coupon) CanRedeem(at time.Time) error {
	if !c.IsActive {
		return shared.ErrCouponNotActive
	}
	if at.Before(c.ValidFrom) || at.After(c.ValidUntil) {
		return shared.ErrCouponNotActive
	}
	if c.MaxRedemptions > 0 && c.Redemptions >= c.MaxRedemptions {
		return shared.ErrCouponExhausted
	}
	return nil
}

// Redeem consumes one redemption
func (c *Coupon) Redeem(at time.Time) error {
	if err := c.CanRedeem(at); err != nil {
		return err
	}
	c.Redemptions++
	c.Touch()
	return nil
}

// Release returns a redemption consumed by an order that was cancelled
// before issue
func (c *Coupon) Release() {
	if c.Redemptions == 0 {
		return
	}
	c.Redemptions--
	c.Touch()
}

// DiscountOn computes the discount amount for a premium. The result is
// capped at the premium so totals never go negative.
func (c *Coupon) DiscountOn(premium decimal.Decimal) decimal.Decimal {
	var discount decimal.Decimal
	switch c.Type {
	case DiscountPercent:
		discount = premium.Mul(c.Value).Div(decimal.NewFromInt(100)).Round(2)
	case DiscountFixed:
		discount = c.Value
	}
	if discount.GreaterThan(premium) {
		return premium
	}
	return discount
}

// SetValidity updates the validity window
func (c *Coupon) SetValidity(from, until time.Time) error {
	if !until.After(from) {
		return shared.NewDomainError("INVALID_VALIDITY", "Valid-until must be after valid-from")
	}
	c.ValidFrom = from
	c.ValidUntil = until
	c.Touch()
	return nil
}

// Activate enables the coupon
func (c *Coupon) Activate() {
	c.IsActive = true
	c.Touch()
}

// Deactivate disables the coupon
func (c *Coupon) Deactivate() {
	c.IsActive = false
	c.Touch()
}
