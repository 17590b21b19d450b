package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("hlt-basic", "Health Basic", CategoryHealth)
	require.NoError(t, err)
	assert.Equal(t, "HLT-BASIC", p.Code)
	assert.True(t, p.IsActive)

	_, err = NewProduct("HLT", "Health", "crypto")
	assert.Error(t, err, "unknown category")
}

func TestNewPlan(t *testing.T) {
	productID := uuid.New()
	plan, err := NewPlan(productID, "hlt-sil", "Silver", decimal.NewFromInt(5000), decimal.NewFromInt(500000), 12)
	require.NoError(t, err)
	assert.Equal(t, "HLT-SIL", plan.Code)
	assert.True(t, plan.Premium.Equal(decimal.NewFromInt(5000)))

	_, err = NewPlan(uuid.Nil, "X", "Silver", decimal.NewFromInt(5000), decimal.Zero, 12)
	assert.Error(t, err)
	_, err = NewPlan(productID, "X", "Silver", decimal.Zero, decimal.Zero, 12)
	assert.Error(t, err, "zero premium")
	_, err = NewPlan(productID, "X", "Silver", decimal.NewFromInt(5000), decimal.Zero, 0)
	assert.Error(t, err, "zero duration")
}

func TestPlan_Reprice(t *testing.T) {
	plan, _ := NewPlan(uuid.New(), "X", "Silver", decimal.NewFromInt(5000), decimal.NewFromInt(500000), 12)
	require.NoError(t, plan.Reprice(decimal.NewFromInt(6000), decimal.NewFromInt(600000)))
	assert.True(t, plan.Premium.Equal(decimal.NewFromInt(6000)))
	assert.Error(t, plan.Reprice(decimal.NewFromInt(-1), decimal.Zero))
}

func validCoupon(t *testing.T, dt DiscountType, value decimal.Decimal, max int) *Coupon {
	t.Helper()
	c, err := NewCoupon("SAVE10", dt, value,
		time.Now().Add(-time.Hour), time.Now().Add(24*time.Hour), max)
	require.NoError(t, err)
	return c
}

func TestNewCoupon_Validation(t *testing.T) {
	now := time.Now()

	_, err := NewCoupon("SAVE10", DiscountPercent, decimal.NewFromInt(150), now, now.Add(time.Hour), 0)
	assert.Error(t, err, "percent over 100")

	_, err = NewCoupon("SAVE10", DiscountFixed, decimal.NewFromInt(-5), now, now.Add(time.Hour), 0)
	assert.Error(t, err, "negative fixed discount")

	_, err = NewCoupon("SAVE10", DiscountPercent, decimal.NewFromInt(10), now.Add(time.Hour), now, 0)
	assert.Error(t, err, "inverted validity window")

	_, err = NewCoupon("SAVE10", "lucky", decimal.NewFromInt(10), now, now.Add(time.Hour), 0)
	assert.Error(t, err, "unknown discount type")
}

func TestCoupon_Redeem(t *testing.T) {
	c := validCoupon(t, DiscountPercent, decimal.NewFromInt(10), 2)

	require.NoError(t, c.Redeem(time.Now()))
	require.NoError(t, c.Redeem(time.Now()))
	assert.ErrorIs(t, c.Redeem(time.Now()), shared.ErrCouponExhausted)
}

func TestCoupon_ReleaseReturnsRedemption(t *testing.T) {
	c := validCoupon(t, DiscountPercent, decimal.NewFromInt(10), 1)

	require.NoError(t, c.Redeem(time.Now()))
	assert.ErrorIs(t, c.CanRedeem(time.Now()), shared.ErrCouponExhausted)

	c.Release()
	assert.Equal(t, 0, c.Redemptions)
	assert.NoError(t, c.CanRedeem(time.Now()))

	// Never goes below zero
	c.Release()
	assert.Equal(t, 0, c.Redemptions)
}

func TestCoupon_RedeemOutsideWindow(t *testing.T) {
	c := validCoupon(t, DiscountPercent, decimal.NewFromInt(10), 0)

	assert.ErrorIs(t, c.CanRedeem(time.Now().Add(48*time.Hour)), shared.ErrCouponNotActive)
	assert.ErrorIs(t, c.CanRedeem(time.Now().Add(-2*time.Hour)), shared.ErrCouponNotActive)

	c.Deactivate()
	assert.ErrorIs(t, c.CanRedeem(time.Now()), shared.ErrCouponNotActive)
}

func TestCoupon_UnlimitedRedemptions(t *testing.T) {
	c := validCoupon(t, DiscountFixed, decimal.NewFromInt(100), 0)
	for i := 0; i < 10; i++ {
		require.NoError(t, c.Redeem(time.Now()))
	}
	assert.Equal(t, 10, c.Redemptions)
}

func TestCoupon_DiscountOn(t *testing.T) {
	percent := validCoupon(t, DiscountPercent, decimal.NewFromInt(10), 0)
	assert.True(t, percent.DiscountOn(decimal.NewFromInt(5000)).Equal(decimal.NewFromInt(500)))

	fixed := validCoupon(t, DiscountFixed, decimal.NewFromInt(750), 0)
	assert.True(t, fixed.DiscountOn(decimal.NewFromInt(5000)).Equal(decimal.NewFromInt(750)))

	// Discount is capped at the premium
	big := validCoupon(t, DiscountFixed, decimal.NewFromInt(9000), 0)
	assert.True(t, big.DiscountOn(decimal.NewFromInt(5000)).Equal(decimal.NewFromInt(5000)))
}
