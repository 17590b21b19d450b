package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductDTO is the product shape returned to clients
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToProductDTO(p *catalog.Product) ProductDTO {
	return ProductDTO{
		ID: p.ID, Code: p.Code, Name: p.Name, Category: string(p.Category),
		Description: p.Description, IsActive: p.IsActive, CreatedAt: p.CreatedAt,
	}
}

// PlanDTO is the plan shape returned to clients
type PlanDTO struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Premium        decimal.Decimal `json:"premium"`
	CoverAmount    decimal.Decimal `json:"cover_amount"`
	DurationMonths int             `json:"duration_months"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
}

func ToPlanDTO(p *catalog.Plan) PlanDTO {
	return PlanDTO{
		ID: p.ID, ProductID: p.ProductID, Code: p.Code, Name: p.Name,
		Premium: p.Premium, CoverAmount: p.CoverAmount,
		DurationMonths: p.DurationMonths, IsActive: p.IsActive, CreatedAt: p.CreatedAt,
	}
}

// CouponDTO is the coupon shape returned to clients
type CouponDTO struct {
	ID             uuid.UUID       `json:"id"`
	Code           string          `json:"code"`
	Type           string          `json:"type"`
	Value          decimal.Decimal `json:"value"`
	ValidFrom      time.Time       `json:"valid_from"`
	ValidUntil     time.Time       `json:"valid_until"`
	MaxRedemptions int             `json:"max_redemptions"`
	Redemptions    int             `json:"redemptions"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
}

func ToCouponDTO(c *catalog.Coupon) CouponDTO {
	return CouponDTO{
		ID: c.ID, Code: c.Code, Type: string(c.Type), Value: c.Value,
		ValidFrom: c.ValidFrom, ValidUntil: c.ValidUntil,
		MaxRedemptions: c.MaxRedemptions, Redemptions: c.Redemptions,
		IsActive: c.IsActive, CreatedAt: c.CreatedAt,
	}
}

// Inputs

type ProductInput struct {
	Code        string
	Name        string
	Category    string
	Description string
}

type PlanInput struct {
	ProductID      uuid.UUID
	Code           string
	Name           string
	Premium        decimal.Decimal
	CoverAmount    decimal.Decimal
	DurationMonths int
}

type CouponInput struct {
	Code           string
	Type           string
	Value          decimal.Decimal
	ValidFrom      time.Time
	ValidUntil     time.Time
	MaxRedemptions int
}
