package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	BaseModel
	Code        string                  `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string                  `gorm:"type:varchar(200);not null"`
	Category    catalog.ProductCategory `gorm:"type:varchar(20);not null;index"`
	Description string                  `gorm:"type:text"`
	IsActive    bool                    `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:  m.BaseModel.ToDomain(),
		Code:        m.Code,
		Name:        m.Name,
		Category:    m.Category,
		Description: m.Description,
		IsActive:    m.IsActive,
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Code:        p.Code,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		IsActive:    p.IsActive,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// PlanModel is the persistence model for the Plan domain entity.
type PlanModel struct {
	BaseModel
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_plan_product_code,priority:1"`
	Code           string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_plan_product_code,priority:2"`
	Name           string          `gorm:"type:varchar(200);not null"`
	Premium        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CoverAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DurationMonths int             `gorm:"not null;default:12"`
	IsActive       bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (PlanModel) TableName() string {
	return "plans"
}

// ToDomain converts the persistence model to a domain Plan entity.
func (m *PlanModel) ToDomain() *catalog.Plan {
	return &catalog.Plan{
		BaseEntity:     m.BaseModel.ToDomain(),
		ProductID:      m.ProductID,
		Code:           m.Code,
		Name:           m.Name,
		Premium:        m.Premium,
		CoverAmount:    m.CoverAmount,
		DurationMonths: m.DurationMonths,
		IsActive:       m.IsActive,
	}
}

// PlanModelFromDomain creates a new persistence model from a domain Plan entity.
func PlanModelFromDomain(p *catalog.Plan) *PlanModel {
	m := &PlanModel{
		ProductID:      p.ProductID,
		Code:           p.Code,
		Name:           p.Name,
		Premium:        p.Premium,
		CoverAmount:    p.CoverAmount,
		DurationMonths: p.DurationMonths,
		IsActive:       p.IsActive,
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// CouponModel is the persistence model for the Coupon domain entity.
type CouponModel struct {
	BaseModel
	Code           string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	Type           catalog.DiscountType `gorm:"type:varchar(20);not null"`
	Value          decimal.Decimal      `gorm:"type:decimal(18,4);not null"`
	ValidFrom      time.Time            `gorm:"not null"`
	ValidUntil     time.Time            `gorm:"not null"`
	MaxRedemptions int                  `gorm:"not null;default:0"`
	Redemptions    int                  `gorm:"not null;default:0"`
	IsActive       bool                 `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CouponModel) TableName() string {
	return "coupons"
}

// ToDomain converts the persistence model to a domain Coupon entity.
func (m *CouponModel) ToDomain() *catalog.Coupon {
	return &catalog.Coupon{
		BaseEntity:     m.BaseModel.ToDomain(),
		Code:           m.Code,
		Type:           m.Type,
		Value:          m.Value,
		ValidFrom:      m.ValidFrom,
		ValidUntil:     m.ValidUntil,
		MaxRedemptions: m.MaxRedemptions,
		Redemptions:    m.Redemptions,
		IsActive:       m.IsActive,
	}
}

// CouponModelFromDomain creates a new persistence model from a domain Coupon entity.
func CouponModelFromDomain(c *catalog.Coupon) *CouponModel {
	m := &CouponModel{
		Code:           c.Code,
		Type:           c.Type,
		Value:          c.Value,
		ValidFrom:      c.ValidFrom,
		ValidUntil:     c.ValidUntil,
		MaxRedemptions: c.MaxRedemptions,
		Redemptions:    c.Redemptions,
		IsActive:       c.IsActive,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}
