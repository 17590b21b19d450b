package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order domain entity.
type OrderModel struct {
	BaseModel
	OrderNo      string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	PolicyNo     string            `gorm:"type:varchar(50);index"`
	ClientID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	PlanID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	AgentID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	CouponID     *uuid.UUID        `gorm:"type:uuid"`
	CourierID    *uuid.UUID        `gorm:"type:uuid"`
	TrackingNo   string            `gorm:"type:varchar(100)"`
	Premium      decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Discount     decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	Total        decimal.Decimal   `gorm:"type:decimal(18,4);not null"`
	Status       trade.OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	StatusReason string            `gorm:"type:varchar(500)"`
	ApprovedAt   *time.Time
	IssuedAt     *time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time
	CreatedByID  uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *trade.Order {
	return &trade.Order{
		BaseEntity:   m.BaseModel.ToDomain(),
		OrderNo:      m.OrderNo,
		PolicyNo:     m.PolicyNo,
		ClientID:     m.ClientID,
		PlanID:       m.PlanID,
		AgentID:      m.AgentID,
		CouponID:     m.CouponID,
		CourierID:    m.CourierID,
		TrackingNo:   m.TrackingNo,
		Premium:      m.Premium,
		Discount:     m.Discount,
		Total:        m.Total,
		Status:       m.Status,
		StatusReason: m.StatusReason,
		ApprovedAt:   m.ApprovedAt,
		IssuedAt:     m.IssuedAt,
		DeliveredAt:  m.DeliveredAt,
		CancelledAt:  m.CancelledAt,
		CreatedByID:  m.CreatedByID,
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{
		OrderNo:      o.OrderNo,
		PolicyNo:     o.PolicyNo,
		ClientID:     o.ClientID,
		PlanID:       o.PlanID,
		AgentID:      o.AgentID,
		CouponID:     o.CouponID,
		CourierID:    o.CourierID,
		TrackingNo:   o.TrackingNo,
		Premium:      o.Premium,
		Discount:     o.Discount,
		Total:        o.Total,
		Status:       o.Status,
		StatusReason: o.StatusReason,
		ApprovedAt:   o.ApprovedAt,
		IssuedAt:     o.IssuedAt,
		DeliveredAt:  o.DeliveredAt,
		CancelledAt:  o.CancelledAt,
		CreatedByID:  o.CreatedByID,
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	return m
}

// PolicySequenceModel backs the issue-time policy number counter.
// A single row is incremented atomically inside a transaction.
type PolicySequenceModel struct {
	ID        int   `gorm:"primary_key"`
	NextValue int64 `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (PolicySequenceModel) TableName() string {
	return "policy_sequences"
}
