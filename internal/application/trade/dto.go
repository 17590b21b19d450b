package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderDTO is the order shape returned to clients
type OrderDTO struct {
	ID           uuid.UUID       `json:"id"`
	OrderNo      string          `json:"order_no"`
	PolicyNo     string          `json:"policy_no,omitempty"`
	ClientID     uuid.UUID       `json:"client_id"`
	PlanID       uuid.UUID       `json:"plan_id"`
	AgentID      uuid.UUID       `json:"agent_id"`
	CouponID     *uuid.UUID      `json:"coupon_id,omitempty"`
	CourierID    *uuid.UUID      `json:"courier_id,omitempty"`
	TrackingNo   string          `json:"tracking_no,omitempty"`
	Premium      decimal.Decimal `json:"premium"`
	Discount     decimal.Decimal `json:"discount"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	StatusReason string          `json:"status_reason,omitempty"`
	ApprovedAt   *time.Time      `json:"approved_at,omitempty"`
	IssuedAt     *time.Time      `json:"issued_at,omitempty"`
	DeliveredAt  *time.Time      `json:"delivered_at,omitempty"`
	CancelledAt  *time.Time      `json:"cancelled_at,omitempty"`
	CreatedByID  uuid.UUID       `json:"created_by_id"`
	CreatedAt    time.Time       `json:"created_at"`
}

func ToOrderDTO(o *trade.Order) OrderDTO {
	return OrderDTO{
		ID: o.ID, OrderNo: o.OrderNo, PolicyNo: o.PolicyNo,
		ClientID: o.ClientID, PlanID: o.PlanID, AgentID: o.AgentID,
		CouponID: o.CouponID, CourierID: o.CourierID, TrackingNo: o.TrackingNo,
		Premium: o.Premium, Discount: o.Discount, Total: o.Total,
		Status: string(o.Status), StatusReason: o.StatusReason,
		ApprovedAt: o.ApprovedAt, IssuedAt: o.IssuedAt,
		DeliveredAt: o.DeliveredAt, CancelledAt: o.CancelledAt,
		CreatedByID: o.CreatedByID, CreatedAt: o.CreatedAt,
	}
}

// CreateOrderInput describes a new policy sale. CouponCode is optional;
// the premium always comes from the plan, never from the caller.
type CreateOrderInput struct {
	ClientID   uuid.UUID
	PlanID     uuid.UUID
	AgentID    uuid.UUID
	CouponCode string
}

// ShipOrderInput records courier and consignment details
type ShipOrderInput struct {
	CourierID  uuid.UUID
	TrackingNo string
}

// ListOrdersInput is the order list query surface
type ListOrdersInput struct {
	Status   string
	ClientID *uuid.UUID
	AgentID  *uuid.UUID
	From     *time.Time
	To       *time.Time
}
