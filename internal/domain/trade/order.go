package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a policy order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusApproved  OrderStatus = "approved"
	OrderStatusIssued    OrderStatus = "issued"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// AllOrderStatuses lists the lifecycle states in progression order
var AllOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusApproved,
	OrderStatusIssued,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// validTransitions encodes the lifecycle:
// pending -> approved -> issued -> delivered, with cancellation allowed
// any time before delivery.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:  {OrderStatusApproved, OrderStatusCancelled},
	OrderStatusApproved: {OrderStatusIssued, OrderStatusCancelled},
	OrderStatusIssued:   {OrderStatusDelivered, OrderStatusCancelled},
}

// Order is a policy sale: a client buying a plan through an agent,
// optionally discounted by a coupon and shipped by a courier.
type Order struct {
	shared.BaseEntity
	OrderNo      string
	PolicyNo     string // Assigned when the order is issued
	ClientID     uuid.UUID
	PlanID       uuid.UUID
	AgentID      uuid.UUID
	CouponID     *uuid.UUID
	CourierID    *uuid.UUID
	TrackingNo   string
	Premium      decimal.Decimal
	Discount     decimal.Decimal
	Total        decimal.Decimal
	Status       OrderStatus
	StatusReason string
	ApprovedAt   *time.Time
	IssuedAt     *time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time
	CreatedByID  uuid.UUID
}

// NewOrder creates a pending order. Premium comes from the plan at the
// time of sale; discount is precomputed from the coupon and must not
// exceed the premium.
func NewOrder(clientID, planID, agentID, createdByID uuid.UUID, premium, discount decimal.Decimal) (*Order, error) {
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT_ID", "Client ID cannot be empty")
	}
	if planID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PLAN_ID", "Plan ID cannot be empty")
	}
	if agentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AGENT_ID", "Agent ID cannot be empty")
	}
	if premium.IsNegative() || premium.IsZero() {
		return nil, shared.NewDomainError("INVALID_PREMIUM", "Premium must be greater than zero")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if discount.GreaterThan(premium) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed the premium")
	}

	base := shared.NewBaseEntity()
	return &Order{
		BaseEntity:  base,
		OrderNo:     generateOrderNo(base.ID, base.CreatedAt),
		ClientID:    clientID,
		PlanID:      planID,
		AgentID:     agentID,
		Premium:     premium,
		Discount:    discount,
		Total:       premium.Sub(discount),
		Status:      OrderStatusPending,
		CreatedByID: createdByID,
	}, nil
}

// SetCoupon records the coupon applied at creation
func (o *Order) SetCoupon(couponID uuid.UUID) {
	o.CouponID = &couponID
	o.Touch()
}

// CanTransitionTo checks whether the lifecycle allows the move
func (o *Order) CanTransitionTo(target OrderStatus) bool {
	for _, s := range validTransitions[o.Status] {
		if s == target {
			return true
		}
	}
	return false
}

// Approve moves a pending order to approved
func (o *Order) Approve() error {
	if !o.CanTransitionTo(OrderStatusApproved) {
		return transitionError(o.Status, OrderStatusApproved)
	}
	o.Status = OrderStatusApproved
	now := time.Now()
	o.ApprovedAt = &now
	o.Touch()
	return nil
}

// Issue moves an approved order to issued and assigns the policy number.
// The policy number is permanent once assigned.
func (o *Order) Issue(policyNo string) error {
	if !o.CanTransitionTo(OrderStatusIssued) {
		return transitionError(o.Status, OrderStatusIssued)
	}
	policyNo = strings.TrimSpace(policyNo)
	if policyNo == "" {
		return shared.NewDomainError("INVALID_POLICY_NO", "Policy number cannot be empty")
	}
	o.Status = OrderStatusIssued
	o.PolicyNo = policyNo
	now := time.Now()
	o.IssuedAt = &now
	o.Touch()
	return nil
}

// Ship records the courier and consignment number for an issued order
func (o *Order) Ship(courierID uuid.UUID, trackingNo string) error {
	if o.Status != OrderStatusIssued {
		return shared.NewDomainError("INVALID_STATE", "Only issued orders can be shipped")
	}
	if courierID == uuid.Nil {
		return shared.NewDomainError("INVALID_COURIER_ID", "Courier ID cannot be empty")
	}
	o.CourierID = &courierID
	o.TrackingNo = strings.TrimSpace(trackingNo)
	o.Touch()
	return nil
}

// MarkDelivered completes the lifecycle
func (o *Order) MarkDelivered() error {
	if !o.CanTransitionTo(OrderStatusDelivered) {
		return transitionError(o.Status, OrderStatusDelivered)
	}
	o.Status = OrderStatusDelivered
	now := time.Now()
	o.DeliveredAt = &now
	o.Touch()
	return nil
}

// Cancel aborts the order with a reason. Delivered orders cannot be
// cancelled.
func (o *Order) Cancel(reason string) error {
	if !o.CanTransitionTo(OrderStatusCancelled) {
		return transitionError(o.Status, OrderStatusCancelled)
	}
	o.Status = OrderStatusCancelled
	o.StatusReason = strings.TrimSpace(reason)
	now := time.Now()
	o.CancelledAt = &now
	o.Touch()
	return nil
}

func transitionError(from, to OrderStatus) error {
	return shared.NewDomainError("INVALID_STATE",
		fmt.Sprintf("Cannot move order from %s to %s", from, to))
}

// generateOrderNo derives a human-readable order number from the entity
// id and creation time, e.g. ORD-20260829-1A2B3C4D.
func generateOrderNo(id uuid.UUID, at time.Time) string {
	short := strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", at.Format("20060102"), short)
}
