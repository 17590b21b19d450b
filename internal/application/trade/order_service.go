package trade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/catalog"
	"github.com/jubilee-retail/backoffice/internal/domain/partner"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/jubilee-retail/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService drives the policy order lifecycle:
// pending -> approved -> issued -> delivered, with cancellation allowed
// at any point before delivery.
type OrderService struct {
	orderRepo  trade.OrderRepository
	clientRepo partner.ClientRepository
	agentRepo  partner.AgentRepository
	planRepo   catalog.PlanRepository
	couponRepo catalog.CouponRepository
	tx         shared.TransactionManager
	logger     *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo trade.OrderRepository,
	clientRepo partner.ClientRepository,
	agentRepo partner.AgentRepository,
	planRepo catalog.PlanRepository,
	couponRepo catalog.CouponRepository,
	tx shared.TransactionManager,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:  orderRepo,
		clientRepo: clientRepo,
		agentRepo:  agentRepo,
		planRepo:   planRepo,
		couponRepo: couponRepo,
		tx:         tx,
		logger:     logger,
	}
}

// Create books a pending order. The premium is snapshotted from the plan
// and the discount, if a coupon code is supplied, is computed and the
// redemption consumed here.
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput, createdByID uuid.UUID) (OrderDTO, error) {
	client, err := s.clientRepo.FindByID(ctx, input.ClientID)
	if err != nil {
		return OrderDTO{}, shared.NewDomainError("CLIENT_NOT_FOUND", "Client does not exist")
	}
	if !client.IsActive {
		return OrderDTO{}, shared.ErrEntityInactive
	}
	agent, err := s.agentRepo.FindByID(ctx, input.AgentID)
	if err != nil {
		return OrderDTO{}, shared.NewDomainError("AGENT_NOT_FOUND", "Agent does not exist")
	}
	if !agent.IsActive {
		return OrderDTO{}, shared.ErrEntityInactive
	}
	plan, err := s.planRepo.FindByID(ctx, input.PlanID)
	if err != nil {
		return OrderDTO{}, shared.NewDomainError("PLAN_NOT_FOUND", "Plan does not exist")
	}
	if !plan.IsActive {
		return OrderDTO{}, shared.ErrEntityInactive
	}

	premium := plan.Premium
	discount := decimal.Zero

	var coupon *catalog.Coupon
	if code := strings.TrimSpace(input.CouponCode); code != "" {
		coupon, err = s.couponRepo.FindByCode(ctx, strings.ToUpper(code))
		if err != nil {
			return OrderDTO{}, shared.NewDomainError("COUPON_NOT_FOUND", "Coupon does not exist")
		}
		if err := coupon.Redeem(time.Now()); err != nil {
			return OrderDTO{}, err
		}
		discount = coupon.DiscountOn(premium)
	}

	order, err := trade.NewOrder(client.ID, plan.ID, agent.ID, createdByID, premium, discount)
	if err != nil {
		return OrderDTO{}, err
	}
	if coupon != nil {
		order.SetCoupon(coupon.ID)
	}

	// The coupon redemption and the order commit or roll back together
	err = s.tx.Execute(ctx, func(ctx context.Context) error {
		if coupon != nil {
			if err := s.couponRepo.Save(ctx, coupon); err != nil {
				return err
			}
		}
		return s.orderRepo.Save(ctx, order)
	})
	if err != nil {
		return OrderDTO{}, err
	}
	s.logger.Info("Order created",
		zap.String("order_no", order.OrderNo),
		zap.String("client_id", client.ID.String()),
		zap.String("total", order.Total.String()))
	return ToOrderDTO(order), nil
}

// Get returns one order
func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (OrderDTO, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return OrderDTO{}, shared.ErrNotFound
	}
	return ToOrderDTO(order), nil
}

// List returns a page of orders matching the filter
func (s *OrderService) List(ctx context.Context, input ListOrdersInput, filter shared.Filter) (shared.Paginated[OrderDTO], error) {
	orderFilter := trade.OrderFilter{
		Filter:   filter,
		ClientID: input.ClientID,
		AgentID:  input.AgentID,
		From:     input.From,
		To:       input.To,
	}
	if input.Status != "" {
		status, err := parseOrderStatus(input.Status)
		if err != nil {
			return shared.Paginated[OrderDTO]{}, err
		}
		orderFilter.Status = status
	}
	page, err := s.orderRepo.List(ctx, orderFilter)
	if err != nil {
		return shared.Paginated[OrderDTO]{}, err
	}
	dtos := make([]OrderDTO, len(page.Items))
	for i, o := range page.Items {
		dtos[i] = ToOrderDTO(o)
	}
	return shared.NewPaginated(dtos, page.Total, page.Page, page.PageSize), nil
}

// ListAll returns every order matching the criteria, for dataset views
// and exports
func (s *OrderService) ListAll(ctx context.Context, input ListOrdersInput) ([]OrderDTO, error) {
	return shared.CollectAll(func(filter shared.Filter) (shared.Paginated[OrderDTO], error) {
		return s.List(ctx, input, filter)
	})
}

// Approve moves a pending order to approved
func (s *OrderService) Approve(ctx context.Context, id uuid.UUID) (OrderDTO, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return OrderDTO{}, shared.ErrNotFound
	}
	if err := order.Approve(); err != nil {
		return OrderDTO{}, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return OrderDTO{}, err
	}
	s.logger.Info("Order approved", zap.String("order_no", order.OrderNo))
	return ToOrderDTO(order), nil
}

// Issue moves an approved order to issued and assigns a policy number
// from the issue-time sequence, e.g. JR-2026-000042.
func (s *OrderService) Issue(ctx context.Context, id uuid.UUID) (OrderDTO, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return OrderDTO{}, shared.ErrNotFound
	}
	if !order.CanTransitionTo(trade.OrderStatusIssued) {
		return OrderDTO{}, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot issue an order in status %s", order.Status))
	}
	seq, err := s.orderRepo.NextPolicySequence(ctx)
	if err != nil {
		return OrderDTO{}, err
	}
	policyNo := fmt.Sprintf("JR-%d-%06d", time.Now().Year(), seq)
	if err := order.Issue(policyNo); err != nil {
		return OrderDTO{}, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return OrderDTO{}, err
	}
	s.logger.Info("Policy issued",
		zap.String("order_no", order.OrderNo),
		zap.String("policy_no", order.PolicyNo))
	return ToOrderDTO(order), nil
}

// Ship records courier details for an issued order
func (s *OrderService) Ship(ctx context.Context, id uuid.UUID, input ShipOrderInput) (OrderDTO, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return OrderDTO{}, shared.ErrNotFound
	}
	if err := order.Ship(input.CourierID, input.TrackingNo); err != nil {
		return OrderDTO{}, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return OrderDTO{}, err
	}
	return ToOrderDTO(order), nil
}

// MarkDelivered completes the lifecycle for an issued order
func (s *OrderService) MarkDelivered(ctx context.Context, id uuid.UUID) (OrderDTO, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return OrderDTO{}, shared.ErrNotFound
	}
	if err := order.MarkDelivered(); err != nil {
		return OrderDTO{}, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return OrderDTO{}, err
	}
	s.logger.Info("Order delivered", zap.String("order_no", order.OrderNo))
	return ToOrderDTO(order), nil
}

// Cancel aborts an undelivered order with a reason. A coupon redeemed
// by an order cancelled before issue is released for reuse; once a
// policy is issued the redemption stands.
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID, reason string) (OrderDTO, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return OrderDTO{}, shared.ErrNotFound
	}
	releaseCoupon := order.CouponID != nil && order.PolicyNo == ""
	if err := order.Cancel(reason); err != nil {
		return OrderDTO{}, err
	}
	err = s.tx.Execute(ctx, func(ctx context.Context) error {
		if err := s.orderRepo.Save(ctx, order); err != nil {
			return err
		}
		if !releaseCoupon {
			return nil
		}
		coupon, err := s.couponRepo.FindByID(ctx, *order.CouponID)
		if err != nil {
			return err
		}
		coupon.Release()
		return s.couponRepo.Save(ctx, coupon)
	})
	if err != nil {
		return OrderDTO{}, err
	}
	s.logger.Info("Order cancelled",
		zap.String("order_no", order.OrderNo),
		zap.String("reason", order.StatusReason),
		zap.Bool("coupon_released", releaseCoupon))
	return ToOrderDTO(order), nil
}

func parseOrderStatus(raw string) (trade.OrderStatus, error) {
	candidate := trade.OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, s := range trade.AllOrderStatuses {
		if s == candidate {
			return candidate, nil
		}
	}
	return "", shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+raw)
}
