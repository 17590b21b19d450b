package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderFilter extends the common filter with order-specific criteria
type OrderFilter struct {
	shared.Filter
	Status   OrderStatus
	ClientID *uuid.UUID
	AgentID  *uuid.UUID
	From     *time.Time
	To       *time.Time
}

// StatusSummary is one dashboard aggregate row: count and premium sum
// for an order status within a date range.
type StatusSummary struct {
	Status  OrderStatus
	Count   int64
	Premium decimal.Decimal
	Total   decimal.Decimal
}

// ProductSummary is one top-products dashboard row
type ProductSummary struct {
	ProductID   uuid.UUID
	ProductName string
	Orders      int64
	Premium     decimal.Decimal
}

// OrderRepository defines the persistence interface for orders
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNo(ctx context.Context, orderNo string) (*Order, error)
	List(ctx context.Context, filter OrderFilter) (shared.Paginated[*Order], error)
	Delete(ctx context.Context, id uuid.UUID) error

	// NextPolicySequence returns a gapless-enough sequence number used
	// to build policy numbers at issue time.
	NextPolicySequence(ctx context.Context) (int64, error)

	// Dashboard aggregates, date-range scoped
	SummarizeByStatus(ctx context.Context, from, to time.Time) ([]StatusSummary, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductSummary, error)
}
