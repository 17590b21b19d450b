package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
)

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByCode(ctx context.Context, code string) (*Product, error)
	List(ctx context.Context, filter shared.Filter) (shared.Paginated[*Product], error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// PlanRepository defines the persistence interface for plans
type PlanRepository interface {
	Save(ctx context.Context, plan *Plan) error
	FindByID(ctx context.Context, id uuid.UUID) (*Plan, error)
	List(ctx context.Context, filter shared.Filter) (shared.Paginated[*Plan], error)
	ListByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (shared.Paginated[*Plan], error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, productID uuid.UUID, code string) (bool, error)
}

// CouponRepository defines the persistence interface for coupons
type CouponRepository interface {
	Save(ctx context.Context, coupon *Coupon) error
	FindByID(ctx context.Context, id uuid.UUID) (*Coupon, error)
	FindByCode(ctx context.Context, code string) (*Coupon, error)
	List(ctx context.Context, filter shared.Filter) (shared.Paginated[*Coupon], error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
