package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/catalog"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// CouponService handles discount coupons
type CouponService struct {
	couponRepo catalog.CouponRepository
	logger     *zap.Logger
}

// NewCouponService creates a new coupon service
func NewCouponService(couponRepo catalog.CouponRepository, logger *zap.Logger) *CouponService {
	return &CouponService{couponRepo: couponRepo, logger: logger}
}

// Create creates a coupon
func (s *CouponService) Create(ctx context.Context, input CouponInput) (CouponDTO, error) {
	coupon, err := catalog.NewCoupon(input.Code, catalog.DiscountType(input.Type),
		input.Value, input.ValidFrom, input.ValidUntil, input.MaxRedemptions)
	if err != nil {
		return CouponDTO{}, err
	}
	if exists, err := s.couponRepo.ExistsByCode(ctx, coupon.Code); err != nil {
		return CouponDTO{}, err
	} else if exists {
		return CouponDTO{}, shared.NewDomainError("CODE_TAKEN", "Coupon code is already in use")
	}
	if err := s.couponRepo.Save(ctx, coupon); err != nil {
		return CouponDTO{}, err
	}
	s.logger.Info("Coupon created", zap.String("code", coupon.Code))
	return ToCouponDTO(coupon), nil
}

// Get returns one coupon
func (s *CouponService) Get(ctx context.Context, id uuid.UUID) (CouponDTO, error) {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return CouponDTO{}, shared.ErrNotFound
	}
	return ToCouponDTO(coupon), nil
}

// List returns a page of coupons
func (s *CouponService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[CouponDTO], error) {
	page, err := s.couponRepo.List(ctx, filter)
	if err != nil {
		return shared.Paginated[CouponDTO]{}, err
	}
	dtos := make([]CouponDTO, len(page.Items))
	for i, c := range page.Items {
		dtos[i] = ToCouponDTO(c)
	}
	return shared.NewPaginated(dtos, page.Total, page.Page, page.PageSize), nil
}

// ListAll returns every coupon, for dataset views and exports
func (s *CouponService) ListAll(ctx context.Context) ([]CouponDTO, error) {
	coupons, err := shared.CollectAll(func(filter shared.Filter) (shared.Paginated[*catalog.Coupon], error) {
		return s.couponRepo.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	dtos := make([]CouponDTO, len(coupons))
	for i, c := range coupons {
		dtos[i] = ToCouponDTO(c)
	}
	return dtos, nil
}

// Update updates a coupon's validity window and redemption cap. Code,
// type, and value are immutable once issued.
func (s *CouponService) Update(ctx context.Context, id uuid.UUID, input CouponInput) (CouponDTO, error) {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return CouponDTO{}, shared.ErrNotFound
	}
	if err := coupon.SetValidity(input.ValidFrom, input.ValidUntil); err != nil {
		return CouponDTO{}, err
	}
	if input.MaxRedemptions < 0 {
		return CouponDTO{}, shared.NewDomainError("INVALID_MAX_REDEMPTIONS", "Max redemptions cannot be negative")
	}
	coupon.MaxRedemptions = input.MaxRedemptions
	coupon.Touch()
	if err := s.couponRepo.Save(ctx, coupon); err != nil {
		return CouponDTO{}, err
	}
	return ToCouponDTO(coupon), nil
}

// SetActive activates or deactivates a coupon
func (s *CouponService) SetActive(ctx context.Context, id uuid.UUID, active bool) (CouponDTO, error) {
	coupon, err := s.couponRepo.FindByID(ctx, id)
	if err != nil {
		return CouponDTO{}, shared.ErrNotFound
	}
	if active {
		coupon.Activate()
	} else {
		coupon.Deactivate()
	}
	if err := s.couponRepo.Save(ctx, coupon); err != nil {
		return CouponDTO{}, err
	}
	return ToCouponDTO(coupon), nil
}

// Delete removes a coupon
func (s *CouponService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.couponRepo.FindByID(ctx, id); err != nil {
		return shared.ErrNotFound
	}
	return s.couponRepo.Delete(ctx, id)
}
