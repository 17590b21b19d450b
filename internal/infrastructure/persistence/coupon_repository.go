package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/catalog"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCouponRepository implements catalog.CouponRepository using GORM
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GormCouponRepository
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// Save creates or updates a coupon
func (r *GormCouponRepository) Save(ctx context.Context, coupon *catalog.Coupon) error {
	model := models.CouponModelFromDomain(coupon)
	return session(ctx, r.db).Save(model).Error
}

// FindByID finds a coupon by its ID
func (r *GormCouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Coupon, error) {
	var model models.CouponModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a coupon by its code
func (r *GormCouponRepository) FindByCode(ctx context.Context, code string) (*catalog.Coupon, error) {
	var model models.CouponModel
	if err := session(ctx, r.db).
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a page of coupons matching the filter
func (r *GormCouponRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*catalog.Coupon], error) {
	query := session(ctx, r.db).Model(&models.CouponModel{})
	query = applySearch(query, filter.Search, "code")
	query = applyActive(query, filter.IsActive)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*catalog.Coupon]{}, err
	}

	var couponModels []models.CouponModel
	query = applySort(query, filter, CouponSortFields)
	query = applyPagination(query, filter)
	if err := query.Find(&couponModels).Error; err != nil {
		return shared.Paginated[*catalog.Coupon]{}, err
	}

	coupons := make([]*catalog.Coupon, len(couponModels))
	for i := range couponModels {
		coupons[i] = couponModels[i].ToDomain()
	}
	return shared.NewPaginated(coupons, total, filter.Page, filter.PageSize), nil
}

// Delete deletes a coupon
func (r *GormCouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := session(ctx, r.db).Delete(&models.CouponModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByCode checks if a coupon with the given code exists
func (r *GormCouponRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := session(ctx, r.db).
		Model(&models.CouponModel{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormCouponRepository implements catalog.CouponRepository
var _ catalog.CouponRepository = (*GormCouponRepository)(nil)
