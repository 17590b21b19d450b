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

// GormPlanRepository implements catalog.PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// Save creates or updates a plan
func (r *GormPlanRepository) Save(ctx context.Context, plan *catalog.Plan) error {
	model := models.PlanModelFromDomain(plan)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a plan by its ID
func (r *GormPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a page of plans matching the filter
func (r *GormPlanRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*catalog.Plan], error) {
	return r.list(r.db.WithContext(ctx).Model(&models.PlanModel{}), filter)
}

// ListByProduct returns a page of plans under a product
func (r *GormPlanRepository) ListByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (shared.Paginated[*catalog.Plan], error) {
	query := r.db.WithContext(ctx).
		Model(&models.PlanModel{}).
		Where("product_id = ?", productID)
	return r.list(query, filter)
}

func (r *GormPlanRepository) list(query *gorm.DB, filter shared.Filter) (shared.Paginated[*catalog.Plan], error) {
	query = applySearch(query, filter.Search, "code", "name")
	query = applyActive(query, filter.IsActive)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*catalog.Plan]{}, err
	}

	var planModels []models.PlanModel
	query = applySort(query, filter, PlanSortFields)
	query = applyPagination(query, filter)
	if err := query.Find(&planModels).Error; err != nil {
		return shared.Paginated[*catalog.Plan]{}, err
	}

	plans := make([]*catalog.Plan, len(planModels))
	for i := range planModels {
		plans[i] = planModels[i].ToDomain()
	}
	return shared.NewPaginated(plans, total, filter.Page, filter.PageSize), nil
}

// Delete deletes a plan
func (r *GormPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.PlanModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByCode checks if a plan code is taken within a product
func (r *GormPlanRepository) ExistsByCode(ctx context.Context, productID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.PlanModel{}).
		Where("product_id = ? AND code = ?", productID, strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormPlanRepository implements catalog.PlanRepository
var _ catalog.PlanRepository = (*GormPlanRepository)(nil)
