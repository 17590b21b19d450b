package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/partner"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCourierRepository implements partner.CourierRepository using GORM
type GormCourierRepository struct {
	db *gorm.DB
}

// NewGormCourierRepository creates a new GormCourierRepository
func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// Save creates or updates a courier
func (r *GormCourierRepository) Save(ctx context.Context, courier *partner.Courier) error {
	model := models.CourierModelFromDomain(courier)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a courier by its ID
func (r *GormCourierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Courier, error) {
	var model models.CourierModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a page of couriers matching the filter
func (r *GormCourierRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*partner.Courier], error) {
	query := r.db.WithContext(ctx).Model(&models.CourierModel{})
	query = applySearch(query, filter.Search, "name", "service_code")
	query = applyActive(query, filter.IsActive)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*partner.Courier]{}, err
	}

	var courierModels []models.CourierModel
	query = applySort(query, filter, CourierSortFields)
	query = applyPagination(query, filter)
	if err := query.Find(&courierModels).Error; err != nil {
		return shared.Paginated[*partner.Courier]{}, err
	}

	couriers := make([]*partner.Courier, len(courierModels))
	for i := range courierModels {
		couriers[i] = courierModels[i].ToDomain()
	}
	return shared.NewPaginated(couriers, total, filter.Page, filter.PageSize), nil
}

// Delete deletes a courier
func (r *GormCourierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CourierModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByServiceCode checks if a courier with the given service code exists
func (r *GormCourierRepository) ExistsByServiceCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CourierModel{}).
		Where("service_code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormCourierRepository implements partner.CourierRepository
var _ partner.CourierRepository = (*GormCourierRepository)(nil)
