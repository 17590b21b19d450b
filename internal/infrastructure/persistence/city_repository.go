package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/partner"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCityRepository implements partner.CityRepository using GORM
type GormCityRepository struct {
	db *gorm.DB
}

// NewGormCityRepository creates a new GormCityRepository
func NewGormCityRepository(db *gorm.DB) *GormCityRepository {
	return &GormCityRepository{db: db}
}

// Save creates or updates a city
func (r *GormCityRepository) Save(ctx context.Context, city *partner.City) error {
	model := models.CityModelFromDomain(city)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a city by its ID
func (r *GormCityRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.City, error) {
	var model models.CityModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a page of cities matching the filter
func (r *GormCityRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*partner.City], error) {
	query := r.db.WithContext(ctx).Model(&models.CityModel{})
	query = applySearch(query, filter.Search, "name", "province")
	query = applyActive(query, filter.IsActive)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*partner.City]{}, err
	}

	var cityModels []models.CityModel
	query = applySort(query, filter, CitySortFields)
	query = applyPagination(query, filter)
	if err := query.Find(&cityModels).Error; err != nil {
		return shared.Paginated[*partner.City]{}, err
	}

	cities := make([]*partner.City, len(cityModels))
	for i := range cityModels {
		cities[i] = cityModels[i].ToDomain()
	}
	return shared.NewPaginated(cities, total, filter.Page, filter.PageSize), nil
}

// Delete deletes a city
func (r *GormCityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CityModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByName checks if a city with the given name exists
func (r *GormCityRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CityModel{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormCityRepository implements partner.CityRepository
var _ partner.CityRepository = (*GormCityRepository)(nil)
