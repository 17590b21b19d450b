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

// GormBranchRepository implements partner.BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// Save creates or updates a branch
func (r *GormBranchRepository) Save(ctx context.Context, branch *partner.Branch) error {
	model := models.BranchModelFromDomain(branch)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a branch by its ID
func (r *GormBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Branch, error) {
	var model models.BranchModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds a branch by its code
func (r *GormBranchRepository) FindByCode(ctx context.Context, code string) (*partner.Branch, error) {
	var model models.BranchModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a page of branches matching the filter
func (r *GormBranchRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*partner.Branch], error) {
	query := r.db.WithContext(ctx).Model(&models.BranchModel{})
	query = applySearch(query, filter.Search, "code", "name", "address")
	query = applyActive(query, filter.IsActive)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*partner.Branch]{}, err
	}

	var branchModels []models.BranchModel
	query = applySort(query, filter, BranchSortFields)
	query = applyPagination(query, filter)
	if err := query.Find(&branchModels).Error; err != nil {
		return shared.Paginated[*partner.Branch]{}, err
	}

	branches := make([]*partner.Branch, len(branchModels))
	for i := range branchModels {
		branches[i] = branchModels[i].ToDomain()
	}
	return shared.NewPaginated(branches, total, filter.Page, filter.PageSize), nil
}

// Delete deletes a branch
func (r *GormBranchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BranchModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByCode checks if a branch with the given code exists
func (r *GormBranchRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BranchModel{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormBranchRepository implements partner.BranchRepository
var _ partner.BranchRepository = (*GormBranchRepository)(nil)
