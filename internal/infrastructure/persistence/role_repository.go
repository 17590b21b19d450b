package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/identity"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRoleRepository implements identity.RoleRepository using GORM
type GormRoleRepository struct {
	db *gorm.DB
}

// NewGormRoleRepository creates a new GormRoleRepository
func NewGormRoleRepository(db *gorm.DB) *GormRoleRepository {
	return &GormRoleRepository{db: db}
}

// Save creates or updates a role
func (r *GormRoleRepository) Save(ctx context.Context, role *identity.Role) error {
	model := models.RoleModelFromDomain(role)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a role by its ID
func (r *GormRoleRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Role, error) {
	var model models.RoleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a role by its name
func (r *GormRoleRepository) FindByName(ctx context.Context, name string) (*identity.Role, error) {
	var model models.RoleModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a page of roles matching the filter
func (r *GormRoleRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*identity.Role], error) {
	query := r.db.WithContext(ctx).Model(&models.RoleModel{})
	query = applySearch(query, filter.Search, "name", "description")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*identity.Role]{}, err
	}

	var roleModels []models.RoleModel
	query = applySort(query, filter, RoleSortFields)
	query = applyPagination(query, filter)
	if err := query.Find(&roleModels).Error; err != nil {
		return shared.Paginated[*identity.Role]{}, err
	}

	roles := make([]*identity.Role, len(roleModels))
	for i := range roleModels {
		roles[i] = roleModels[i].ToDomain()
	}
	return shared.NewPaginated(roles, total, filter.Page, filter.PageSize), nil
}

// Delete deletes a role. System roles and roles still assigned to users
// are protected at the service layer.
func (r *GormRoleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.RoleMenuModel{}, "role_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.RoleModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// CountUsers counts the users currently assigned to a role
func (r *GormRoleRepository) CountUsers(ctx context.Context, roleID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("role_id = ?", roleID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormRoleRepository implements identity.RoleRepository
var _ identity.RoleRepository = (*GormRoleRepository)(nil)
