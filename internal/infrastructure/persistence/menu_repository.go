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

// GormMenuRepository implements identity.MenuRepository using GORM
type GormMenuRepository struct {
	db *gorm.DB
}

// NewGormMenuRepository creates a new GormMenuRepository
func NewGormMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// Save creates or updates a menu entry
func (r *GormMenuRepository) Save(ctx context.Context, menu *identity.Menu) error {
	model := models.MenuModelFromDomain(menu)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a menu by its ID
func (r *GormMenuRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Menu, error) {
	var model models.MenuModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every menu ordered by sort order
func (r *GormMenuRepository) FindAll(ctx context.Context) ([]*identity.Menu, error) {
	var menuModels []models.MenuModel
	if err := r.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&menuModels).Error; err != nil {
		return nil, err
	}
	menus := make([]*identity.Menu, len(menuModels))
	for i := range menuModels {
		menus[i] = menuModels[i].ToDomain()
	}
	return menus, nil
}

// Delete deletes a menu together with its grant rows and detaches its
// children.
func (r *GormMenuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.RoleMenuModel{}, "menu_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.MenuModel{}).
			Where("parent_id = ?", id).
			Update("parent_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.MenuModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// menuRightRow is the join projection backing RightsForRole
type menuRightRow struct {
	MenuID    uuid.UUID
	Name      string
	URL       string
	Icon      string
	ParentID  *uuid.UUID
	SortOrder int
	CanView   bool
	CanCreate bool
	CanEdit   bool
	CanDelete bool
}

// RightsForRole joins the role's grants with the active menus and
// returns the flattened rights list.
func (r *GormMenuRepository) RightsForRole(ctx context.Context, roleID uuid.UUID) ([]identity.MenuRight, error) {
	var rows []menuRightRow
	if err := r.db.WithContext(ctx).
		Table("role_menus").
		Select(`menus.id AS menu_id, menus.name, menus.url, menus.icon,
			menus.parent_id, menus.sort_order,
			role_menus.can_view, role_menus.can_create,
			role_menus.can_edit, role_menus.can_delete`).
		Joins("JOIN menus ON menus.id = role_menus.menu_id").
		Where("role_menus.role_id = ? AND menus.is_active = ?", roleID, true).
		Order("menus.sort_order ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	rights := make([]identity.MenuRight, len(rows))
	for i, row := range rows {
		rights[i] = identity.MenuRight{
			MenuID:    row.MenuID,
			Name:      row.Name,
			URL:       row.URL,
			Icon:      row.Icon,
			ParentID:  row.ParentID,
			SortOrder: row.SortOrder,
			CanView:   row.CanView,
			CanCreate: row.CanCreate,
			CanEdit:   row.CanEdit,
			CanDelete: row.CanDelete,
		}
	}
	return rights, nil
}

// ReplaceGrants swaps a role's grant rows wholesale
func (r *GormMenuRepository) ReplaceGrants(ctx context.Context, roleID uuid.UUID, grants []identity.RoleMenuGrant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.RoleMenuModel{}, "role_id = ?", roleID).Error; err != nil {
			return err
		}
		if len(grants) == 0 {
			return nil
		}
		rows := make([]*models.RoleMenuModel, len(grants))
		for i, g := range grants {
			g.RoleID = roleID
			rows[i] = models.RoleMenuModelFromDomain(g)
		}
		return tx.Create(rows).Error
	})
}

// Ensure GormMenuRepository implements identity.MenuRepository
var _ identity.MenuRepository = (*GormMenuRepository)(nil)
