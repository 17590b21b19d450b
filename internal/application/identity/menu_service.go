package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/identity"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// MenuService manages menu entries and role grants, and answers the
// authorization questions the route guard asks.
type MenuService struct {
	menuRepo identity.MenuRepository
	roleRepo identity.RoleRepository
	logger   *zap.Logger
}

// NewMenuService creates a new menu service
func NewMenuService(menuRepo identity.MenuRepository, roleRepo identity.RoleRepository, logger *zap.Logger) *MenuService {
	return &MenuService{menuRepo: menuRepo, roleRepo: roleRepo, logger: logger}
}

// NavigationForRole builds the sidebar tree for a role. Orphaned
// entries are dropped and logged.
func (s *MenuService) NavigationForRole(ctx context.Context, roleID uuid.UUID) ([]identity.NavigationNode, error) {
	rights, err := s.menuRepo.RightsForRole(ctx, roleID)
	if err != nil {
		return nil, err
	}
	for _, orphan := range identity.OrphanedRights(rights) {
		s.logger.Warn("Dropping menu entry with missing parent",
			zap.String("menu", orphan.Name),
			zap.String("menu_id", orphan.MenuID.String()))
	}
	return identity.BuildNavigationTree(rights), nil
}

// RightsForRoute resolves the menu entry guarding a route for a role.
// The URL comparison is exact; no entry means no access.
func (s *MenuService) RightsForRoute(ctx context.Context, roleID uuid.UUID, route string) (identity.MenuRight, bool, error) {
	rights, err := s.menuRepo.RightsForRole(ctx, roleID)
	if err != nil {
		return identity.MenuRight{}, false, err
	}
	right, ok := identity.RightsForRoute(rights, route)
	return right, ok, nil
}

// ListMenus returns all menu entries
func (s *MenuService) ListMenus(ctx context.Context) ([]*identity.Menu, error) {
	return s.menuRepo.FindAll(ctx)
}

// CreateMenu creates a menu entry. A parent, when given, must exist and
// must itself be top level.
func (s *MenuService) CreateMenu(ctx context.Context, input MenuInput) (*identity.Menu, error) {
	if input.ParentID != nil {
		parent, err := s.menuRepo.FindByID(ctx, *input.ParentID)
		if err != nil {
			return nil, shared.NewDomainError("PARENT_NOT_FOUND", "Parent menu does not exist")
		}
		if parent.ParentID != nil {
			return nil, shared.NewDomainError("INVALID_PARENT", "Menus nest one level deep only")
		}
	}

	menu, err := identity.NewMenu(input.Name, input.URL, input.Icon, input.ParentID, input.SortOrder)
	if err != nil {
		return nil, err
	}
	if err := s.menuRepo.Save(ctx, menu); err != nil {
		return nil, err
	}
	s.logger.Info("Menu created", zap.String("name", menu.Name), zap.String("url", menu.URL))
	return menu, nil
}

// UpdateMenu updates name, URL, icon, and sort order of a menu entry
func (s *MenuService) UpdateMenu(ctx context.Context, id uuid.UUID, input MenuInput) (*identity.Menu, error) {
	menu, err := s.menuRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	updated, err := identity.NewMenu(input.Name, input.URL, input.Icon, menu.ParentID, input.SortOrder)
	if err != nil {
		return nil, err
	}
	menu.Name = updated.Name
	menu.URL = updated.URL
	menu.Icon = updated.Icon
	menu.SortOrder = updated.SortOrder
	menu.Touch()

	if err := s.menuRepo.Save(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// DeleteMenu removes a menu entry
func (s *MenuService) DeleteMenu(ctx context.Context, id uuid.UUID) error {
	if _, err := s.menuRepo.FindByID(ctx, id); err != nil {
		return shared.ErrNotFound
	}
	return s.menuRepo.Delete(ctx, id)
}

// ReplaceGrants replaces a role's menu grants wholesale
func (s *MenuService) ReplaceGrants(ctx context.Context, roleID uuid.UUID, inputs []GrantInput) error {
	if _, err := s.roleRepo.FindByID(ctx, roleID); err != nil {
		return shared.NewDomainError("ROLE_NOT_FOUND", "Role does not exist")
	}

	grants := make([]identity.RoleMenuGrant, 0, len(inputs))
	for _, in := range inputs {
		if _, err := s.menuRepo.FindByID(ctx, in.MenuID); err != nil {
			return shared.NewDomainError("MENU_NOT_FOUND", "Granted menu does not exist")
		}
		grants = append(grants, identity.RoleMenuGrant{
			RoleID:    roleID,
			MenuID:    in.MenuID,
			CanView:   in.CanView,
			CanCreate: in.CanCreate,
			CanEdit:   in.CanEdit,
			CanDelete: in.CanDelete,
		})
	}

	if err := s.menuRepo.ReplaceGrants(ctx, roleID, grants); err != nil {
		return err
	}
	s.logger.Info("Role grants replaced",
		zap.String("role_id", roleID.String()),
		zap.Int("grants", len(grants)))
	return nil
}
