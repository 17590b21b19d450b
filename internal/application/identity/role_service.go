package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/identity"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// RoleService handles management of roles and their lifecycle rules
type RoleService struct {
	roleRepo identity.RoleRepository
	logger   *zap.Logger
}

// NewRoleService creates a new role management service
func NewRoleService(roleRepo identity.RoleRepository, logger *zap.Logger) *RoleService {
	return &RoleService{roleRepo: roleRepo, logger: logger}
}

// Create creates a role
func (s *RoleService) Create(ctx context.Context, input RoleInput) (RoleDTO, error) {
	if existing, err := s.roleRepo.FindByName(ctx, input.Name); err == nil && existing != nil {
		return RoleDTO{}, shared.NewDomainError("ROLE_NAME_TAKEN", "Role name is already in use")
	}

	role, err := identity.NewRole(input.Name, input.Description)
	if err != nil {
		return RoleDTO{}, err
	}
	if err := s.roleRepo.Save(ctx, role); err != nil {
		return RoleDTO{}, err
	}
	s.logger.Info("Role created", zap.String("name", role.Name))
	return ToRoleDTO(role), nil
}

// Get returns one role
func (s *RoleService) Get(ctx context.Context, id uuid.UUID) (RoleDTO, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return RoleDTO{}, shared.NewDomainError("ROLE_NOT_FOUND", "Role does not exist")
	}
	return ToRoleDTO(role), nil
}

// List returns a page of roles
func (s *RoleService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[RoleDTO], error) {
	page, err := s.roleRepo.List(ctx, filter)
	if err != nil {
		return shared.Paginated[RoleDTO]{}, err
	}
	dtos := make([]RoleDTO, len(page.Items))
	for i, r := range page.Items {
		dtos[i] = ToRoleDTO(r)
	}
	return shared.NewPaginated(dtos, page.Total, page.Page, page.PageSize), nil
}

// ListAll returns every role, for dropdowns and dataset views
func (s *RoleService) ListAll(ctx context.Context) ([]RoleDTO, error) {
	roles, err := shared.CollectAll(func(filter shared.Filter) (shared.Paginated[*identity.Role], error) {
		return s.roleRepo.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	dtos := make([]RoleDTO, len(roles))
	for i, r := range roles {
		dtos[i] = ToRoleDTO(r)
	}
	return dtos, nil
}

// Update renames a role or changes its description. System roles keep
// their name.
func (s *RoleService) Update(ctx context.Context, id uuid.UUID, input RoleInput) (RoleDTO, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return RoleDTO{}, shared.NewDomainError("ROLE_NOT_FOUND", "Role does not exist")
	}

	if input.Name != role.Name {
		if role.IsSystem {
			return RoleDTO{}, shared.NewDomainError("SYSTEM_ROLE_PROTECTED", "System roles cannot be renamed")
		}
		if existing, err := s.roleRepo.FindByName(ctx, input.Name); err == nil && existing != nil && existing.ID != id {
			return RoleDTO{}, shared.NewDomainError("ROLE_NAME_TAKEN", "Role name is already in use")
		}
		if err := role.Rename(input.Name); err != nil {
			return RoleDTO{}, err
		}
	}
	role.SetDescription(input.Description)

	if err := s.roleRepo.Save(ctx, role); err != nil {
		return RoleDTO{}, err
	}
	return ToRoleDTO(role), nil
}

// Delete removes a role. System roles and roles with assigned users
// cannot be deleted.
func (s *RoleService) Delete(ctx context.Context, id uuid.UUID) error {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		return shared.NewDomainError("ROLE_NOT_FOUND", "Role does not exist")
	}
	if role.IsSystem {
		return shared.NewDomainError("SYSTEM_ROLE_PROTECTED", "System roles cannot be deleted")
	}
	count, err := s.roleRepo.CountUsers(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("ROLE_IN_USE", "Role is assigned to one or more users")
	}
	if err := s.roleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Role deleted", zap.String("name", role.Name))
	return nil
}
