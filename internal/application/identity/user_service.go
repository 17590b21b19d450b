package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/identity"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService handles admin management of staff accounts
type UserService struct {
	userRepo identity.UserRepository
	roleRepo identity.RoleRepository
	logger   *zap.Logger
}

// NewUserService creates a new user management service
func NewUserService(userRepo identity.UserRepository, roleRepo identity.RoleRepository, logger *zap.Logger) *UserService {
	return &UserService{userRepo: userRepo, roleRepo: roleRepo, logger: logger}
}

// Create creates a staff account
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (UserDTO, error) {
	if _, err := s.roleRepo.FindByID(ctx, input.RoleID); err != nil {
		return UserDTO{}, shared.NewDomainError("ROLE_NOT_FOUND", "Role does not exist")
	}

	if exists, err := s.userRepo.ExistsByUsername(ctx, input.Username); err != nil {
		return UserDTO{}, err
	} else if exists {
		return UserDTO{}, shared.NewDomainError("USERNAME_TAKEN", "Username is already in use")
	}
	if exists, err := s.userRepo.ExistsByEmail(ctx, input.Email); err != nil {
		return UserDTO{}, err
	} else if exists {
		return UserDTO{}, shared.NewDomainError("EMAIL_TAKEN", "Email is already in use")
	}

	user, err := identity.NewUser(input.Username, input.Email, input.Password, input.RoleID)
	if err != nil {
		return UserDTO{}, err
	}
	if input.Phone != "" {
		if err := user.SetPhone(input.Phone); err != nil {
			return UserDTO{}, err
		}
	}
	if input.FullName != "" {
		if err := user.SetFullName(input.FullName); err != nil {
			return UserDTO{}, err
		}
	}
	user.SetBranch(input.BranchID)

	if err := s.userRepo.Save(ctx, user); err != nil {
		return UserDTO{}, err
	}
	s.logger.Info("User created", zap.String("username", user.Username))
	return ToUserDTO(user), nil
}

// Get returns one staff account
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return UserDTO{}, shared.ErrNotFound
	}
	return ToUserDTO(user), nil
}

// List returns a page of staff accounts
func (s *UserService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[UserDTO], error) {
	page, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return shared.Paginated[UserDTO]{}, err
	}
	dtos := make([]UserDTO, len(page.Items))
	for i, u := range page.Items {
		dtos[i] = ToUserDTO(u)
	}
	return shared.NewPaginated(dtos, page.Total, page.Page, page.PageSize), nil
}

// ListAll returns every staff account, for dataset views
func (s *UserService) ListAll(ctx context.Context) ([]UserDTO, error) {
	users, err := shared.CollectAll(func(filter shared.Filter) (shared.Paginated[*identity.User], error) {
		return s.userRepo.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return dtos, nil
}

// Update applies the non-nil fields of the input to a staff account
func (s *UserService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return UserDTO{}, shared.ErrNotFound
	}

	if input.RoleID != nil {
		if _, err := s.roleRepo.FindByID(ctx, *input.RoleID); err != nil {
			return UserDTO{}, shared.NewDomainError("ROLE_NOT_FOUND", "Role does not exist")
		}
		if err := user.SetRole(*input.RoleID); err != nil {
			return UserDTO{}, err
		}
	}
	if input.Email != nil {
		if exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email); err != nil {
			return UserDTO{}, err
		} else if exists && user.Email != *input.Email {
			return UserDTO{}, shared.NewDomainError("EMAIL_TAKEN", "Email is already in use")
		}
		user.Email = *input.Email
		user.Touch()
	}
	if input.Phone != nil {
		if err := user.SetPhone(*input.Phone); err != nil {
			return UserDTO{}, err
		}
	}
	if input.FullName != nil {
		if err := user.SetFullName(*input.FullName); err != nil {
			return UserDTO{}, err
		}
	}
	if input.Image != nil {
		if err := user.SetImage(*input.Image); err != nil {
			return UserDTO{}, err
		}
	}
	if input.BranchID != nil {
		user.SetBranch(input.BranchID)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return UserDTO{}, err
	}
	return ToUserDTO(user), nil
}

// ResetPassword sets a new password without the old one (admin action)
func (s *UserService) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return shared.ErrNotFound
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.logger.Info("Password reset by admin", zap.String("user_id", id.String()))
	return nil
}

// SetActive activates or deactivates an account
func (s *UserService) SetActive(ctx context.Context, id uuid.UUID, active bool) (UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return UserDTO{}, shared.ErrNotFound
	}
	if active {
		err = user.Activate()
	} else {
		err = user.Deactivate()
	}
	if err != nil {
		return UserDTO{}, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return UserDTO{}, err
	}
	return ToUserDTO(user), nil
}

// Delete removes a staff account
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return shared.ErrNotFound
	}
	return s.userRepo.Delete(ctx, id)
}
