package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
)

// RoleMenuGrant is one stored rights row: the flags a role holds on a menu
type RoleMenuGrant struct {
	RoleID    uuid.UUID
	MenuID    uuid.UUID
	CanView   bool
	CanCreate bool
	CanEdit   bool
	CanDelete bool
}

// UserRepository defines the persistence interface for staff accounts
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter shared.Filter) (shared.Paginated[*User], error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RoleRepository defines the persistence interface for roles
type RoleRepository interface {
	Save(ctx context.Context, role *Role) error
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)
	FindByName(ctx context.Context, name string) (*Role, error)
	List(ctx context.Context, filter shared.Filter) (shared.Paginated[*Role], error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountUsers(ctx context.Context, roleID uuid.UUID) (int64, error)
}

// MenuRepository defines the persistence interface for menus and grants
type MenuRepository interface {
	Save(ctx context.Context, menu *Menu) error
	FindByID(ctx context.Context, id uuid.UUID) (*Menu, error)
	FindAll(ctx context.Context) ([]*Menu, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// RightsForRole joins the role's grants with the active menus and
	// returns the flattened rights list the session is built from.
	RightsForRole(ctx context.Context, roleID uuid.UUID) ([]MenuRight, error)
	ReplaceGrants(ctx context.Context, roleID uuid.UUID, grants []RoleMenuGrant) error
}

// PendingLoginStore holds in-flight logins between the credential step
// and OTP verification. Entries expire OtpTTL after creation; Find on an
// expired or unknown reference returns shared.ErrOtpExpired.
type PendingLoginStore interface {
	Put(ctx context.Context, login *PendingLogin) error
	Find(ctx context.Context, reference string) (*PendingLogin, error)
	Delete(ctx context.Context, reference string) error
}
