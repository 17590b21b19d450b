package identity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/identity"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/auth"
)

// LoginInput is the credential step of the login flow
type LoginInput struct {
	Username string
	Password string
	ClientIP string
}

// PendingLoginResult is returned after a successful credential check.
// No bearer token is issued until the OTP is verified.
type PendingLoginResult struct {
	Reference   string `json:"reference"`
	MaskedEmail string `json:"masked_email,omitempty"`
	MaskedPhone string `json:"masked_phone,omitempty"`
	ExpiresIn   int    `json:"expires_in"` // seconds
}

// SendOtpInput requests code dispatch for a pending login
type SendOtpInput struct {
	Reference string
	Channel   string
}

// VerifyOtpInput is the final step of the login flow
type VerifyOtpInput struct {
	Reference string
	Code      string
	ClientIP  string
}

// UserDTO is the user profile shape returned to clients
type UserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	FullName    string     `json:"full_name,omitempty"`
	Image       string     `json:"image,omitempty"`
	Status      string     `json:"status"`
	RoleID      uuid.UUID  `json:"role_id"`
	BranchID    *uuid.UUID `json:"branch_id,omitempty"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToUserDTO converts a user entity to its DTO
func ToUserDTO(u *identity.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Phone:       u.Phone,
		FullName:    u.FullName,
		Image:       u.Image,
		Status:      string(u.Status),
		RoleID:      u.RoleID,
		BranchID:    u.BranchID,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// LoginResult is returned after successful OTP verification: the token
// pair, the profile, and the granted navigation tree.
type LoginResult struct {
	Tokens *auth.TokenPair           `json:"tokens"`
	User   UserDTO                   `json:"user"`
	Menus  []identity.NavigationNode `json:"menus"`
}

// CreateUserInput is the admin user-creation request
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Phone    string
	FullName string
	RoleID   uuid.UUID
	BranchID *uuid.UUID
}

// UpdateUserInput is the admin user-update request. Nil fields are left
// unchanged.
type UpdateUserInput struct {
	Email    *string
	Phone    *string
	FullName *string
	Image    *string
	RoleID   *uuid.UUID
	BranchID *uuid.UUID
}

// RoleDTO is the role shape returned to clients
type RoleDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsSystem    bool      `json:"is_system"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToRoleDTO converts a role entity to its DTO
func ToRoleDTO(r *identity.Role) RoleDTO {
	return RoleDTO{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		IsSystem:    r.IsSystem,
		CreatedAt:   r.CreatedAt,
	}
}

// RoleInput creates or updates a role
type RoleInput struct {
	Name        string
	Description string
}

// MenuInput creates or updates a menu entry
type MenuInput struct {
	Name      string
	URL       string
	Icon      string
	ParentID  *uuid.UUID
	SortOrder int
}

// GrantInput is one menu grant in a role-rights update
type GrantInput struct {
	MenuID    uuid.UUID `json:"menu_id"`
	CanView   bool      `json:"can_view"`
	CanCreate bool      `json:"can_create"`
	CanEdit   bool      `json:"can_edit"`
	CanDelete bool      `json:"can_delete"`
}

// maskEmail obscures the local part of an email, keeping the first and
// last characters: jdoe@example.com -> j**e@example.com
func maskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 1 {
		return email
	}
	local := email[:at]
	if len(local) <= 2 {
		return local[:1] + "*" + email[at:]
	}
	return local[:1] + strings.Repeat("*", len(local)-2) + local[len(local)-1:] + email[at:]
}

// maskPhone keeps only the last two digits
func maskPhone(phone string) string {
	if len(phone) <= 2 {
		return phone
	}
	return strings.Repeat("*", len(phone)-2) + phone[len(phone)-2:]
}
