package identity

import (
	"strings"

	"github.com/jubilee-retail/backoffice/internal/domain/shared"
)

// Role groups menu rights for assignment to staff accounts
type Role struct {
	shared.BaseEntity
	Name        string
	Description string
	IsSystem    bool // System roles cannot be deleted
}

// NewRole creates a new role
func NewRole(name, description string) (*Role, error) {
	if err := validateRoleName(name); err != nil {
		return nil, err
	}
	return &Role{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}, nil
}

// Rename changes the role name
func (r *Role) Rename(name string) error {
	if err := validateRoleName(name); err != nil {
		return err
	}
	r.Name = strings.TrimSpace(name)
	r.Touch()
	return nil
}

// SetDescription updates the role description
func (r *Role) SetDescription(description string) error {
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	r.Description = strings.TrimSpace(description)
	r.Touch()
	return nil
}

func validateRoleName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_ROLE_NAME", "Role name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_ROLE_NAME", "Role name cannot exceed 100 characters")
	}
	return nil
}
