package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
)

// Branch is a physical office of the insurer
type Branch struct {
	shared.BaseEntity
	Code     string
	Name     string
	CityID   *uuid.UUID
	Address  string
	Phone    string
	Email    string
	IsActive bool
}

// NewBranch creates a new active branch
func NewBranch(code, name string) (*Branch, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &Branch{
		BaseEntity: shared.NewBaseEntity(),
		Code:       normalizeCode(code),
		Name:       strings.TrimSpace(name),
		IsActive:   true,
	}, nil
}

// Rename changes the branch display name
func (b *Branch) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	b.Name = strings.TrimSpace(name)
	b.Touch()
	return nil
}

// SetCity assigns the branch to a city (nil clears it)
func (b *Branch) SetCity(cityID *uuid.UUID) {
	b.CityID = cityID
	b.Touch()
}

// SetAddress updates the street address
func (b *Branch) SetAddress(address string) error {
	if len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}
	b.Address = strings.TrimSpace(address)
	b.Touch()
	return nil
}

// SetContact updates phone and email
func (b *Branch) SetContact(phone, email string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	if email != "" && len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	b.Phone = strings.TrimSpace(phone)
	b.Email = strings.ToLower(strings.TrimSpace(email))
	b.Touch()
	return nil
}

// Activate enables the branch
func (b *Branch) Activate() {
	b.IsActive = true
	b.Touch()
}

// Deactivate disables the branch. Agents stay assigned but new business
// cannot be booked against an inactive branch.
func (b *Branch) Deactivate() {
	b.IsActive = false
	b.Touch()
}
