package partner

import (
	"strings"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
)

// Agent is a sales agent attached to a branch
type Agent struct {
	shared.BaseEntity
	Code     string
	Name     string
	BranchID uuid.UUID
	Email    string
	Phone    string
	IsActive bool
}

// NewAgent creates a new active agent under a branch
func NewAgent(code, name string, branchID uuid.UUID) (*Agent, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH_ID", "Branch ID cannot be empty")
	}
	return &Agent{
		BaseEntity: shared.NewBaseEntity(),
		Code:       normalizeCode(code),
		Name:       strings.TrimSpace(name),
		BranchID:   branchID,
		IsActive:   true,
	}, nil
}

// Rename changes the agent display name
func (a *Agent) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	a.Name = strings.TrimSpace(name)
	a.Touch()
	return nil
}

// Transfer moves the agent to another branch
func (a *Agent) Transfer(branchID uuid.UUID) error {
	if branchID == uuid.Nil {
		return shared.NewDomainError("INVALID_BRANCH_ID", "Branch ID cannot be empty")
	}
	a.BranchID = branchID
	a.Touch()
	return nil
}

// SetContact updates phone and email
func (a *Agent) SetContact(phone, email string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	if email != "" && len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	a.Phone = strings.TrimSpace(phone)
	a.Email = strings.ToLower(strings.TrimSpace(email))
	a.Touch()
	return nil
}

// Activate enables the agent
func (a *Agent) Activate() {
	a.IsActive = true
	a.Touch()
}

// Deactivate disables the agent for new business
func (a *Agent) Deactivate() {
	a.IsActive = false
	a.Touch()
}
