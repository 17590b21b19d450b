package partner

import (
	"strings"

	"github.com/jubilee-retail/backoffice/internal/domain/shared"
)

// City is a lookup record used by branches, clients, and delivery
type City struct {
	shared.BaseEntity
	Name     string
	Province string
	IsActive bool
}

// NewCity creates a new active city
func NewCity(name, province string) (*City, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CITY_NAME", "City name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_CITY_NAME", "City name cannot exceed 100 characters")
	}
	return &City{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Province:   strings.TrimSpace(province),
		IsActive:   true,
	}, nil
}

// Rename changes the city name
func (c *City) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_CITY_NAME", "City name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_CITY_NAME", "City name cannot exceed 100 characters")
	}
	c.Name = name
	c.Touch()
	return nil
}

// SetProvince updates the province
func (c *City) SetProvince(province string) {
	c.Province = strings.TrimSpace(province)
	c.Touch()
}

// Activate enables the city for selection
func (c *City) Activate() {
	c.IsActive = true
	c.Touch()
}

// Deactivate hides the city from selection lists
func (c *City) Deactivate() {
	c.IsActive = false
	c.Touch()
}
