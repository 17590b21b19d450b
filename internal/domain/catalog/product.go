package catalog

import (
	"regexp"
	"strings"

	"github.com/jubilee-retail/backoffice/internal/domain/shared"
)

// ProductCategory is the line of business a product belongs to
type ProductCategory string

const (
	CategoryHealth ProductCategory = "health"
	CategoryMotor  ProductCategory = "motor"
	CategoryTravel ProductCategory = "travel"
	CategoryHome   ProductCategory = "home"
	CategoryLife   ProductCategory = "life"
)

// ParseProductCategory validates a category name
func ParseProductCategory(s string) (ProductCategory, error) {
	switch ProductCategory(s) {
	case CategoryHealth, CategoryMotor, CategoryTravel, CategoryHome, CategoryLife:
		return ProductCategory(s), nil
	default:
		return "", shared.NewDomainError("INVALID_CATEGORY", "Unknown product category")
	}
}

// Product is an insurance product line. Sellable price points live on
// its plans.
type Product struct {
	shared.BaseEntity
	Code        string
	Name        string
	Category    ProductCategory
	Description string
	IsActive    bool
}

// NewProduct creates a new active product
func NewProduct(code, name string, category ProductCategory) (*Product, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if _, err := ParseProductCategory(string(category)); err != nil {
		return nil, err
	}
	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Code:       normalizeCode(code),
		Name:       strings.TrimSpace(name),
		Category:   category,
		IsActive:   true,
	}, nil
}

// Rename changes the product display name
func (p *Product) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	p.Name = strings.TrimSpace(name)
	p.Touch()
	return nil
}

// SetDescription updates the marketing description
func (p *Product) SetDescription(description string) error {
	if len(description) > 2000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 2000 characters")
	}
	p.Description = strings.TrimSpace(description)
	p.Touch()
	return nil
}

// SetCategory reassigns the line of business
func (p *Product) SetCategory(category ProductCategory) error {
	if _, err := ParseProductCategory(string(category)); err != nil {
		return err
	}
	p.Category = category
	p.Touch()
	return nil
}

// Activate enables the product for sale
func (p *Product) Activate() {
	p.IsActive = true
	p.Touch()
}

// Deactivate withdraws the product from sale
func (p *Product) Deactivate() {
	p.IsActive = false
	p.Touch()
}

var codeRegex = regexp.MustCompile(`^[A-Za-z0-9\-_]+$`)

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validateCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Code cannot exceed 50 characters")
	}
	if !codeRegex.MatchString(code) {
		return shared.NewDomainError("INVALID_CODE", "Code can only contain letters, numbers, hyphens, and underscores")
	}
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}
