package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
)

// Client is a policyholder
type Client struct {
	shared.BaseEntity
	Name        string
	DocumentNo  string // National identity / CNIC number
	Email       string
	Phone       string
	CityID      *uuid.UUID
	DateOfBirth *time.Time
	Address     string
	IsActive    bool
}

// NewClient creates a new policyholder record
func NewClient(name, documentNo string) (*Client, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	documentNo = strings.TrimSpace(documentNo)
	if documentNo == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NO", "Document number cannot be empty")
	}
	if len(documentNo) > 50 {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NO", "Document number cannot exceed 50 characters")
	}
	return &Client{
		BaseEntity: shared.NewBaseEntity(),
		Name:       strings.TrimSpace(name),
		DocumentNo: documentNo,
		IsActive:   true,
	}, nil
}

// Rename changes the client name
func (c *Client) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	c.Name = strings.TrimSpace(name)
	c.Touch()
	return nil
}

// SetContact updates phone and email
func (c *Client) SetContact(phone, email string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	if email != "" && len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	c.Phone = strings.TrimSpace(phone)
	c.Email = strings.ToLower(strings.TrimSpace(email))
	c.Touch()
	return nil
}

// SetCity assigns the client's city (nil clears it)
func (c *Client) SetCity(cityID *uuid.UUID) {
	c.CityID = cityID
	c.Touch()
}

// SetDateOfBirth records the date of birth; future dates are rejected
func (c *Client) SetDateOfBirth(dob time.Time) error {
	if dob.After(time.Now()) {
		return shared.NewDomainError("INVALID_DATE_OF_BIRTH", "Date of birth cannot be in the future")
	}
	c.DateOfBirth = &dob
	c.Touch()
	return nil
}

// SetAddress updates the street address
func (c *Client) SetAddress(address string) error {
	if len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}
	c.Address = strings.TrimSpace(address)
	c.Touch()
	return nil
}

// Activate enables the client record
func (c *Client) Activate() {
	c.IsActive = true
	c.Touch()
}

// Deactivate disables the client record
func (c *Client) Deactivate() {
	c.IsActive = false
	c.Touch()
}
