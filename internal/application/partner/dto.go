package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/partner"
)

// BranchDTO is the branch shape returned to clients
type BranchDTO struct {
	ID        uuid.UUID  `json:"id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	CityID    *uuid.UUID `json:"city_id,omitempty"`
	Address   string     `json:"address,omitempty"`
	Phone     string     `json:"phone,omitempty"`
	Email     string     `json:"email,omitempty"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
}

func ToBranchDTO(b *partner.Branch) BranchDTO {
	return BranchDTO{
		ID: b.ID, Code: b.Code, Name: b.Name, CityID: b.CityID,
		Address: b.Address, Phone: b.Phone, Email: b.Email,
		IsActive: b.IsActive, CreatedAt: b.CreatedAt,
	}
}

// AgentDTO is the agent shape returned to clients
type AgentDTO struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	BranchID  uuid.UUID `json:"branch_id"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func ToAgentDTO(a *partner.Agent) AgentDTO {
	return AgentDTO{
		ID: a.ID, Code: a.Code, Name: a.Name, BranchID: a.BranchID,
		Email: a.Email, Phone: a.Phone, IsActive: a.IsActive, CreatedAt: a.CreatedAt,
	}
}

// ClientDTO is the policyholder shape returned to clients
type ClientDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	DocumentNo  string     `json:"document_no"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	CityID      *uuid.UUID `json:"city_id,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Address     string     `json:"address,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
}

func ToClientDTO(c *partner.Client) ClientDTO {
	return ClientDTO{
		ID: c.ID, Name: c.Name, DocumentNo: c.DocumentNo,
		Email: c.Email, Phone: c.Phone, CityID: c.CityID,
		DateOfBirth: c.DateOfBirth, Address: c.Address,
		IsActive: c.IsActive, CreatedAt: c.CreatedAt,
	}
}

// CityDTO is the city shape returned to clients
type CityDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Province  string    `json:"province,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func ToCityDTO(c *partner.City) CityDTO {
	return CityDTO{ID: c.ID, Name: c.Name, Province: c.Province, IsActive: c.IsActive, CreatedAt: c.CreatedAt}
}

// CourierDTO is the courier shape returned to clients
type CourierDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ServiceCode string    `json:"service_code"`
	TrackingURL string    `json:"tracking_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToCourierDTO(c *partner.Courier) CourierDTO {
	return CourierDTO{
		ID: c.ID, Name: c.Name, ServiceCode: c.ServiceCode,
		TrackingURL: c.TrackingURL, IsActive: c.IsActive, CreatedAt: c.CreatedAt,
	}
}

// Inputs

type BranchInput struct {
	Code    string
	Name    string
	CityID  *uuid.UUID
	Address string
	Phone   string
	Email   string
}

type AgentInput struct {
	Code     string
	Name     string
	BranchID uuid.UUID
	Email    string
	Phone    string
}

type ClientInput struct {
	Name        string
	DocumentNo  string
	Email       string
	Phone       string
	CityID      *uuid.UUID
	DateOfBirth *time.Time
	Address     string
}

type CityInput struct {
	Name     string
	Province string
}

type CourierInput struct {
	Name        string
	ServiceCode string
	TrackingURL string
}
