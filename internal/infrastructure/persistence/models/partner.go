package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/partner"
)

// BranchModel is the persistence model for the Branch domain entity.
type BranchModel struct {
	BaseModel
	Code     string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string     `gorm:"type:varchar(200);not null"`
	CityID   *uuid.UUID `gorm:"type:uuid;index"`
	Address  string     `gorm:"type:varchar(500)"`
	Phone    string     `gorm:"type:varchar(50)"`
	Email    string     `gorm:"type:varchar(200)"`
	IsActive bool       `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (BranchModel) TableName() string {
	return "branches"
}

// ToDomain converts the persistence model to a domain Branch entity.
func (m *BranchModel) ToDomain() *partner.Branch {
	return &partner.Branch{
		BaseEntity: m.BaseModel.ToDomain(),
		Code:       m.Code,
		Name:       m.Name,
		CityID:     m.CityID,
		Address:    m.Address,
		Phone:      m.Phone,
		Email:      m.Email,
		IsActive:   m.IsActive,
	}
}

// BranchModelFromDomain creates a new persistence model from a domain Branch entity.
func BranchModelFromDomain(b *partner.Branch) *BranchModel {
	m := &BranchModel{
		Code:     b.Code,
		Name:     b.Name,
		CityID:   b.CityID,
		Address:  b.Address,
		Phone:    b.Phone,
		Email:    b.Email,
		IsActive: b.IsActive,
	}
	m.FromDomainBaseEntity(b.BaseEntity)
	return m
}

// AgentModel is the persistence model for the Agent domain entity.
type AgentModel struct {
	BaseModel
	Code     string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string    `gorm:"type:varchar(200);not null"`
	BranchID uuid.UUID `gorm:"type:uuid;not null;index"`
	Email    string    `gorm:"type:varchar(200)"`
	Phone    string    `gorm:"type:varchar(50)"`
	IsActive bool      `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (AgentModel) TableName() string {
	return "agents"
}

// ToDomain converts the persistence model to a domain Agent entity.
func (m *AgentModel) ToDomain() *partner.Agent {
	return &partner.Agent{
		BaseEntity: m.BaseModel.ToDomain(),
		Code:       m.Code,
		Name:       m.Name,
		BranchID:   m.BranchID,
		Email:      m.Email,
		Phone:      m.Phone,
		IsActive:   m.IsActive,
	}
}

// AgentModelFromDomain creates a new persistence model from a domain Agent entity.
func AgentModelFromDomain(a *partner.Agent) *AgentModel {
	m := &AgentModel{
		Code:     a.Code,
		Name:     a.Name,
		BranchID: a.BranchID,
		Email:    a.Email,
		Phone:    a.Phone,
		IsActive: a.IsActive,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}

// ClientModel is the persistence model for the Client domain entity.
type ClientModel struct {
	BaseModel
	Name        string     `gorm:"type:varchar(200);not null"`
	DocumentNo  string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Email       string     `gorm:"type:varchar(200)"`
	Phone       string     `gorm:"type:varchar(50);index"`
	CityID      *uuid.UUID `gorm:"type:uuid;index"`
	DateOfBirth *time.Time
	Address     string `gorm:"type:varchar(500)"`
	IsActive    bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *partner.Client {
	return &partner.Client{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		DocumentNo:  m.DocumentNo,
		Email:       m.Email,
		Phone:       m.Phone,
		CityID:      m.CityID,
		DateOfBirth: m.DateOfBirth,
		Address:     m.Address,
		IsActive:    m.IsActive,
	}
}

// ClientModelFromDomain creates a new persistence model from a domain Client entity.
func ClientModelFromDomain(c *partner.Client) *ClientModel {
	m := &ClientModel{
		Name:        c.Name,
		DocumentNo:  c.DocumentNo,
		Email:       c.Email,
		Phone:       c.Phone,
		CityID:      c.CityID,
		DateOfBirth: c.DateOfBirth,
		Address:     c.Address,
		IsActive:    c.IsActive,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// CityModel is the persistence model for the City domain entity.
type CityModel struct {
	BaseModel
	Name     string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Province string `gorm:"type:varchar(100)"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CityModel) TableName() string {
	return "cities"
}

// ToDomain converts the persistence model to a domain City entity.
func (m *CityModel) ToDomain() *partner.City {
	return &partner.City{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Province:   m.Province,
		IsActive:   m.IsActive,
	}
}

// CityModelFromDomain creates a new persistence model from a domain City entity.
func CityModelFromDomain(c *partner.City) *CityModel {
	m := &CityModel{
		Name:     c.Name,
		Province: c.Province,
		IsActive: c.IsActive,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// CourierModel is the persistence model for the Courier domain entity.
type CourierModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(200);not null"`
	ServiceCode string `gorm:"type:varchar(50);not null;uniqueIndex"`
	TrackingURL string `gorm:"type:varchar(500)"`
	IsActive    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CourierModel) TableName() string {
	return "couriers"
}

// ToDomain converts the persistence model to a domain Courier entity.
func (m *CourierModel) ToDomain() *partner.Courier {
	return &partner.Courier{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		ServiceCode: m.ServiceCode,
		TrackingURL: m.TrackingURL,
		IsActive:    m.IsActive,
	}
}

// CourierModelFromDomain creates a new persistence model from a domain Courier entity.
func CourierModelFromDomain(c *partner.Courier) *CourierModel {
	m := &CourierModel{
		Name:        c.Name,
		ServiceCode: c.ServiceCode,
		TrackingURL: c.TrackingURL,
		IsActive:    c.IsActive,
	}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}
