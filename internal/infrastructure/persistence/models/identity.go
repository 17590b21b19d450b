package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/identity"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	BaseModel
	Username       string              `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email          string              `gorm:"type:varchar(200);not null;uniqueIndex"`
	Phone          string              `gorm:"type:varchar(50)"`
	PasswordHash   string              `gorm:"type:varchar(200);not null"`
	FullName       string              `gorm:"type:varchar(200)"`
	Image          string              `gorm:"type:varchar(500)"`
	Status         identity.UserStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	RoleID         uuid.UUID           `gorm:"type:uuid;not null;index"`
	BranchID       *uuid.UUID          `gorm:"type:uuid;index"`
	LastLoginAt    *time.Time
	LastLoginIP    string `gorm:"type:varchar(50)"`
	FailedAttempts int    `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:     m.BaseModel.ToDomain(),
		Username:       m.Username,
		Email:          m.Email,
		Phone:          m.Phone,
		PasswordHash:   m.PasswordHash,
		FullName:       m.FullName,
		Image:          m.Image,
		Status:         m.Status,
		RoleID:         m.RoleID,
		BranchID:       m.BranchID,
		LastLoginAt:    m.LastLoginAt,
		LastLoginIP:    m.LastLoginIP,
		FailedAttempts: m.FailedAttempts,
		LockedUntil:    m.LockedUntil,
	}
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{
		Username:       u.Username,
		Email:          u.Email,
		Phone:          u.Phone,
		PasswordHash:   u.PasswordHash,
		FullName:       u.FullName,
		Image:          u.Image,
		Status:         u.Status,
		RoleID:         u.RoleID,
		BranchID:       u.BranchID,
		LastLoginAt:    u.LastLoginAt,
		LastLoginIP:    u.LastLoginIP,
		FailedAttempts: u.FailedAttempts,
		LockedUntil:    u.LockedUntil,
	}
	m.FromDomainBaseEntity(u.BaseEntity)
	return m
}

// RoleModel is the persistence model for the Role domain entity.
type RoleModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:varchar(500)"`
	IsSystem    bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (RoleModel) TableName() string {
	return "roles"
}

// ToDomain converts the persistence model to a domain Role entity.
func (m *RoleModel) ToDomain() *identity.Role {
	return &identity.Role{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
		IsSystem:    m.IsSystem,
	}
}

// RoleModelFromDomain creates a new persistence model from a domain Role entity.
func RoleModelFromDomain(r *identity.Role) *RoleModel {
	m := &RoleModel{
		Name:        r.Name,
		Description: r.Description,
		IsSystem:    r.IsSystem,
	}
	m.FromDomainBaseEntity(r.BaseEntity)
	return m
}

// MenuModel is the persistence model for the Menu domain entity.
type MenuModel struct {
	BaseModel
	Name      string     `gorm:"type:varchar(100);not null"`
	URL       string     `gorm:"type:varchar(200);index"`
	Icon      string     `gorm:"type:varchar(100)"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index"`
	SortOrder int        `gorm:"not null;default:0"`
	IsActive  bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (MenuModel) TableName() string {
	return "menus"
}

// ToDomain converts the persistence model to a domain Menu entity.
func (m *MenuModel) ToDomain() *identity.Menu {
	return &identity.Menu{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		URL:        m.URL,
		Icon:       m.Icon,
		ParentID:   m.ParentID,
		SortOrder:  m.SortOrder,
		IsActive:   m.IsActive,
	}
}

// MenuModelFromDomain creates a new persistence model from a domain Menu entity.
func MenuModelFromDomain(menu *identity.Menu) *MenuModel {
	m := &MenuModel{
		Name:      menu.Name,
		URL:       menu.URL,
		Icon:      menu.Icon,
		ParentID:  menu.ParentID,
		SortOrder: menu.SortOrder,
		IsActive:  menu.IsActive,
	}
	m.FromDomainBaseEntity(menu.BaseEntity)
	return m
}

// RoleMenuModel is the persistence model for a role's rights on a menu.
// Rows are replaced wholesale when a role's grants are edited.
type RoleMenuModel struct {
	RoleID    uuid.UUID `gorm:"type:uuid;primary_key"`
	MenuID    uuid.UUID `gorm:"type:uuid;primary_key"`
	CanView   bool      `gorm:"not null;default:false"`
	CanCreate bool      `gorm:"not null;default:false"`
	CanEdit   bool      `gorm:"not null;default:false"`
	CanDelete bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RoleMenuModel) TableName() string {
	return "role_menus"
}

// ToDomain converts the persistence model to a domain RoleMenuGrant.
func (m *RoleMenuModel) ToDomain() identity.RoleMenuGrant {
	return identity.RoleMenuGrant{
		RoleID:    m.RoleID,
		MenuID:    m.MenuID,
		CanView:   m.CanView,
		CanCreate: m.CanCreate,
		CanEdit:   m.CanEdit,
		CanDelete: m.CanDelete,
	}
}

// RoleMenuModelFromDomain creates a new persistence model from a domain grant.
func RoleMenuModelFromDomain(g identity.RoleMenuGrant) *RoleMenuModel {
	return &RoleMenuModel{
		RoleID:    g.RoleID,
		MenuID:    g.MenuID,
		CanView:   g.CanView,
		CanCreate: g.CanCreate,
		CanEdit:   g.CanEdit,
		CanDelete: g.CanDelete,
		CreatedAt: time.Now(),
	}
}
