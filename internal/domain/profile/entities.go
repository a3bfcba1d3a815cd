package profile

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("profile not found")
	ErrSystemProfile      = errors.New("system profiles cannot be modified")
	ErrUnknownPermission  = errors.New("unknown permission")
	ErrPermissionNotOwned = errors.New("cannot grant a permission you do not hold")
)

// System profile names.
const (
	Administrator        = "administrator"
	FinancialInstitution = "financial_institution"
	Applicant            = "applicant"
)

// Table: permissions
type Permission struct {
	ID          string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Module      string    `gorm:"column:module;size:64;not null" json:"module"`
	Action      string    `gorm:"column:action;size:64;not null" json:"action"`
	Name        string    `gorm:"column:name;size:130;not null;uniqueIndex:ux_permissions_name" json:"name"`
	Description string    `gorm:"column:description;size:255" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (Permission) TableName() string { return "permissions" }

// Table: profiles
type Profile struct {
	ID            string       `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Name          string       `gorm:"column:name;size:100;not null;index" json:"name"`
	Description   string       `gorm:"column:description;size:255" json:"description"`
	InstitutionID *string      `gorm:"column:institution_id;type:char(36);index" json:"institutionId,omitempty"`
	IsSystem      bool         `gorm:"column:is_system;not null" json:"isSystem"`
	IsActive      bool         `gorm:"column:is_active;not null" json:"isActive"`
	Permissions   []Permission `gorm:"many2many:profile_permissions" json:"permissions"`
	CreatedAt     time.Time    `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time    `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Profile) TableName() string { return "profiles" }

func (p *Profile) PermissionNames() []string {
	out := make([]string, 0, len(p.Permissions))
	for _, perm := range p.Permissions {
		out = append(out, perm.Name)
	}
	return out
}
