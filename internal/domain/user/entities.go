package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("user with same national id, phone or email already exists")
	ErrInactive  = errors.New("user is inactive")
	ErrType      = errors.New("user type not allowed here")
	ErrSelf      = errors.New("operation not allowed on your own user")
)

type Type string

const (
	TypeFarmer               Type = "farmer"
	TypeCompany              Type = "company"
	TypeCooperative          Type = "cooperative"
	TypeFinancialInstitution Type = "financial_institution"
	TypeAdmin                Type = "admin"
)

func (t Type) Valid() bool {
	switch t {
	case TypeFarmer, TypeCompany, TypeCooperative, TypeFinancialInstitution, TypeAdmin:
		return true
	}
	return false
}

// IsApplicant reports whether users of this type submit credit applications.
func (t Type) IsApplicant() bool {
	return t == TypeFarmer || t == TypeCompany || t == TypeCooperative
}

// Table: users
type User struct {
	ID                  string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	Name                string    `gorm:"column:name;size:150;not null" json:"name"`
	NationalID          string    `gorm:"column:national_id;size:32;not null;uniqueIndex:ux_users_national_id" json:"nationalId"`
	Phone               string    `gorm:"column:phone;size:32;not null;uniqueIndex:ux_users_phone" json:"phone"`
	Email               *string   `gorm:"column:email;size:150;uniqueIndex:ux_users_email" json:"email,omitempty"`
	PasswordHash        string    `gorm:"column:password_hash;size:100;not null" json:"-"`
	UserType            Type      `gorm:"column:user_type;size:32;not null;index" json:"userType"`
	ProfileID           *string   `gorm:"column:profile_id;type:char(36);index" json:"profileId,omitempty"`
	ParentInstitutionID *string   `gorm:"column:parent_institution_id;type:char(36);index" json:"parentInstitutionId,omitempty"`
	IsActive            bool      `gorm:"column:is_active;not null" json:"isActive"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// InstitutionID is the financial institution this user acts for: staff act
// for their parent, an institution account acts for itself. Empty for
// everybody else.
func (u *User) InstitutionID() string {
	if u.ParentInstitutionID != nil && *u.ParentInstitutionID != "" {
		return *u.ParentInstitutionID
	}
	if u.UserType == TypeFinancialInstitution {
		return u.ID
	}
	return ""
}
