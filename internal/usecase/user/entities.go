package user

import domain "agricredit-backend/internal/domain/user"

type CreateInput struct {
	Name       string
	NationalID string
	Phone      string
	Email      *string
	Password   string
	// UserType is honored only for unscoped callers; institutions always
	// create financial_institution staff.
	UserType  domain.Type
	ProfileID *string
}

// AdminSeed describes the bootstrap administrator.
type AdminSeed struct {
	Name       string
	NationalID string
	Phone      string
	Email      string
	Password   string
}
