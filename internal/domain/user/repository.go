package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	// GetByLogin looks a user up by phone or email.
	GetByLogin(ctx context.Context, login string) (*User, error)
	ExistsByIdentity(ctx context.Context, nationalID, phone string, email *string) (bool, error)
	List(ctx context.Context) ([]User, error)
	ListByInstitution(ctx context.Context, institutionID string) ([]User, error)
	UpdateProfile(ctx context.Context, id, profileID string) error
	SetActive(ctx context.Context, id string, active bool) error
}
