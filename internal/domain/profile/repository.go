package profile

import "context"

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetSystemByName(ctx context.Context, name string) (*Profile, error)
	// List returns system profiles plus the ones owned by institutionID.
	// A nil institutionID lists every profile.
	List(ctx context.Context, institutionID *string) ([]Profile, error)
	Save(ctx context.Context, p *Profile) error
	ReplacePermissions(ctx context.Context, p *Profile, perms []Permission) error

	EnsurePermission(ctx context.Context, perm *Permission) error
	ListPermissions(ctx context.Context) ([]Permission, error)
	GetPermissionsByNames(ctx context.Context, names []string) ([]Permission, error)
	PermissionNames(ctx context.Context, profileID string) ([]string, error)
}
