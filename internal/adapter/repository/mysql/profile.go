package mysql

import (
	"context"
	"errors"

	profileDomain "agricredit-backend/internal/domain/profile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) *ProfileRepository { return &ProfileRepository{db: db} }

func (r *ProfileRepository) Create(ctx context.Context, p *profileDomain.Profile) error {
	return r.db.WithContext(ctx).Omit("Permissions.*").Create(p).Error
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*profileDomain.Profile, error) {
	var out profileDomain.Profile
	res := r.db.WithContext(ctx).Preload("Permissions").Where("id = ?", id).First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, profileDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ProfileRepository) GetSystemByName(ctx context.Context, name string) (*profileDomain.Profile, error) {
	var out profileDomain.Profile
	res := r.db.WithContext(ctx).Preload("Permissions").
		Where("name = ? AND is_system = ?", name, true).
		First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, profileDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ProfileRepository) List(ctx context.Context, institutionID *string) ([]profileDomain.Profile, error) {
	var out []profileDomain.Profile
	q := r.db.WithContext(ctx).Preload("Permissions").Where("is_active = ?", true)
	if institutionID != nil {
		q = q.Where("is_system = ? OR institution_id = ?", true, *institutionID)
	}
	res := q.Order("is_system DESC, name ASC").Find(&out)
	return out, res.Error
}

func (r *ProfileRepository) Save(ctx context.Context, p *profileDomain.Profile) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

func (r *ProfileRepository) ReplacePermissions(ctx context.Context, p *profileDomain.Profile, perms []profileDomain.Permission) error {
	return r.db.WithContext(ctx).Model(p).Association("Permissions").Replace(perms)
}

// EnsurePermission inserts perm unless a permission with the same name
// exists; perm is filled with the stored row either way.
func (r *ProfileRepository) EnsurePermission(ctx context.Context, perm *profileDomain.Permission) error {
	var existing profileDomain.Permission
	err := r.db.WithContext(ctx).Where("name = ?", perm.Name).First(&existing).Error
	if err == nil {
		*perm = existing
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(perm).Error
}

func (r *ProfileRepository) ListPermissions(ctx context.Context) ([]profileDomain.Permission, error) {
	var out []profileDomain.Permission
	res := r.db.WithContext(ctx).Order("name ASC").Find(&out)
	return out, res.Error
}

func (r *ProfileRepository) GetPermissionsByNames(ctx context.Context, names []string) ([]profileDomain.Permission, error) {
	var out []profileDomain.Permission
	if len(names) == 0 {
		return out, nil
	}
	res := r.db.WithContext(ctx).Where("name IN ?", names).Find(&out)
	return out, res.Error
}

// PermissionNames resolves the effective permissions of an active profile.
func (r *ProfileRepository) PermissionNames(ctx context.Context, profileID string) ([]string, error) {
	var names []string
	res := r.db.WithContext(ctx).
		Table("permissions").
		Joins("JOIN profile_permissions pp ON pp.permission_id = permissions.id").
		Joins("JOIN profiles p ON p.id = pp.profile_id").
		Where("pp.profile_id = ? AND p.is_active = ?", profileID, true).
		Pluck("permissions.name", &names)
	return names, res.Error
}
