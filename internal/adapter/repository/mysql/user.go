package mysql

import (
	"context"

	userDomain "agricredit-backend/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return duplicate(r.db.WithContext(ctx).Create(u).Error, userDomain.ErrDuplicate)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, userDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*userDomain.User, error) {
	var out userDomain.User
	res := r.db.WithContext(ctx).Where("phone = ? OR email = ?", login, login).First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, userDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) ExistsByIdentity(ctx context.Context, nationalID, phone string, email *string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&userDomain.User{})
	if email != nil && *email != "" {
		q = q.Where("national_id = ? OR phone = ? OR email = ?", nationalID, phone, *email)
	} else {
		q = q.Where("national_id = ? OR phone = ?", nationalID, phone)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepository) List(ctx context.Context) ([]userDomain.User, error) {
	var out []userDomain.User
	res := r.db.WithContext(ctx).Order("created_at DESC").Find(&out)
	return out, res.Error
}

func (r *UserRepository) ListByInstitution(ctx context.Context, institutionID string) ([]userDomain.User, error) {
	var out []userDomain.User
	res := r.db.WithContext(ctx).
		Where("id = ? OR parent_institution_id = ?", institutionID, institutionID).
		Order("created_at DESC").
		Find(&out)
	return out, res.Error
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id, profileID string) error {
	res := r.db.WithContext(ctx).Model(&userDomain.User{}).Where("id = ?", id).Update("profile_id", profileID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return userDomain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).Model(&userDomain.User{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return userDomain.ErrNotFound
	}
	return nil
}
