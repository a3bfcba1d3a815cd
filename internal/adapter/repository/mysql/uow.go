package mysql

import (
	"context"

	accountDomain "agricredit-backend/internal/domain/account"
	appDomain "agricredit-backend/internal/domain/application"
	"agricredit-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// NewRepos binds every repository to db (a plain handle or a tx).
func NewRepos(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Users:         &UserRepository{db: db},
		Profiles:      &ProfileRepository{db: db},
		Programs:      &ProgramRepository{db: db},
		Applications:  &ApplicationRepository{db: db},
		Accounts:      &AccountRepository{db: db},
		Notifications: &NotificationRepository{db: db},
		Documents:     &DocumentRepository{db: db},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepos(tx))
	})
}

func (u *GormUoW) WithinApplicationTx(ctx context.Context, applicationID string, fn func(r uow.Repos, a *appDomain.Application) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := NewRepos(tx)
		// lock the application row up-front to prevent races
		a, err := r.Applications.GetByIDForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}

func (u *GormUoW) WithinAccountTx(ctx context.Context, accountID string, fn func(r uow.Repos, a *accountDomain.Account) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := NewRepos(tx)
		a, err := r.Accounts.GetByIDForUpdate(ctx, accountID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}
