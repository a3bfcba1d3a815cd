package uow

import (
	"context"

	"agricredit-backend/internal/domain/account"
	"agricredit-backend/internal/domain/application"
	"agricredit-backend/internal/domain/document"
	"agricredit-backend/internal/domain/notification"
	"agricredit-backend/internal/domain/profile"
	"agricredit-backend/internal/domain/program"
	"agricredit-backend/internal/domain/user"
)

// Repos bound to one transaction.
type Repos struct {
	Users         user.Repository
	Profiles      profile.Repository
	Programs      program.Repository
	Applications  application.Repository
	Accounts      account.Repository
	Notifications notification.Repository
	Documents     document.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the application row first, then pass it in
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *application.Application) error) error
	// lock the account row first, then pass it in
	WithinAccountTx(ctx context.Context, accountID string, fn func(r Repos, a *account.Account) error) error
}
