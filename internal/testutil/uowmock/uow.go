package uowmock

import (
	"context"
	"errors"

	"agricredit-backend/internal/domain/account"
	"agricredit-backend/internal/domain/application"
	"agricredit-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn            func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinApplicationTxFn func(ctx context.Context, applicationID string, fn func(r uow.Repos, a *application.Application) error) error
	WithinAccountTxFn     func(ctx context.Context, accountID string, fn func(r uow.Repos, a *account.Account) error) error
}

func New() *UoW { return &UoW{} }

// Wrap delegates every transaction to inner, letting override swap
// repositories inside the tx. Used to inject failures into a real database.
func Wrap(inner uow.UnitOfWork, override func(r *uow.Repos)) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(uow.Repos) error) error {
			return inner.WithinTx(ctx, func(r uow.Repos) error {
				override(&r)
				return fn(r)
			})
		},
		WithinApplicationTxFn: func(ctx context.Context, id string, fn func(uow.Repos, *application.Application) error) error {
			return inner.WithinApplicationTx(ctx, id, func(r uow.Repos, a *application.Application) error {
				override(&r)
				return fn(r, a)
			})
		},
		WithinAccountTxFn: func(ctx context.Context, id string, fn func(uow.Repos, *account.Account) error) error {
			return inner.WithinAccountTx(ctx, id, func(r uow.Repos, a *account.Account) error {
				override(&r)
				return fn(r, a)
			})
		},
	}
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinApplicationTx(ctx context.Context, applicationID string, fn func(r uow.Repos, a *application.Application) error) error {
	if m.WithinApplicationTxFn != nil {
		return m.WithinApplicationTxFn(ctx, applicationID, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinAccountTx(ctx context.Context, accountID string, fn func(r uow.Repos, a *account.Account) error) error {
	if m.WithinAccountTxFn != nil {
		return m.WithinAccountTxFn(ctx, accountID, fn)
	}
	return errUnimplemented
}
