package accountmock

import (
	"context"
	"errors"

	domain "agricredit-backend/internal/domain/account"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("accountmock: method not implemented")

// Repo is a function-backed account repository. A nil Fn delegates to Base
// when set, otherwise it returns errUnimplemented (or nil for writes).
type Repo struct {
	Base domain.Repository

	CreateFn             func(ctx context.Context, a *domain.Account) error
	GetByIDFn            func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdateFn   func(ctx context.Context, id string) (*domain.Account, error)
	GetByApplicationIDFn func(ctx context.Context, applicationID string) (*domain.Account, error)
	SaveFn               func(ctx context.Context, a *domain.Account) error
	CreatePaymentFn      func(ctx context.Context, p *domain.Payment) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Account) error {
	switch {
	case m.CreateFn != nil:
		return m.CreateFn(ctx, a)
	case m.Base != nil:
		return m.Base.Create(ctx, a)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	switch {
	case m.GetByIDFn != nil:
		return m.GetByIDFn(ctx, id)
	case m.Base != nil:
		return m.Base.GetByID(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Account, error) {
	switch {
	case m.GetByIDForUpdateFn != nil:
		return m.GetByIDForUpdateFn(ctx, id)
	case m.Base != nil:
		return m.Base.GetByIDForUpdate(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Account, error) {
	switch {
	case m.GetByApplicationIDFn != nil:
		return m.GetByApplicationIDFn(ctx, applicationID)
	case m.Base != nil:
		return m.Base.GetByApplicationID(ctx, applicationID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	if m.Base != nil {
		return m.Base.ListByUser(ctx, userID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByInstitution(ctx context.Context, institutionID string) ([]domain.Account, error) {
	if m.Base != nil {
		return m.Base.ListByInstitution(ctx, institutionID)
	}
	return nil, errUnimplemented
}

func (m *Repo) Save(ctx context.Context, a *domain.Account) error {
	switch {
	case m.SaveFn != nil:
		return m.SaveFn(ctx, a)
	case m.Base != nil:
		return m.Base.Save(ctx, a)
	}
	return nil
}

func (m *Repo) CreatePayment(ctx context.Context, p *domain.Payment) error {
	switch {
	case m.CreatePaymentFn != nil:
		return m.CreatePaymentFn(ctx, p)
	case m.Base != nil:
		return m.Base.CreatePayment(ctx, p)
	}
	return nil
}

func (m *Repo) ListPayments(ctx context.Context, accountID string) ([]domain.Payment, error) {
	if m.Base != nil {
		return m.Base.ListPayments(ctx, accountID)
	}
	return nil, errUnimplemented
}
