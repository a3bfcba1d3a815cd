package account

import "context"

type Repository interface {
	Create(ctx context.Context, a *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByIDForUpdate(ctx context.Context, id string) (*Account, error)
	GetByApplicationID(ctx context.Context, applicationID string) (*Account, error)
	ListByUser(ctx context.Context, userID string) ([]Account, error)
	// ListByInstitution lists accounts opened by institutionID; empty lists all.
	ListByInstitution(ctx context.Context, institutionID string) ([]Account, error)
	Save(ctx context.Context, a *Account) error

	CreatePayment(ctx context.Context, p *Payment) error
	ListPayments(ctx context.Context, accountID string) ([]Payment, error)
}
