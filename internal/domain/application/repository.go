package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	// GetByIDForUpdate locks the row until the surrounding tx ends.
	GetByIDForUpdate(ctx context.Context, id string) (*Application, error)
	ListByUser(ctx context.Context, userID string) ([]Application, error)
	// ListForInstitution returns applications without a program plus those
	// whose program is owned by institutionID. An empty institutionID lists
	// everything.
	ListForInstitution(ctx context.Context, institutionID string) ([]Application, error)
	// UpdateStatus persists a transition only if the stored status still
	// equals from; otherwise ErrStale.
	UpdateStatus(ctx context.Context, a *Application, from Status) error
	// ListApprovedWithoutAccount pages approved applications lacking an
	// account in id order, starting after afterID ("" for the first page).
	ListApprovedWithoutAccount(ctx context.Context, afterID string, limit int) ([]Application, error)
}
