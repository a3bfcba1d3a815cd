package program

import "context"

type Repository interface {
	Create(ctx context.Context, p *Program) error
	GetByID(ctx context.Context, id string) (*Program, error)
	ListActive(ctx context.Context) ([]Program, error)
	ListByInstitution(ctx context.Context, institutionID string) ([]Program, error)
	Save(ctx context.Context, p *Program) error
}
