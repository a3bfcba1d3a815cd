package mysql

import (
	"context"

	programDomain "agricredit-backend/internal/domain/program"

	"gorm.io/gorm"
)

type ProgramRepository struct{ db *gorm.DB }

func NewProgramRepository(db *gorm.DB) *ProgramRepository { return &ProgramRepository{db: db} }

func (r *ProgramRepository) Create(ctx context.Context, p *programDomain.Program) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProgramRepository) GetByID(ctx context.Context, id string) (*programDomain.Program, error) {
	var out programDomain.Program
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, programDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ProgramRepository) ListActive(ctx context.Context) ([]programDomain.Program, error) {
	var out []programDomain.Program
	res := r.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&out)
	return out, res.Error
}

func (r *ProgramRepository) ListByInstitution(ctx context.Context, institutionID string) ([]programDomain.Program, error) {
	var out []programDomain.Program
	res := r.db.WithContext(ctx).Where("institution_id = ?", institutionID).Order("created_at DESC").Find(&out)
	return out, res.Error
}

func (r *ProgramRepository) Save(ctx context.Context, p *programDomain.Program) error {
	return r.db.WithContext(ctx).Save(p).Error
}
