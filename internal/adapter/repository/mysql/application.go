package mysql

import (
	"context"
	"time"

	appDomain "agricredit-backend/internal/domain/application"
	programDomain "agricredit-backend/internal/domain/program"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, appDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ApplicationRepository) GetByIDForUpdate(ctx context.Context, id string) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, appDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ApplicationRepository) ListByUser(ctx context.Context, userID string) ([]appDomain.Application, error) {
	var out []appDomain.Application
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) ListForInstitution(ctx context.Context, institutionID string) ([]appDomain.Application, error) {
	var out []appDomain.Application
	q := r.db.WithContext(ctx)
	if institutionID != "" {
		owned := r.db.WithContext(ctx).Model(&programDomain.Program{}).Select("id").Where("institution_id = ?", institutionID)
		q = q.Where("credit_program_id IS NULL OR credit_program_id IN (?)", owned)
	}
	res := q.Order("created_at DESC").Find(&out)
	return out, res.Error
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, a *appDomain.Application, from appDomain.Status) error {
	res := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Where("id = ? AND status = ?", a.ID, from).
		Updates(map[string]any{
			"status":            a.Status,
			"rejection_reason":  a.RejectionReason,
			"reviewed_by":       a.ReviewedBy,
			"approved_by":       a.ApprovedBy,
			"status_changed_at": a.StatusChangedAt,
			"updated_at":        time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return appDomain.ErrStale
	}
	return nil
}

func (r *ApplicationRepository) ListApprovedWithoutAccount(ctx context.Context, afterID string, limit int) ([]appDomain.Application, error) {
	var out []appDomain.Application
	res := r.db.WithContext(ctx).
		Where("status = ?", appDomain.StatusApproved).
		Where("NOT EXISTS (SELECT 1 FROM accounts WHERE accounts.application_id = credit_applications.id)").
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}
