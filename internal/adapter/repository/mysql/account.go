package mysql

import (
	"context"

	accountDomain "agricredit-backend/internal/domain/account"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

// Create relies on the unique index over application_id to refuse a second
// account for the same application.
func (r *AccountRepository) Create(ctx context.Context, a *accountDomain.Account) error {
	return duplicate(r.db.WithContext(ctx).Create(a).Error, accountDomain.ErrAlreadyExists)
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*accountDomain.Account, error) {
	var out accountDomain.Account
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, accountDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, id string) (*accountDomain.Account, error) {
	var out accountDomain.Account
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, accountDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *AccountRepository) GetByApplicationID(ctx context.Context, applicationID string) (*accountDomain.Account, error) {
	var out accountDomain.Account
	res := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, accountDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *AccountRepository) ListByUser(ctx context.Context, userID string) ([]accountDomain.Account, error) {
	var out []accountDomain.Account
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&out)
	return out, res.Error
}

func (r *AccountRepository) ListByInstitution(ctx context.Context, institutionID string) ([]accountDomain.Account, error) {
	var out []accountDomain.Account
	q := r.db.WithContext(ctx)
	if institutionID != "" {
		q = q.Where("institution_id = ?", institutionID)
	}
	res := q.Order("created_at DESC").Find(&out)
	return out, res.Error
}

func (r *AccountRepository) Save(ctx context.Context, a *accountDomain.Account) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AccountRepository) CreatePayment(ctx context.Context, p *accountDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *AccountRepository) ListPayments(ctx context.Context, accountID string) ([]accountDomain.Payment, error) {
	var out []accountDomain.Payment
	res := r.db.WithContext(ctx).Where("account_id = ?", accountID).Order("payment_date DESC, created_at DESC").Find(&out)
	return out, res.Error
}
