package mysql

import (
	"context"

	docDomain "agricredit-backend/internal/domain/document"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DocumentRepository struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) *DocumentRepository { return &DocumentRepository{db: db} }

func (r *DocumentRepository) Create(ctx context.Context, d *docDomain.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*docDomain.Document, error) {
	var out docDomain.Document
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, docDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *DocumentRepository) GetActiveByType(ctx context.Context, userID string, t docDomain.Type) (*docDomain.Document, error) {
	var out docDomain.Document
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND document_type = ? AND is_active = ?", userID, t, true).
		Order("version DESC").
		First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, docDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *DocumentRepository) Supersede(ctx context.Context, oldID, newID string) error {
	res := r.db.WithContext(ctx).Model(&docDomain.Document{}).
		Where("id = ? AND is_active = ?", oldID, true).
		Updates(map[string]any{"is_active": false, "replaced_by_id": newID})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return docDomain.ErrNotFound
	}
	return nil
}

func (r *DocumentRepository) ListByUser(ctx context.Context, userID string) ([]docDomain.Document, error) {
	var out []docDomain.Document
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("document_type ASC, version DESC").
		Find(&out)
	return out, res.Error
}

func (r *DocumentRepository) ListByApplication(ctx context.Context, applicationID string) ([]docDomain.Document, error) {
	var out []docDomain.Document
	res := r.db.WithContext(ctx).
		Joins("JOIN application_documents ad ON ad.document_id = documents.id").
		Where("ad.application_id = ?", applicationID).
		Order("documents.document_type ASC, documents.version DESC").
		Find(&out)
	return out, res.Error
}

func (r *DocumentRepository) Attach(ctx context.Context, applicationID, documentID string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&docDomain.ApplicationDocument{ApplicationID: applicationID, DocumentID: documentID}).Error
}

func (r *DocumentRepository) ApplicationIDs(ctx context.Context, documentID string) ([]string, error) {
	var out []string
	res := r.db.WithContext(ctx).Model(&docDomain.ApplicationDocument{}).
		Where("document_id = ?", documentID).
		Order("application_id ASC").
		Pluck("application_id", &out)
	return out, res.Error
}
