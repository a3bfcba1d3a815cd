package document

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrForbidden    = errors.New("document belongs to another user")
	ErrInvalidType  = errors.New("unknown document type")
	ErrEmptyFile    = errors.New("file is empty")
	ErrFileTooLarge = errors.New("file exceeds upload limit")
)

type Type string

const (
	TypeNationalID      Type = "national_id"
	TypeTaxID           Type = "tax_id"
	TypeProofOfAddress  Type = "proof_of_address"
	TypeLandTitle       Type = "land_title"
	TypeBusinessLicense Type = "business_license"
	TypeBankStatement   Type = "bank_statement"
	TypeIncomeProof     Type = "income_proof"
	TypeOther           Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypeNationalID, TypeTaxID, TypeProofOfAddress, TypeLandTitle,
		TypeBusinessLicense, TypeBankStatement, TypeIncomeProof, TypeOther:
		return true
	}
	return false
}

// Table: documents
type Document struct {
	ID           string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	UserID       string    `gorm:"column:user_id;type:char(36);not null;index:idx_documents_user_type" json:"userId"`
	DocumentType Type      `gorm:"column:document_type;size:40;not null;index:idx_documents_user_type" json:"documentType"`
	FileName     string    `gorm:"column:file_name;size:255;not null" json:"fileName"`
	MimeType     string    `gorm:"column:mime_type;size:100;not null" json:"mimeType"`
	SizeBytes    int64     `gorm:"column:size_bytes;not null" json:"sizeBytes"`
	StorageKey   string    `gorm:"column:storage_key;size:255;not null" json:"-"`
	Version      int       `gorm:"column:version;not null" json:"version"`
	IsActive     bool      `gorm:"column:is_active;not null" json:"isActive"`
	ReplacedByID *string   `gorm:"column:replaced_by_id;type:char(36)" json:"replacedById,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (Document) TableName() string { return "documents" }

// Table: application_documents
type ApplicationDocument struct {
	ApplicationID string    `gorm:"column:application_id;type:char(36);primaryKey"`
	DocumentID    string    `gorm:"column:document_id;type:char(36);primaryKey"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ApplicationDocument) TableName() string { return "application_documents" }

type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id string) (*Document, error)
	GetActiveByType(ctx context.Context, userID string, t Type) (*Document, error)
	// Supersede deactivates oldID and points it at newID.
	Supersede(ctx context.Context, oldID, newID string) error
	ListByUser(ctx context.Context, userID string) ([]Document, error)
	ListByApplication(ctx context.Context, applicationID string) ([]Document, error)
	Attach(ctx context.Context, applicationID, documentID string) error
	// ApplicationIDs lists the applications documentID is attached to.
	ApplicationIDs(ctx context.Context, documentID string) ([]string, error)
}

// Storage holds document bytes addressed by an opaque key.
type Storage interface {
	Save(ctx context.Context, key string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}
