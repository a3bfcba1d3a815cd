package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"agricredit-backend/internal/access"
	"agricredit-backend/internal/domain/application"
	"agricredit-backend/internal/domain/document"
	"agricredit-backend/internal/domain/uow"
	"agricredit-backend/pkg/id"

	"github.com/rs/zerolog"
)

// ApplicationReader resolves an application the caller is allowed to see.
type ApplicationReader interface {
	Get(ctx context.Context, p *access.Principal, applicationID string) (*application.Application, error)
}

type Usecase struct {
	docs     document.Repository
	store    document.Storage
	apps     ApplicationReader
	uow      uow.UnitOfWork
	maxBytes int64
	log      zerolog.Logger
}

func NewUsecase(docs document.Repository, store document.Storage, apps ApplicationReader, tx uow.UnitOfWork, maxBytes int64, log zerolog.Logger) *Usecase {
	return &Usecase{docs: docs, store: store, apps: apps, uow: tx, maxBytes: maxBytes, log: log}
}

// Upload stores a new version of the caller's document of the given type.
// The previous active version, if any, is superseded. When ApplicationID is
// set the document is attached to that application, which must be the
// caller's own.
func (u *Usecase) Upload(ctx context.Context, p *access.Principal, in UploadInput) (*document.Document, error) {
	if err := p.Require(access.DocumentsUpload); err != nil {
		return nil, err
	}
	if !in.DocumentType.Valid() {
		return nil, fmt.Errorf("%w: %q", document.ErrInvalidType, in.DocumentType)
	}
	if in.Body == nil || in.Size == 0 {
		return nil, document.ErrEmptyFile
	}
	if u.maxBytes > 0 && in.Size > u.maxBytes {
		return nil, document.ErrFileTooLarge
	}
	var appID string
	if in.ApplicationID != nil && *in.ApplicationID != "" {
		a, err := u.apps.Get(ctx, p, *in.ApplicationID)
		if err != nil {
			return nil, err
		}
		if a.UserID != p.UserID {
			return nil, application.ErrNotFound
		}
		appID = a.ID
	}

	key := p.UserID + "/" + id.NewID32() + strings.ToLower(filepath.Ext(in.FileName))
	body := in.Body
	if u.maxBytes > 0 {
		body = io.LimitReader(in.Body, u.maxBytes+1)
	}
	n, err := u.store.Save(ctx, key, body)
	if err != nil {
		return nil, fmt.Errorf("store document: %w", err)
	}
	switch {
	case n == 0:
		u.discard(key)
		return nil, document.ErrEmptyFile
	case u.maxBytes > 0 && n > u.maxBytes:
		u.discard(key)
		return nil, document.ErrFileTooLarge
	}

	mime := in.MimeType
	if mime == "" {
		mime = "application/octet-stream"
	}
	doc := &document.Document{
		ID:           id.New(),
		UserID:       p.UserID,
		DocumentType: in.DocumentType,
		FileName:     filepath.Base(in.FileName),
		MimeType:     mime,
		SizeBytes:    n,
		StorageKey:   key,
		Version:      1,
		IsActive:     true,
	}
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		prev, err := r.Documents.GetActiveByType(ctx, p.UserID, in.DocumentType)
		switch {
		case err == nil:
			doc.Version = prev.Version + 1
		case !errors.Is(err, document.ErrNotFound):
			return err
		}
		if err := r.Documents.Create(ctx, doc); err != nil {
			return err
		}
		if prev != nil {
			if err := r.Documents.Supersede(ctx, prev.ID, doc.ID); err != nil {
				return err
			}
		}
		if appID != "" {
			return r.Documents.Attach(ctx, appID, doc.ID)
		}
		return nil
	})
	if err != nil {
		u.discard(key)
		return nil, err
	}
	u.log.Info().Str("document_id", doc.ID).Str("user_id", p.UserID).
		Str("document_type", string(doc.DocumentType)).Int("version", doc.Version).Msg("document uploaded")
	return doc, nil
}

// discard removes an orphaned file; the request context may be gone.
func (u *Usecase) discard(key string) {
	if err := u.store.Delete(context.Background(), key); err != nil {
		u.log.Warn().Err(err).Str("storage_key", key).Msg("orphaned upload not removed")
	}
}

func (u *Usecase) ListMine(ctx context.Context, p *access.Principal) ([]document.Document, error) {
	if !p.Permissions.HasAny(access.DocumentsReadOwn, access.DocumentsRead) {
		return nil, access.ErrForbidden
	}
	out, err := u.docs.ListByUser(ctx, p.UserID)
	if out == nil && err == nil {
		out = []document.Document{}
	}
	return out, err
}

// Open returns the document and its content for the owner. Other holders of
// documents.read see it only through an attached application in their scope.
func (u *Usecase) Open(ctx context.Context, p *access.Principal, documentID string) (*File, error) {
	doc, err := u.docs.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.UserID != p.UserID {
		ok, err := u.visibleThroughApplication(ctx, p, doc.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, document.ErrForbidden
		}
	}
	rc, err := u.store.Open(ctx, doc.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("open document %s: %w", doc.ID, err)
	}
	return &File{Document: doc, Content: rc}, nil
}

func (u *Usecase) visibleThroughApplication(ctx context.Context, p *access.Principal, documentID string) (bool, error) {
	if !p.Can(access.DocumentsRead) {
		return false, nil
	}
	if p.Unscoped() {
		return true, nil
	}
	appIDs, err := u.docs.ApplicationIDs(ctx, documentID)
	if err != nil {
		return false, err
	}
	for _, appID := range appIDs {
		_, err := u.apps.Get(ctx, p, appID)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, application.ErrNotFound) {
			return false, err
		}
	}
	return false, nil
}

// ListByApplication lists documents attached to an application visible to
// the caller.
func (u *Usecase) ListByApplication(ctx context.Context, p *access.Principal, applicationID string) ([]document.Document, error) {
	a, err := u.apps.Get(ctx, p, applicationID)
	if err != nil {
		return nil, err
	}
	out, err := u.docs.ListByApplication(ctx, a.ID)
	if out == nil && err == nil {
		out = []document.Document{}
	}
	return out, err
}
