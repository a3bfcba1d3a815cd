package document

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"agricredit-backend/internal/access"
	"agricredit-backend/internal/adapter/repository/mysql"
	"agricredit-backend/internal/domain/application"
	"agricredit-backend/internal/domain/document"
	"agricredit-backend/internal/domain/uow"
	"agricredit-backend/internal/domain/user"
	"agricredit-backend/internal/infrastructure/storage"
	"agricredit-backend/internal/testutil/dbtest"
	"agricredit-backend/internal/testutil/uowmock"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scopedApp is an application owned through a program of institution.
type scopedApp struct {
	app         *application.Application
	institution string
}

// appsByID serves applications from memory; unknown or out-of-scope ids are
// not found.
type appsByID map[string]scopedApp

func (m appsByID) Get(_ context.Context, p *access.Principal, id string) (*application.Application, error) {
	s, ok := m[id]
	if !ok {
		return nil, application.ErrNotFound
	}
	if s.app.UserID == p.UserID || (p.Can(access.ApplicationsRead) && p.InScope(s.institution)) {
		return s.app, nil
	}
	return nil, application.ErrNotFound
}

type failingCreate struct{ document.Repository }

func (failingCreate) Create(context.Context, *document.Document) error {
	return errors.New("disk on fire")
}

type fixture struct {
	uc   *Usecase
	root string
	tx   uow.UnitOfWork
	apps appsByID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.Open(t)
	root := filepath.Join(t.TempDir(), "uploads")
	store, err := storage.NewLocal(root)
	require.NoError(t, err)
	apps := appsByID{
		"app-1": {app: &application.Application{ID: "app-1", UserID: "farmer-1"}, institution: "inst-a"},
		"app-2": {app: &application.Application{ID: "app-2", UserID: "farmer-2"}, institution: "inst-b"},
	}
	tx := mysql.NewGormUoW(db)
	return &fixture{
		uc:   NewUsecase(mysql.NewDocumentRepository(db), store, apps, tx, 1024, zerolog.Nop()),
		root: root, tx: tx, apps: apps,
	}
}

func applicant(id string) *access.Principal {
	return &access.Principal{UserID: id, UserType: user.TypeFarmer, Permissions: access.NewSet(access.DefaultProfiles["applicant"]...)}
}

func institutionOf(id string) *access.Principal {
	return &access.Principal{UserID: id, UserType: user.TypeFinancialInstitution, InstitutionID: id, Permissions: access.NewSet(access.DefaultProfiles["financial_institution"]...)}
}

var institution = institutionOf("inst-a")

func upload(body string) UploadInput {
	return UploadInput{DocumentType: document.TypeLandTitle, FileName: "title.PDF", MimeType: "application/pdf", Size: int64(len(body)), Body: strings.NewReader(body)}
}

// storedFiles counts files under the upload root.
func storedFiles(t *testing.T, root string) int {
	t.Helper()
	n := 0
	err := filepath.Walk(root, func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			n++
		}
		return err
	})
	require.NoError(t, err)
	return n
}

func TestUpload_VersionsAndAttach(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := applicant("farmer-1")

	first, err := f.uc.Upload(ctx, owner, upload("v1"))
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)
	assert.True(t, strings.HasPrefix(first.StorageKey, "farmer-1/"))
	assert.True(t, strings.HasSuffix(first.StorageKey, ".pdf"))
	assert.Equal(t, int64(2), first.SizeBytes)

	in := upload("version-2")
	appID := "app-1"
	in.ApplicationID = &appID
	second, err := f.uc.Upload(ctx, owner, in)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Version)

	mine, err := f.uc.ListMine(ctx, owner)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.True(t, mine[0].IsActive)
	assert.False(t, mine[1].IsActive)
	require.NotNil(t, mine[1].ReplacedByID)
	assert.Equal(t, second.ID, *mine[1].ReplacedByID)

	attached, err := f.uc.ListByApplication(ctx, owner, "app-1")
	require.NoError(t, err)
	require.Len(t, attached, 1)
	assert.Equal(t, second.ID, attached[0].ID)

	file, err := f.uc.Open(ctx, institution, second.ID)
	require.NoError(t, err)
	defer file.Content.Close()
	data, err := io.ReadAll(file.Content)
	require.NoError(t, err)
	assert.Equal(t, "version-2", string(data))
	assert.Equal(t, 2, storedFiles(t, f.root))
}

func TestUpload_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := applicant("farmer-1")

	bad := upload("x")
	bad.DocumentType = "selfie"
	_, err := f.uc.Upload(ctx, owner, bad)
	assert.ErrorIs(t, err, document.ErrInvalidType)

	_, err = f.uc.Upload(ctx, owner, upload(""))
	assert.ErrorIs(t, err, document.ErrEmptyFile)

	_, err = f.uc.Upload(ctx, owner, upload(strings.Repeat("a", 2048)))
	assert.ErrorIs(t, err, document.ErrFileTooLarge)

	// declared size lies; the stored copy is measured
	lying := upload(strings.Repeat("a", 2048))
	lying.Size = 10
	_, err = f.uc.Upload(ctx, owner, lying)
	assert.ErrorIs(t, err, document.ErrFileTooLarge)

	other := upload("x")
	appID := "app-2"
	other.ApplicationID = &appID
	_, err = f.uc.Upload(ctx, owner, other)
	assert.ErrorIs(t, err, application.ErrNotFound)

	_, err = f.uc.Upload(ctx, institution, upload("x"))
	assert.ErrorIs(t, err, access.ErrForbidden)

	assert.Equal(t, 0, storedFiles(t, f.root))
}

func TestUpload_TxFailureRemovesFile(t *testing.T) {
	f := newFixture(t)
	f.uc.uow = uowmock.Wrap(f.tx, func(r *uow.Repos) { r.Documents = failingCreate{r.Documents} })

	_, err := f.uc.Upload(context.Background(), applicant("farmer-1"), upload("payload"))
	require.Error(t, err)
	assert.Equal(t, 0, storedFiles(t, f.root))
}

func TestOpen_Visibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doc, err := f.uc.Upload(ctx, applicant("farmer-1"), upload("secret"))
	require.NoError(t, err)

	_, err = f.uc.Open(ctx, applicant("farmer-2"), doc.ID)
	assert.ErrorIs(t, err, document.ErrForbidden)
	_, err = f.uc.Open(ctx, applicant("farmer-1"), "missing")
	assert.ErrorIs(t, err, document.ErrNotFound)

	file, err := f.uc.Open(ctx, applicant("farmer-1"), doc.ID)
	require.NoError(t, err)
	require.NoError(t, file.Content.Close())

	_, err = f.uc.ListByApplication(ctx, applicant("farmer-2"), "app-1")
	assert.ErrorIs(t, err, application.ErrNotFound)
	docs, err := f.uc.ListByApplication(ctx, institution, "app-1")
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestOpen_InstitutionsSeeOnlyDocumentsOfTheirApplications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := applicant("farmer-1")

	loose, err := f.uc.Upload(ctx, owner, upload("id card"))
	require.NoError(t, err)
	in := UploadInput{DocumentType: document.TypeBankStatement, FileName: "stmt.pdf", MimeType: "application/pdf", Size: 4, Body: strings.NewReader("stmt")}
	appID := "app-1"
	in.ApplicationID = &appID
	attached, err := f.uc.Upload(ctx, owner, in)
	require.NoError(t, err)

	admin := &access.Principal{UserID: "root", UserType: user.TypeAdmin, Permissions: access.NewSet(access.Wildcard)}
	tests := []struct {
		name    string
		p       *access.Principal
		docID   string
		wantErr error
	}{
		{"reviewing institution, attached", institution, attached.ID, nil},
		{"reviewing institution, not attached", institution, loose.ID, document.ErrForbidden},
		{"other institution, attached", institutionOf("inst-b"), attached.ID, document.ErrForbidden},
		{"other institution, not attached", institutionOf("inst-b"), loose.ID, document.ErrForbidden},
		{"administrator", admin, loose.ID, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			file, err := f.uc.Open(ctx, tc.p, tc.docID)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, file.Content.Close())
		})
	}
}
