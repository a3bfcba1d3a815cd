package mysql

import (
	"context"
	"errors"
	"testing"

	docDomain "agricredit-backend/internal/domain/document"
	userDomain "agricredit-backend/internal/domain/user"

	"github.com/google/uuid"
)

func makeDocument(userID string, typ docDomain.Type, version int) *docDomain.Document {
	id := uuid.NewString()
	return &docDomain.Document{
		ID:           id,
		UserID:       userID,
		DocumentType: typ,
		FileName:     "scan.pdf",
		MimeType:     "application/pdf",
		SizeBytes:    1024,
		StorageKey:   userID + "/" + id,
		Version:      version,
		IsActive:     true,
	}
}

func TestDocumentRepository_VersioningChain(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewDocumentRepository(db)

	if _, err := repo.GetActiveByType(ctx, "u1", docDomain.TypeNationalID); !errors.Is(err, docDomain.ErrNotFound) {
		t.Fatalf("empty GetActiveByType = %v", err)
	}

	v1 := makeDocument("u1", docDomain.TypeNationalID, 1)
	if err := repo.Create(ctx, v1); err != nil {
		t.Fatal(err)
	}
	v2 := makeDocument("u1", docDomain.TypeNationalID, 2)
	if err := repo.Create(ctx, v2); err != nil {
		t.Fatal(err)
	}
	if err := repo.Supersede(ctx, v1.ID, v2.ID); err != nil {
		t.Fatalf("Supersede: %v", err)
	}
	// superseding twice is rejected
	if err := repo.Supersede(ctx, v1.ID, v2.ID); !errors.Is(err, docDomain.ErrNotFound) {
		t.Fatalf("second Supersede = %v", err)
	}

	active, err := repo.GetActiveByType(ctx, "u1", docDomain.TypeNationalID)
	if err != nil || active.ID != v2.ID {
		t.Fatalf("active = %+v, %v", active, err)
	}
	old, _ := repo.GetByID(ctx, v1.ID)
	if old.IsActive || old.ReplacedByID == nil || *old.ReplacedByID != v2.ID {
		t.Fatalf("old version = %+v", old)
	}

	all, _ := repo.ListByUser(ctx, "u1")
	if len(all) != 2 || all[0].Version != 2 {
		t.Fatalf("ListByUser = %+v", all)
	}
}

func TestDocumentRepository_AttachIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewDocumentRepository(db)
	farmer := seedUser(t, db, userDomain.TypeFarmer, "+244930000001")
	app := seedApplication(t, db, farmer.ID, nil)

	doc := makeDocument(farmer.ID, docDomain.TypeLandTitle, 1)
	if err := repo.Create(ctx, doc); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := repo.Attach(ctx, app.ID, doc.ID); err != nil {
			t.Fatalf("Attach #%d: %v", i+1, err)
		}
	}
	got, err := repo.ListByApplication(ctx, app.ID)
	if err != nil || len(got) != 1 || got[0].ID != doc.ID {
		t.Fatalf("ListByApplication = %+v, %v", got, err)
	}
	ids, err := repo.ApplicationIDs(ctx, doc.ID)
	if err != nil || len(ids) != 1 || ids[0] != app.ID {
		t.Fatalf("ApplicationIDs = %v, %v", ids, err)
	}
	if ids, err := repo.ApplicationIDs(ctx, "unattached"); err != nil || len(ids) != 0 {
		t.Fatalf("ApplicationIDs(unattached) = %v, %v", ids, err)
	}
}
