package mysql

import (
	"context"
	"errors"
	"testing"

	programDomain "agricredit-backend/internal/domain/program"
	userDomain "agricredit-backend/internal/domain/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestProgramRepository_CreateGetSave(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewProgramRepository(db)
	inst := seedUser(t, db, userDomain.TypeFinancialInstitution, "+244920000001")

	p := seedProgram(t, db, inst.ID)
	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.MaxAmount.Equal(decimal.NewFromInt(2_000_000)) || got.MaxTermMonths != 48 {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	got.IsActive = false
	if err := repo.Save(ctx, got); err != nil {
		t.Fatalf("Save: %v", err)
	}
	again, _ := repo.GetByID(ctx, p.ID)
	if again.IsActive {
		t.Fatal("deactivation not persisted")
	}

	if _, err := repo.GetByID(ctx, uuid.NewString()); !errors.Is(err, programDomain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestProgramRepository_Lists(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewProgramRepository(db)
	instA := seedUser(t, db, userDomain.TypeFinancialInstitution, "+244920000002")
	instB := seedUser(t, db, userDomain.TypeFinancialInstitution, "+244920000003")

	seedProgram(t, db, instA.ID)
	off := seedProgram(t, db, instA.ID)
	off.IsActive = false
	if err := repo.Save(ctx, off); err != nil {
		t.Fatal(err)
	}
	seedProgram(t, db, instB.ID)

	active, err := repo.ListActive(ctx)
	if err != nil || len(active) != 2 {
		t.Fatalf("ListActive = %d, %v", len(active), err)
	}
	own, err := repo.ListByInstitution(ctx, instA.ID)
	if err != nil || len(own) != 2 {
		t.Fatalf("ListByInstitution = %d, %v", len(own), err)
	}
}
