package program

import (
	"context"
	"errors"
	"testing"

	"agricredit-backend/internal/access"
	"agricredit-backend/internal/adapter/repository/mysql"
	domain "agricredit-backend/internal/domain/program"
	"agricredit-backend/internal/testutil/dbtest"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newUsecase(t *testing.T) *Usecase {
	t.Helper()
	return NewUsecase(mysql.NewProgramRepository(dbtest.Open(t)), decimal.NewFromInt(40), zerolog.Nop())
}

func institution(id string) *access.Principal {
	return &access.Principal{UserID: id, InstitutionID: id, Permissions: access.NewSet(access.DefaultProfiles["financial_institution"]...)}
}

func validInput() CreateInput {
	return CreateInput{
		Name: " Harvest ", MinAmount: dec("100000"), MaxAmount: dec("2000000"),
		MinTermMonths: 6, MaxTermMonths: 36, InterestRate: dec("12.5"), ProcessingFee: dec("1"),
	}
}

func TestCreate(t *testing.T) {
	uc := newUsecase(t)
	ctx := context.Background()

	p, err := uc.Create(ctx, institution("inst-a"), validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Name != "Harvest" || p.InstitutionID != "inst-a" || !p.IsActive || !p.MaxEffortRate.Equal(dec("40")) {
		t.Fatalf("program = %+v", p)
	}

	bad := validInput()
	bad.MaxAmount = dec("50000")
	if _, err := uc.Create(ctx, institution("inst-a"), bad); !errors.Is(err, domain.ErrInvalidRange) {
		t.Fatalf("inverted range err = %v", err)
	}

	farmer := &access.Principal{UserID: "f", Permissions: access.NewSet(access.DefaultProfiles["applicant"]...)}
	if _, err := uc.Create(ctx, farmer, validInput()); !errors.Is(err, access.ErrForbidden) {
		t.Fatalf("farmer create err = %v", err)
	}

	root := &access.Principal{UserID: "root", Permissions: access.NewSet(access.Wildcard)}
	if _, err := uc.Create(ctx, root, validInput()); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("admin without owner err = %v", err)
	}
	in := validInput()
	in.InstitutionID = "inst-b"
	p, err = uc.Create(ctx, root, in)
	if err != nil || p.InstitutionID != "inst-b" {
		t.Fatalf("admin create = %+v, %v", p, err)
	}
}

func TestUpdateAndToggle_OwnerOnly(t *testing.T) {
	uc := newUsecase(t)
	ctx := context.Background()
	p, err := uc.Create(ctx, institution("inst-a"), validInput())
	if err != nil {
		t.Fatal(err)
	}

	rate := dec("11")
	if _, err := uc.Update(ctx, institution("inst-b"), p.ID, UpdateInput{InterestRate: &rate}); !errors.Is(err, domain.ErrNotOwner) {
		t.Fatalf("foreign update err = %v", err)
	}
	got, err := uc.Update(ctx, institution("inst-a"), p.ID, UpdateInput{InterestRate: &rate})
	if err != nil || !got.InterestRate.Equal(rate) {
		t.Fatalf("Update = %+v, %v", got, err)
	}
	term := 3
	if _, err := uc.Update(ctx, institution("inst-a"), p.ID, UpdateInput{MaxTermMonths: &term}); !errors.Is(err, domain.ErrInvalidRange) {
		t.Fatalf("invalid update err = %v", err)
	}

	got, err = uc.Toggle(ctx, institution("inst-a"), p.ID)
	if err != nil || got.IsActive {
		t.Fatalf("Toggle = %+v, %v", got, err)
	}
	active, _ := uc.ListActive(ctx)
	if len(active) != 0 {
		t.Fatalf("inactive program still listed")
	}
	if _, err := uc.Get(ctx, nil, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("public get of inactive program err = %v", err)
	}
	if _, err := uc.Get(ctx, institution("inst-a"), p.ID); err != nil {
		t.Fatalf("owner get err = %v", err)
	}
	mine, err := uc.ListMine(ctx, institution("inst-a"))
	if err != nil || len(mine) != 1 {
		t.Fatalf("ListMine = %d, %v", len(mine), err)
	}
}
