package mysql

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	appDomain "agricredit-backend/internal/domain/application"
	userDomain "agricredit-backend/internal/domain/user"

	"github.com/google/uuid"
)

func TestApplicationRepository_CreateGet(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewApplicationRepository(db)
	farmer := seedUser(t, db, userDomain.TypeFarmer, "+244900000001")

	a := seedApplication(t, db, farmer.ID, nil)
	got, err := repo.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Amount.Equal(a.Amount) || got.Status != appDomain.StatusPending || got.ProjectType != appDomain.ProjectCropProduction {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if _, err := repo.GetByID(ctx, uuid.NewString()); !errors.Is(err, appDomain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if _, err := repo.GetByIDForUpdate(ctx, uuid.NewString()); !errors.Is(err, appDomain.ErrNotFound) {
		t.Fatalf("for update err = %v, want ErrNotFound", err)
	}
}

func TestApplicationRepository_ListScopes(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewApplicationRepository(db)

	farmer := seedUser(t, db, userDomain.TypeFarmer, "+244900000002")
	other := seedUser(t, db, userDomain.TypeCooperative, "+244900000003")
	instA := seedUser(t, db, userDomain.TypeFinancialInstitution, "+244900000004")
	instB := seedUser(t, db, userDomain.TypeFinancialInstitution, "+244900000005")
	progA := seedProgram(t, db, instA.ID)
	progB := seedProgram(t, db, instB.ID)

	seedApplication(t, db, farmer.ID, nil)
	seedApplication(t, db, farmer.ID, &progA.ID)
	seedApplication(t, db, other.ID, &progB.ID)

	mine, err := repo.ListByUser(ctx, farmer.ID)
	if err != nil || len(mine) != 2 {
		t.Fatalf("ListByUser = %d, %v", len(mine), err)
	}

	forA, err := repo.ListForInstitution(ctx, instA.ID)
	if err != nil {
		t.Fatalf("ListForInstitution: %v", err)
	}
	if len(forA) != 2 {
		t.Fatalf("institution A sees %d, want 2 (own program + unassigned)", len(forA))
	}
	for _, a := range forA {
		if a.CreditProgramID != nil && *a.CreditProgramID == progB.ID {
			t.Fatal("institution A sees B's application")
		}
	}
	all, _ := repo.ListForInstitution(ctx, "")
	if len(all) != 3 {
		t.Fatalf("unscoped = %d, want 3", len(all))
	}
}

func TestApplicationRepository_UpdateStatusIsConditional(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewApplicationRepository(db)
	farmer := seedUser(t, db, userDomain.TypeFarmer, "+244900000006")
	a := seedApplication(t, db, farmer.ID, nil)

	if err := a.Transition(appDomain.StatusUnderReview, "inst", "", time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpdateStatus(ctx, a, appDomain.StatusPending); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	// replaying the same transition from a stale read must not apply
	if err := repo.UpdateStatus(ctx, a, appDomain.StatusPending); !errors.Is(err, appDomain.ErrStale) {
		t.Fatalf("stale update err = %v, want ErrStale", err)
	}

	got, _ := repo.GetByID(ctx, a.ID)
	if got.Status != appDomain.StatusUnderReview || got.ReviewedBy == nil || *got.ReviewedBy != "inst" {
		t.Fatalf("persisted = %+v", got)
	}
}

func TestApplicationRepository_ListApprovedWithoutAccount(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewApplicationRepository(db)
	farmer := seedUser(t, db, userDomain.TypeFarmer, "+244900000007")

	orphan := makeApplication(farmer.ID, nil)
	orphan.Status = appDomain.StatusApproved
	withAccount := makeApplication(farmer.ID, nil)
	withAccount.Status = appDomain.StatusApproved
	pending := makeApplication(farmer.ID, nil)
	for _, a := range []*appDomain.Application{orphan, withAccount, pending} {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatal(err)
		}
	}
	if err := NewAccountRepository(db).Create(ctx, makeAccount(withAccount, "inst")); err != nil {
		t.Fatal(err)
	}

	got, err := repo.ListApprovedWithoutAccount(ctx, "", 10)
	if err != nil {
		t.Fatalf("ListApprovedWithoutAccount: %v", err)
	}
	if len(got) != 1 || got[0].ID != orphan.ID {
		t.Fatalf("got %+v, want only the orphan", got)
	}
	if got, _ := repo.ListApprovedWithoutAccount(ctx, orphan.ID, 10); len(got) != 0 {
		t.Fatalf("page after the orphan = %+v, want empty", got)
	}
}

func TestApplicationRepository_ListApprovedWithoutAccountPagesByID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewApplicationRepository(db)
	farmer := seedUser(t, db, userDomain.TypeFarmer, "+244900000008")

	var want []string
	for i := 0; i < 3; i++ {
		a := makeApplication(farmer.ID, nil)
		a.Status = appDomain.StatusApproved
		if err := repo.Create(ctx, a); err != nil {
			t.Fatal(err)
		}
		want = append(want, a.ID)
	}
	sort.Strings(want)

	var seen []string
	cursor := ""
	for {
		page, err := repo.ListApprovedWithoutAccount(ctx, cursor, 2)
		if err != nil {
			t.Fatalf("ListApprovedWithoutAccount: %v", err)
		}
		for _, a := range page {
			seen = append(seen, a.ID)
		}
		if len(page) < 2 {
			break
		}
		cursor = page[len(page)-1].ID
	}
	if strings.Join(seen, ",") != strings.Join(want, ",") {
		t.Fatalf("paged = %v, want %v", seen, want)
	}
}
