package accountmock

import (
	"context"
	"errors"
	"testing"

	domain "agricredit-backend/internal/domain/account"
)

func TestRepo_CreateUsesFn(t *testing.T) {
	ctx := context.Background()
	a := &domain.Account{ID: "acc-1"}

	wantErr := errors.New("boom")
	called := false
	m := &Repo{
		CreateFn: func(gotCtx context.Context, got *domain.Account) error {
			called = true
			if gotCtx != ctx || got != a {
				t.Fatalf("Create args not forwarded")
			}
			return wantErr
		},
	}
	if err := m.Create(ctx, a); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateFn not called")
	}

	// nil func and no base: no-op write
	if err := (&Repo{}).Create(ctx, a); err != nil {
		t.Fatalf("Create default: %v", err)
	}
}

func TestRepo_DelegatesToBase(t *testing.T) {
	ctx := context.Background()
	base := &Repo{
		GetByIDFn: func(context.Context, string) (*domain.Account, error) {
			return &domain.Account{ID: "from-base"}, nil
		},
	}
	m := &Repo{Base: base}
	got, err := m.GetByID(ctx, "x")
	if err != nil || got.ID != "from-base" {
		t.Fatalf("GetByID = %+v, %v", got, err)
	}

	// overriding Fn wins over Base
	m.GetByIDFn = func(context.Context, string) (*domain.Account, error) { return nil, domain.ErrNotFound }
	if _, err := m.GetByID(ctx, "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("override err = %v", err)
	}
}

func TestRepo_ReadsWithoutBaseAreUnimplemented(t *testing.T) {
	m := &Repo{}
	if _, err := m.ListPayments(context.Background(), "x"); !errors.Is(err, errUnimplemented) {
		t.Fatalf("ListPayments err = %v", err)
	}
	if _, err := m.GetByIDForUpdate(context.Background(), "x"); !errors.Is(err, errUnimplemented) {
		t.Fatalf("GetByIDForUpdate err = %v", err)
	}
}
