package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"agricredit-backend/internal/adapter/repository/mysql"
	domain "agricredit-backend/internal/domain/notification"
	"agricredit-backend/internal/testutil/dbtest"
	"agricredit-backend/internal/testutil/notifymock"

	"github.com/rs/zerolog"
)

func newUsecase(t *testing.T) (*Usecase, *mysql.NotificationRepository) {
	t.Helper()
	repo := mysql.NewNotificationRepository(dbtest.Open(t))
	return NewUsecase(repo, nil, zerolog.Nop()), repo
}

func seed(t *testing.T, repo *mysql.NotificationRepository, id, userID string) {
	t.Helper()
	n := domain.New(id, userID, domain.TypeApplicationSubmitted, "Submitted", "received", "", time.Now())
	if err := repo.Create(context.Background(), n); err != nil {
		t.Fatal(err)
	}
}

func TestMarkRead_OwnerOnlyAndIdempotent(t *testing.T) {
	uc, repo := newUsecase(t)
	ctx := context.Background()
	seed(t, repo, "00000000-0000-4000-8000-000000000001", "alice")

	if _, err := uc.MarkRead(ctx, "bob", "00000000-0000-4000-8000-000000000001"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign MarkRead err = %v, want ErrForbidden", err)
	}
	for i := 0; i < 2; i++ {
		n, err := uc.MarkRead(ctx, "alice", "00000000-0000-4000-8000-000000000001")
		if err != nil || !n.IsRead {
			t.Fatalf("MarkRead #%d = %+v, %v", i+1, n, err)
		}
	}
	if c, _ := uc.CountUnread(ctx, "alice"); c != 0 {
		t.Fatalf("unread = %d", c)
	}
	if _, err := uc.MarkRead(ctx, "alice", "00000000-0000-4000-8000-00000000ffff"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("missing MarkRead err = %v", err)
	}
}

func TestList_ClampsPaging(t *testing.T) {
	uc, repo := newUsecase(t)
	seed(t, repo, "00000000-0000-4000-8000-000000000001", "alice")
	seed(t, repo, "00000000-0000-4000-8000-000000000002", "alice")

	page, err := uc.List(context.Background(), "alice", ListInput{Limit: 1000, Offset: -5})
	if err != nil {
		t.Fatal(err)
	}
	if page.Limit != MaxPageSize || page.Offset != 0 || len(page.Items) != 2 || page.Unread != 2 {
		t.Fatalf("page = %+v", page)
	}

	empty, _ := uc.List(context.Background(), "nobody", ListInput{})
	if empty.Items == nil || empty.Limit != DefaultPageSize {
		t.Fatalf("empty page = %+v", empty)
	}
}

func TestDelete_OwnerOnly(t *testing.T) {
	uc, repo := newUsecase(t)
	ctx := context.Background()
	seed(t, repo, "00000000-0000-4000-8000-000000000001", "alice")

	if err := uc.Delete(ctx, "bob", "00000000-0000-4000-8000-000000000001"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("foreign delete = %v", err)
	}
	if err := uc.Delete(ctx, "alice", "00000000-0000-4000-8000-000000000001"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestDispatch_LogsAndContinues(t *testing.T) {
	pub := &notifymock.Publisher{Err: errors.New("redis down")}
	Dispatch(context.Background(), pub, zerolog.Nop(),
		domain.New("1", "alice", domain.TypeApplicationApproved, "t", "m", "", time.Now()),
		domain.New("2", "alice", domain.TypeAccountCreated, "t", "m", "", time.Now()),
	)
	if len(pub.Sent()) != 2 {
		t.Fatalf("sent = %d, want both attempted", len(pub.Sent()))
	}
	Dispatch(context.Background(), nil, zerolog.Nop(), domain.New("3", "a", domain.TypeAccountCreated, "t", "m", "", time.Now()))
}

func TestStream_WithoutSubscriber(t *testing.T) {
	uc, _ := newUsecase(t)
	if _, err := uc.Stream(context.Background(), "alice"); !errors.Is(err, ErrStreamUnavailable) {
		t.Fatalf("err = %v", err)
	}
}
