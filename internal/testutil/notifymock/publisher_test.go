package notifymock

import (
	"context"
	"errors"
	"testing"

	"agricredit-backend/internal/domain/notification"
)

func TestPublisher_Records(t *testing.T) {
	p := &Publisher{}
	_ = p.Publish(context.Background(), &notification.Notification{ID: "1", Type: notification.TypeApplicationSubmitted})
	_ = p.Publish(context.Background(), &notification.Notification{ID: "2", Type: notification.TypeAccountCreated})

	if got := p.Types(); len(got) != 2 || got[1] != notification.TypeAccountCreated {
		t.Fatalf("Types = %v", got)
	}
	sent := p.Sent()
	sent[0].ID = "mutated"
	if p.Sent()[0].ID != "1" {
		t.Fatal("Sent must return a copy")
	}
}

func TestPublisher_ReturnsErrAfterRecording(t *testing.T) {
	boom := errors.New("redis down")
	p := &Publisher{Err: boom}
	if err := p.Publish(context.Background(), &notification.Notification{ID: "1"}); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if len(p.Sent()) != 1 {
		t.Fatal("failed publish not recorded")
	}
}
