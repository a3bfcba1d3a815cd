package notification

import (
	"context"

	domain "agricredit-backend/internal/domain/notification"

	"github.com/rs/zerolog"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Usecase struct {
	repo domain.Repository
	sub  domain.Subscriber
	log  zerolog.Logger
}

func NewUsecase(repo domain.Repository, sub domain.Subscriber, log zerolog.Logger) *Usecase {
	return &Usecase{repo: repo, sub: sub, log: log}
}

// Dispatch publishes committed notifications. Failures are logged and
// dropped: the rows are already durable and polling will pick them up.
func Dispatch(ctx context.Context, pub domain.Publisher, log zerolog.Logger, ns ...*domain.Notification) {
	if pub == nil {
		return
	}
	for _, n := range ns {
		if err := pub.Publish(ctx, n); err != nil {
			log.Warn().Err(err).Str("notification_id", n.ID).Str("user_id", n.UserID).Msg("publish notification")
		}
	}
}

func (u *Usecase) List(ctx context.Context, userID string, in ListInput) (*Page, error) {
	limit := in.Limit
	switch {
	case limit <= 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}
	items, err := u.repo.ListByUser(ctx, userID, in.UnreadOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	unread, err := u.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Notification{}
	}
	return &Page{Items: items, Unread: unread, Limit: limit, Offset: offset}, nil
}

func (u *Usecase) CountUnread(ctx context.Context, userID string) (int64, error) {
	return u.repo.CountUnread(ctx, userID)
}

// owned loads id and checks it belongs to userID.
func (u *Usecase) owned(ctx context.Context, userID, id string) (*domain.Notification, error) {
	n, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return n, nil
}

// MarkRead is idempotent on the caller's own notifications.
func (u *Usecase) MarkRead(ctx context.Context, userID, id string) (*domain.Notification, error) {
	n, err := u.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if n.IsRead {
		return n, nil
	}
	if err := u.repo.MarkRead(ctx, id, userID); err != nil {
		return nil, err
	}
	n.IsRead = true
	return n, nil
}

func (u *Usecase) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return u.repo.MarkAllRead(ctx, userID)
}

func (u *Usecase) Delete(ctx context.Context, userID, id string) error {
	if _, err := u.owned(ctx, userID, id); err != nil {
		return err
	}
	return u.repo.Delete(ctx, id, userID)
}

// Stream delivers live notifications for userID until ctx ends.
func (u *Usecase) Stream(ctx context.Context, userID string) (<-chan domain.Notification, error) {
	if u.sub == nil {
		return nil, ErrStreamUnavailable
	}
	return u.sub.Subscribe(ctx, userID)
}
