package notification

import (
	"errors"

	domain "agricredit-backend/internal/domain/notification"
)

var ErrStreamUnavailable = errors.New("live notifications are not available")

type ListInput struct {
	UnreadOnly bool
	Limit      int
	Offset     int
}

type Page struct {
	Items  []domain.Notification `json:"items"`
	Unread int64                 `json:"unreadCount"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}
