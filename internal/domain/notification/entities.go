package notification

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("notification not found")
	ErrForbidden = errors.New("notification belongs to another user")
)

type Type string

const (
	TypeApplicationSubmitted   Type = "application_submitted"
	TypeApplicationUnderReview Type = "application_under_review"
	TypeApplicationApproved    Type = "application_approved"
	TypeApplicationRejected    Type = "application_rejected"
	TypeAccountCreated         Type = "account_created"
	TypePaymentConfirmed       Type = "payment_confirmed"
)

// Table: notifications
type Notification struct {
	ID        string    `gorm:"column:id;type:char(36);primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id;type:char(36);not null;index:idx_notifications_user_read" json:"userId"`
	Type      Type      `gorm:"column:type;size:40;not null" json:"type"`
	Title     string    `gorm:"column:title;size:200;not null" json:"title"`
	Message   string    `gorm:"column:message;type:text;not null" json:"message"`
	IsRead    bool      `gorm:"column:is_read;not null;index:idx_notifications_user_read" json:"isRead"`
	RelatedID *string   `gorm:"column:related_id;type:char(36)" json:"relatedId,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"createdAt"`
}

func (Notification) TableName() string { return "notifications" }

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id string) (*Notification, error)
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	// MarkRead is scoped to userID; it is a no-op on an already read row.
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id, userID string) error
}

// Publisher pushes committed notifications to live listeners.
type Publisher interface {
	Publish(ctx context.Context, n *Notification) error
}

// Subscriber streams notifications for one recipient until ctx ends.
type Subscriber interface {
	Subscribe(ctx context.Context, userID string) (<-chan Notification, error)
}

// New builds an unread notification; relatedID may be empty.
func New(id, userID string, t Type, title, message, relatedID string, now time.Time) *Notification {
	n := &Notification{
		ID:        id,
		UserID:    userID,
		Type:      t,
		Title:     title,
		Message:   message,
		CreatedAt: now.UTC(),
	}
	if relatedID != "" {
		n.RelatedID = &relatedID
	}
	return n
}
