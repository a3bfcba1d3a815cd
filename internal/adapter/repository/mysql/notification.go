package mysql

import (
	"context"

	notifDomain "agricredit-backend/internal/domain/notification"

	"gorm.io/gorm"
)

type NotificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notifDomain.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*notifDomain.Notification, error) {
	var out notifDomain.Notification
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	if res.Error != nil {
		return nil, notFound(res.Error, notifDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]notifDomain.Notification, error) {
	var out []notifDomain.Notification
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	res := q.Order("created_at DESC, id DESC").Find(&out)
	return out, res.Error
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var n int64
	res := r.db.WithContext(ctx).Model(&notifDomain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&n)
	return n, res.Error
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	return r.db.WithContext(ctx).Model(&notifDomain.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&notifDomain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *NotificationRepository) Delete(ctx context.Context, id, userID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&notifDomain.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notifDomain.ErrNotFound
	}
	return nil
}
