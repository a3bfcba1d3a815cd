// Package notify fans committed notifications out over Redis pub/sub, one
// channel per recipient.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"agricredit-backend/internal/domain/notification"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var (
	_ notification.Publisher  = (*Redis)(nil)
	_ notification.Subscriber = (*Redis)(nil)
)

const subscriberBuffer = 16

func Channel(userID string) string { return "notifications:" + userID }

type Redis struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewRedis(rdb *redis.Client, log zerolog.Logger) *Redis { return &Redis{rdb: rdb, log: log} }

func (r *Redis) Publish(ctx context.Context, n *notification.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	if err := r.rdb.Publish(ctx, Channel(n.UserID), payload).Err(); err != nil {
		return fmt.Errorf("publish notification %s: %w", n.ID, err)
	}
	return nil
}

// Subscribe returns once the subscription is live. The channel closes when
// ctx ends or the connection drops.
func (r *Redis) Subscribe(ctx context.Context, userID string) (<-chan notification.Notification, error) {
	ps := r.rdb.Subscribe(ctx, Channel(userID))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", Channel(userID), err)
	}
	out := make(chan notification.Notification, subscriberBuffer)
	go func() {
		defer close(out)
		defer ps.Close()
		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-msgs:
				if !ok {
					return
				}
				var n notification.Notification
				if err := json.Unmarshal([]byte(m.Payload), &n); err != nil {
					r.log.Warn().Err(err).Str("channel", m.Channel).Msg("malformed notification message")
					continue
				}
				select {
				case out <- n:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
