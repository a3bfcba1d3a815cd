package notifymock

import (
	"context"
	"sync"

	"agricredit-backend/internal/domain/notification"
)

var _ notification.Publisher = (*Publisher)(nil)

// Publisher records every published notification. Err, when set, is
// returned after recording.
type Publisher struct {
	mu   sync.Mutex
	sent []notification.Notification
	Err  error
}

func (p *Publisher) Publish(_ context.Context, n *notification.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, *n)
	return p.Err
}

// Sent returns a copy of what was published so far.
func (p *Publisher) Sent() []notification.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]notification.Notification(nil), p.sent...)
}

// Types lists the published notification types in order.
func (p *Publisher) Types() []notification.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]notification.Type, 0, len(p.sent))
	for _, n := range p.sent {
		out = append(out, n.Type)
	}
	return out
}
