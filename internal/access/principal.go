package access

import (
	"context"
	"errors"

	"agricredit-backend/internal/domain/user"
)

var ErrForbidden = errors.New("insufficient permissions")

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID        string
	UserType      user.Type
	InstitutionID string
	Permissions   Set
}

func (p *Principal) Can(name string) bool { return p != nil && p.Permissions.Has(name) }

// Require returns ErrForbidden unless every name is granted.
func (p *Principal) Require(names ...string) error {
	if p == nil || !p.Permissions.HasAll(names...) {
		return ErrForbidden
	}
	return nil
}

// Unscoped reports whether the principal sees every tenant's data.
func (p *Principal) Unscoped() bool { return p != nil && p.Permissions.IsWildcard() }

// InScope reports whether data owned by institutionID is visible.
func (p *Principal) InScope(institutionID string) bool {
	if p.Unscoped() {
		return true
	}
	return p != nil && p.InstitutionID != "" && p.InstitutionID == institutionID
}

// ActorID is the identity written to reviewedBy/approvedBy.
func (p *Principal) ActorID() string {
	if p.InstitutionID != "" {
		return p.InstitutionID
	}
	return p.UserID
}

type ctxKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(*Principal)
	return p, ok && p != nil
}
