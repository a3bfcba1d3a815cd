package middleware

import (
	"context"
	"net/http"
	"strings"

	"agricredit-backend/internal/access"

	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// Authenticator turns a bearer token into a principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*access.Principal, error)
}

var errMissingToken = echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")

// Auth requires "Authorization: Bearer <token>". With allowQuery the token
// may come from the "token" query parameter instead, for links opened by a
// browser (inline document view, EventSource).
func Auth(a Authenticator, allowQuery bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearer(c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" && allowQuery {
				token = strings.TrimSpace(c.QueryParam("token"))
			}
			if token == "" {
				return errMissingToken
			}
			p, err := a.Authenticate(c.Request().Context(), token)
			if err != nil {
				return err
			}
			c.Set(principalKey, p)
			c.SetRequest(c.Request().WithContext(access.WithPrincipal(c.Request().Context(), p)))
			return next(c)
		}
	}
}

func bearer(h string) string {
	const prefix = "bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

// PrincipalFrom returns the authenticated caller, or nil on public routes.
func PrincipalFrom(c echo.Context) *access.Principal {
	if p, ok := c.Get(principalKey).(*access.Principal); ok {
		return p
	}
	if p, ok := access.FromContext(c.Request().Context()); ok {
		return p
	}
	return nil
}

// RequireAny rejects callers holding none of names.
func RequireAny(names ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := PrincipalFrom(c)
			if p == nil {
				return errMissingToken
			}
			if !p.Permissions.HasAny(names...) {
				return access.ErrForbidden
			}
			return next(c)
		}
	}
}
