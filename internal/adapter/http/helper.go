package http

import (
	"net/http"

	"agricredit-backend/internal/access"
	mw "agricredit-backend/internal/adapter/middleware"

	"github.com/labstack/echo/v4"
)

var errInvalidBody = echo.NewHTTPError(http.StatusBadRequest, "invalid body")

// bind decodes the body into req and validates it.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errInvalidBody
	}
	if err := c.Validate(req); err != nil {
		return &ValidationError{Details: ToFieldErrors(err)}
	}
	return nil
}

func principal(c echo.Context) *access.Principal { return mw.PrincipalFrom(c) }

func pathID(c echo.Context) (string, error) {
	id := c.Param("id")
	if id == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "missing id path param")
	}
	return id, nil
}
