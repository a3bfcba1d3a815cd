package http

import (
	"errors"
	"net/http"

	"agricredit-backend/internal/access"
	"agricredit-backend/internal/domain/account"
	"agricredit-backend/internal/domain/application"
	"agricredit-backend/internal/domain/document"
	"agricredit-backend/internal/domain/notification"
	"agricredit-backend/internal/domain/profile"
	"agricredit-backend/internal/domain/program"
	"agricredit-backend/internal/domain/user"
	"agricredit-backend/internal/finance"
	"agricredit-backend/internal/infrastructure/storage"
	"agricredit-backend/internal/security"
	notifUC "agricredit-backend/internal/usecase/notification"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type errorRule struct {
	err    error
	status int
	// field is set for domain validation failures reported as 422 details
	field string
}

// first match wins
var errorRules = []errorRule{
	{err: security.ErrInvalidCredentials, status: http.StatusUnauthorized},
	{err: security.ErrInvalidToken, status: http.StatusUnauthorized},
	{err: security.ErrExpiredToken, status: http.StatusUnauthorized},
	{err: user.ErrInactive, status: http.StatusUnauthorized},

	{err: access.ErrForbidden, status: http.StatusForbidden},
	{err: account.ErrForbidden, status: http.StatusForbidden},
	{err: notification.ErrForbidden, status: http.StatusForbidden},
	{err: document.ErrForbidden, status: http.StatusForbidden},
	{err: program.ErrNotOwner, status: http.StatusForbidden},
	{err: application.ErrNotApplicant, status: http.StatusForbidden},
	{err: profile.ErrPermissionNotOwned, status: http.StatusForbidden},
	{err: profile.ErrSystemProfile, status: http.StatusForbidden},
	{err: user.ErrType, status: http.StatusForbidden},
	{err: user.ErrSelf, status: http.StatusForbidden},

	{err: application.ErrNotFound, status: http.StatusNotFound},
	{err: account.ErrNotFound, status: http.StatusNotFound},
	{err: program.ErrNotFound, status: http.StatusNotFound},
	{err: user.ErrNotFound, status: http.StatusNotFound},
	{err: profile.ErrNotFound, status: http.StatusNotFound},
	{err: notification.ErrNotFound, status: http.StatusNotFound},
	{err: document.ErrNotFound, status: http.StatusNotFound},
	{err: storage.ErrNotFound, status: http.StatusNotFound},

	{err: user.ErrDuplicate, status: http.StatusConflict},
	{err: application.ErrInvalidTransition, status: http.StatusConflict},
	{err: application.ErrFinal, status: http.StatusConflict},
	{err: application.ErrStale, status: http.StatusConflict},
	{err: account.ErrAlreadyExists, status: http.StatusConflict},
	{err: account.ErrPaidOff, status: http.StatusConflict},
	{err: account.ErrInactive, status: http.StatusConflict},

	{err: program.ErrOutOfRange, status: http.StatusUnprocessableEntity, field: "_"},
	{err: program.ErrInvalidRange, status: http.StatusUnprocessableEntity, field: "_"},
	{err: program.ErrInactive, status: http.StatusUnprocessableEntity, field: "creditProgramId"},
	{err: application.ErrProgramUnavailable, status: http.StatusUnprocessableEntity, field: "creditProgramId"},
	{err: application.ErrInvalidProjectType, status: http.StatusUnprocessableEntity, field: "projectType"},
	{err: application.ErrInvalidStatus, status: http.StatusUnprocessableEntity, field: "status"},
	{err: application.ErrRejectionReasonRequired, status: http.StatusUnprocessableEntity, field: "rejectionReason"},
	{err: account.ErrInvalidAmount, status: http.StatusUnprocessableEntity, field: "amount"},
	{err: finance.ErrInvalidInput, status: http.StatusUnprocessableEntity, field: "_"},
	{err: profile.ErrUnknownPermission, status: http.StatusUnprocessableEntity, field: "permissions"},
	{err: document.ErrInvalidType, status: http.StatusUnprocessableEntity, field: "documentType"},
	{err: document.ErrEmptyFile, status: http.StatusUnprocessableEntity, field: "file"},
	{err: document.ErrFileTooLarge, status: http.StatusRequestEntityTooLarge},

	{err: notifUC.ErrStreamUnavailable, status: http.StatusServiceUnavailable},
}

func classify(err error) (errorRule, bool) {
	for _, r := range errorRules {
		if errors.Is(err, r.err) {
			return r, true
		}
	}
	return errorRule{}, false
}

// NewErrorHandler renders every handler error as ErrorResponse. Unknown
// errors are 500s: logged in full, and hidden from clients unless debug.
func NewErrorHandler(log zerolog.Logger, debug bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status, body := render(err, debug)
		if status >= http.StatusInternalServerError {
			log.Error().Err(err).Str("method", c.Request().Method).Str("path", c.Path()).Int("status", status).Msg("request failed")
		} else {
			log.Debug().Err(err).Str("path", c.Path()).Int("status", status).Msg("request rejected")
		}
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			log.Warn().Err(err).Msg("error response not written")
		}
	}
}

func render(err error, debug bool) (int, ErrorResponse) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, ErrorResponse{Error: ve.Error(), Details: ve.Details}
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok {
			msg = s
		}
		return he.Code, ErrorResponse{Error: msg}
	}
	if r, ok := classify(err); ok {
		if r.field != "" {
			return r.status, ErrorResponse{Error: "validation failed", Details: []FieldError{{Field: r.field, Message: err.Error()}}}
		}
		return r.status, ErrorResponse{Error: err.Error()}
	}
	if debug {
		return http.StatusInternalServerError, ErrorResponse{Error: err.Error()}
	}
	return http.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
}
