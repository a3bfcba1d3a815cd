package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

type Handler struct{ checks map[string]Check }

func NewHandler(checks map[string]Check) *Handler { return &Handler{checks: checks} }

// Health answers 200 when every dependency check passes, 503 otherwise.
func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for n := range h.checks {
		names = append(names, n)
	}
	sort.Strings(names)

	status, code := "ok", http.StatusOK
	results := make(map[string]string, len(names))
	for _, n := range names {
		if err := h.checks[n](ctx); err != nil {
			results[n] = err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		results[n] = "ok"
	}
	return c.JSON(code, map[string]any{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
		"checks": results,
	})
}
