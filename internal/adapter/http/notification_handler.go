package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	notifUC "agricredit-backend/internal/usecase/notification"

	"github.com/labstack/echo/v4"
)

type NotificationHandler struct {
	uc        *notifUC.Usecase
	heartbeat time.Duration
}

func NewNotificationHandler(uc *notifUC.Usecase) *NotificationHandler {
	return &NotificationHandler{uc: uc, heartbeat: 25 * time.Second}
}

func (h *NotificationHandler) List(c echo.Context) error {
	in := notifUC.ListInput{}
	var err error
	if v := c.QueryParam("unread"); v != "" {
		if in.UnreadOnly, err = strconv.ParseBool(v); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unread must be a boolean")
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if in.Limit, err = strconv.Atoi(v); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		if in.Offset, err = strconv.Atoi(v); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "offset must be an integer")
		}
	}
	page, err := h.uc.List(c.Request().Context(), principal(c).UserID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	n, err := h.uc.CountUnread(c.Request().Context(), principal(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int64{"count": n})
}

func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	n, err := h.uc.MarkRead(c.Request().Context(), principal(c).UserID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	n, err := h.uc.MarkAllRead(c.Request().Context(), principal(c).UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int64{"updated": n})
}

func (h *NotificationHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Request().Context(), principal(c).UserID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Stream pushes the caller's notifications as server-sent events. Each event
// id is the notification id so clients can drop duplicates seen by polling.
func (h *NotificationHandler) Stream(c echo.Context) error {
	ctx := c.Request().Context()
	ch, err := h.uc.Stream(ctx, principal(c).UserID)
	if err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.Header().Set("X-Accel-Buffering", "no")
	res.WriteHeader(http.StatusOK)
	if _, err := fmt.Fprint(res, "retry: 5000\n\n"); err != nil {
		return nil
	}
	res.Flush()

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
				return nil
			}
			res.Flush()
		case n, ok := <-ch:
			if !ok {
				return nil
			}
			data, err := json.Marshal(n)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(res, "id: %s\nevent: notification\ndata: %s\n\n", n.ID, data); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
