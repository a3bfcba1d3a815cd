package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"

	// How long we hold the "in-progress" lock before it must be refreshed by finishing the handler.
	provisionalLockTTL = 60 * time.Second
	storeTimeout       = 2 * time.Second
)

// ---- Data types ----
type idempEntry struct {
	InProgress  bool      `json:"in_progress"`
	Code        int       `json:"code"`
	ContentType string    `json:"content_type,omitempty"`
	Body        []byte    `json:"body"`
	BodySHA256  string    `json:"body_sha256"`
	CreatedAt   time.Time `json:"created_at"`
}

type respRecorder struct {
	w    http.ResponseWriter
	buf  *bytes.Buffer
	code int
}

func (r *respRecorder) Header() http.Header { return r.w.Header() }
func (r *respRecorder) Write(b []byte) (int, error) {
	if r.buf != nil {
		r.buf.Write(b)
	}
	return r.w.Write(b)
}
func (r *respRecorder) WriteHeader(statusCode int) { r.code = statusCode; r.w.WriteHeader(statusCode) }

// Idempotency replays the stored response of a mutating request retried with
// the same Idempotency-Key. Requests without the header pass through.
// Key = method + route + caller + key; the caller comes from Auth, so mount
// this after it. Responses >= 500 are not stored and the key is released so
// the client may retry.
func Idempotency(rdb *redis.Client, ttl time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}
			raw := req.Header.Get(HeaderIdempotencyKey)
			if raw == "" {
				return next(c)
			}
			idemKey, ok := normalizeKey(raw)
			if !ok {
				return c.JSON(http.StatusBadRequest, errorBody("invalid Idempotency-Key format"))
			}

			userID := "anonymous"
			if p := PrincipalFrom(c); p != nil {
				userID = p.UserID
			}

			// Buffer & hash body
			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewBuffer(body))
			bhash := bodyHash(body)

			key := buildKey(req.Method, c.Path(), userID, idemKey)
			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()

			ok, err := provisionalSet(ctx, rdb, key, idempEntry{InProgress: true, BodySHA256: bhash, CreatedAt: nowUTC()})
			if err != nil {
				log.Error().Err(err).Msg("idempotency store unavailable")
				return c.JSON(http.StatusServiceUnavailable, errorBody("idempotency store unavailable"))
			}
			if !ok {
				cur, errLoad := loadEntry(ctx, rdb, key)
				if errLoad != nil {
					log.Warn().Err(errLoad).Str("key", key).Msg("idempotency entry unreadable")
				}
				if cur.BodySHA256 != "" && cur.BodySHA256 != bhash {
					return c.JSON(http.StatusConflict, errorBody("Idempotency-Key reused with different body"))
				}
				if !cur.InProgress && cur.Code != 0 {
					ct := cur.ContentType
					if ct == "" {
						ct = echo.MIMEApplicationJSONCharsetUTF8
					}
					c.Response().Header().Set("Idempotent-Replayed", "true")
					return c.Blob(cur.Code, ct, cur.Body)
				}
				return c.JSON(http.StatusConflict, errorBody("request is already in progress"))
			}

			rec := &respRecorder{w: c.Response().Writer, buf: &bytes.Buffer{}, code: http.StatusOK}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				c.Error(err)
			}

			if rec.code >= http.StatusInternalServerError {
				if err := release(context.Background(), rdb, key); err != nil {
					log.Warn().Err(err).Str("key", key).Msg("idempotency key not released")
				}
				return nil
			}
			final := idempEntry{
				Code:        rec.code,
				ContentType: rec.Header().Get(echo.HeaderContentType),
				Body:        rec.buf.Bytes(),
				BodySHA256:  bhash,
				CreatedAt:   nowUTC(),
			}
			if err := saveFinal(context.Background(), rdb, key, final, ttl); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("idempotent response not stored")
			}
			return nil
		}
	}
}

func errorBody(msg string) map[string]string { return map[string]string{"error": msg} }
