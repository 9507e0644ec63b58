package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/config"
)

// captureWriter tees the response body so it can be cached after being
// sent to the client. Bodies over the limit are forwarded but not cached.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	size   int64
	limit  int64
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.size += int64(len(b))
	if cw.limit <= 0 || cw.size <= cw.limit {
		cw.buf.Write(b)
	}
	return cw.ResponseWriter.Write(b)
}

// cachedResponse is the JSON envelope stored in Redis.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// cacheKey hashes route + raw query under the configured prefix. The raw
// query participates so each filter/sort/page combination caches its own
// page, and per-viewer responses must never pass through this middleware.
func cacheKey(prefix string, c echo.Context) string {
	sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum[:])
}

// NewRedisCache caches successful GET responses of the wrapped routes.
// Authenticated requests bypass the cache entirely: a personalized
// listing depends on the viewer and must not be served to anyone else.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet || c.Request().Header.Get("Authorization") != "" {
				return next(c)
			}

			key := cacheKey(cfg.Prefix, c)
			ctx, cancel := context.WithTimeout(c.Request().Context(), time.Second)
			defer cancel()

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var cr cachedResponse
				if json.Unmarshal(raw, &cr) == nil {
					c.Response().Header().Set(echo.HeaderContentType, cr.ContentType)
					c.Response().Header().Set("X-Cache", "HIT")
					return c.Blob(cr.Status, cr.ContentType, cr.Body)
				}
			}

			cw := &captureWriter{
				ResponseWriter: c.Response().Writer,
				status:         http.StatusOK,
				limit:          int64(cfg.MaxBodyBytes),
			}
			c.Response().Writer = cw
			if err := next(c); err != nil {
				return err
			}

			if cw.status == http.StatusOK && (cw.limit <= 0 || cw.size <= cw.limit) {
				raw, err := json.Marshal(cachedResponse{
					Status:      cw.status,
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
					Body:        cw.buf.Bytes(),
				})
				if err == nil {
					setCtx, setCancel := context.WithTimeout(context.Background(), time.Second)
					_ = rdb.Set(setCtx, key, raw, ttl).Err()
					setCancel()
				}
			}
			return nil
		}
	}
}
