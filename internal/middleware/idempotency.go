package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/pos_ledger/internal/core/ports/repositories"
	"github.com/gin-gonic/gin"
)

const (
	// IdempotencyKeyHeader lets a terminal retry a submission without recording it twice.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotentReplayedHeader is set on responses served from the idempotency store.
	IdempotentReplayedHeader = "Idempotent-Replayed"

	maxIdempotencyKeyLength = 255
)

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the stored response when a request repeats an Idempotency-Key.
// Keys are scoped to the owning account, method and request path. Server errors release the key
// so the client may retry; any other outcome is remembered for ttl.
func Idempotency(store repositories.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || store == nil {
			c.Next()
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Idempotency-Key is too long", "code": "validation"})
			return
		}

		ownerID, _ := GetOwnerIDFromContext(c)
		storeKey := fmt.Sprintf("%s:%s:%s:%s", ownerID, c.Request.Method, c.Request.URL.Path, key)
		ctx := c.Request.Context()

		cached, err := store.Load(ctx, storeKey)
		if errors.Is(err, repositories.ErrIdempotencyKeyPending) {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "A request with this Idempotency-Key is still being processed", "code": "conflict"})
			return
		}
		if err != nil {
			logger.Error("Failed to load idempotency key", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "persistence"})
			return
		}
		if cached != nil {
			logger.Info("Replaying idempotent response", slog.String("idempotency_key", key), slog.Int("status", cached.StatusCode))
			c.Header(IdempotentReplayedHeader, "true")
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		reserved, err := store.Reserve(ctx, storeKey, ttl)
		if err != nil {
			logger.Error("Failed to reserve idempotency key", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": "persistence"})
			return
		}
		if !reserved {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "A request with this Idempotency-Key is still being processed", "code": "conflict"})
			return
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		// A panicking handler never produced a response, so free the key before recovery runs.
		completed := false
		defer func() {
			if completed {
				return
			}
			if err := store.Release(ctx, storeKey); err != nil {
				logger.Error("Failed to release idempotency key", slog.String("error", err.Error()))
			}
		}()

		c.Next()

		// Server errors release the key so the client can retry.
		status := writer.Status()
		if status >= http.StatusInternalServerError {
			return
		}

		resp := repositories.CachedResponse{
			StatusCode:  status,
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
		}
		if err := store.Complete(ctx, storeKey, resp, ttl); err != nil {
			logger.Error("Failed to store idempotent response", slog.String("error", err.Error()))
		}
		completed = true
	}
}
