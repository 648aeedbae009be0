package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/pos_ledger/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks API events with PostHog.
// Events are attributed to the owning account so usage is grouped per store.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		ownerID, userID, ok := GetIdentity(c)
		if !ok {
			return
		}

		// "/api/v1/invoices/:invoiceID" -> "api_v1_invoices_:invoiceID"
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
			"user_id":     userID,
		}
		if c.GetHeader(IdempotencyKeyHeader) != "" {
			props["idempotent_replay"] = c.Writer.Header().Get(IdempotentReplayedHeader) == "true"
		}

		if len(c.Params) > 0 {
			params := make(map[string]string)
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		posthogClient.Enqueue(ownerID, eventName, props)
	}
}
