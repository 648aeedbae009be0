package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey stores the authenticated user's ID. ownerIDKey stores the account whose data the request may touch.
const (
	userIDKey  = contextKey("userID")
	ownerIDKey = contextKey("ownerID")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	return stringFromCtx(c.Request.Context(), userIDKey)
}

// GetOwnerIDFromContext retrieves the owning account ID placed by AuthMiddleware.
func GetOwnerIDFromContext(c *gin.Context) (string, bool) {
	return stringFromCtx(c.Request.Context(), ownerIDKey)
}

// GetIdentity returns the owner and user IDs of the authenticated caller.
func GetIdentity(c *gin.Context) (ownerID string, userID string, ok bool) {
	ownerID, okOwner := GetOwnerIDFromContext(c)
	userID, okUser := GetUserIDFromContext(c)
	return ownerID, userID, okOwner && okUser
}

func stringFromCtx(ctx context.Context, key contextKey) (string, bool) {
	v, ok := ctx.Value(key).(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
