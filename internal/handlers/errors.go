package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/pos_ledger/internal/apperrors"
	"github.com/SscSPs/pos_ledger/internal/dto"
	"github.com/SscSPs/pos_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps a service error to its HTTP status. Persistence failures are logged in full
// and the client only sees failMsg.
func respondError(c *gin.Context, logger *slog.Logger, err error, failMsg string) {
	category, status := apperrors.Classify(err)
	if status >= http.StatusInternalServerError {
		logger.Error(failMsg, slog.String("error", err.Error()))
		c.JSON(status, dto.ErrorResponse{Error: failMsg, Code: string(category)})
		return
	}
	logger.Warn("Request rejected", slog.String("code", string(category)), slog.String("error", err.Error()))
	c.JSON(status, dto.ErrorResponse{Error: err.Error(), Code: string(category)})
}

// respondBindError reports a request body or query that failed to bind.
func respondBindError(c *gin.Context, logger *slog.Logger, err error, what string) {
	logger.Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid request format: " + err.Error(),
		Code:  string(apperrors.CategoryValidation),
	})
}

// identity returns the owning account and acting user placed in the context by AuthMiddleware.
func identity(c *gin.Context, logger *slog.Logger) (ownerID string, userID string, ok bool) {
	ownerID, userID, ok = middleware.GetIdentity(c)
	if !ok {
		logger.Error("Caller identity not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return ownerID, userID, ok
}
