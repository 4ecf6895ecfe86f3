package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finacct/backend/internal/apperrors"
	"github.com/finacct/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP responses. Recoverable ledger
// errors keep their message; anything unexpected collapses to a generic 500
// so internals never leak to clients.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrUnbalancedEntry):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrAlreadyClosed),
		errors.Is(err, apperrors.ErrPeriodLocked),
		errors.Is(err, apperrors.ErrReversalFailed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrMissingSystemAccount):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}

// requestIdentity pulls the authenticated tenant and user from the context,
// aborting with 401 when either is missing.
func requestIdentity(c *gin.Context) (tenantID string, userID string, ok bool) {
	tenantID, tenantOK := middleware.GetTenantIDFromContext(c)
	userID, userOK := middleware.GetUserIDFromContext(c)
	if !tenantOK || !userOK {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return tenantID, userID, true
}
