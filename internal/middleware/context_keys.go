package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID in the
// request context.
const userIDKey = contextKey("userID")

// tenantIDKey is the key used to store the caller's tenant ID in the
// request context. Every ledger operation is scoped by it.
const tenantIDKey = contextKey("tenantID")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// GetTenantIDFromContext retrieves the caller's tenant ID from the Gin context.
func GetTenantIDFromContext(c *gin.Context) (string, bool) {
	tenantIDVal := c.Request.Context().Value(tenantIDKey)
	if tenantIDVal == nil {
		return "", false
	}
	tenantID, ok := tenantIDVal.(string)
	if !ok {
		return "", false
	}
	return tenantID, true
}
