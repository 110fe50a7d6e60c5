package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/invoiceflow/backend/internal/infrastructure/auth"
	"github.com/invoiceflow/backend/internal/interfaces/http/dto"
)

const (
	contextKeyUserID   = "auth_user_id"
	contextKeyTenantID = "auth_tenant_id"
	contextKeyEmail    = "auth_email"
)

// JWTAuth verifies the Authorization header and stores the authenticated
// identity in the gin context. Only access tokens are accepted.
func JWTAuth(manager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "Authorization header must be a Bearer token")
			return
		}

		claims, err := manager.Verify(parts[1])
		if err != nil {
			abortUnauthorized(c, "Token is invalid or expired")
			return
		}
		if claims.Type != auth.TokenTypeAccess {
			abortUnauthorized(c, "Token is not an access token")
			return
		}

		c.Set(contextKeyUserID, claims.UserID)
		c.Set(contextKeyTenantID, claims.TenantID)
		c.Set(contextKeyEmail, claims.Email)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("UNAUTHORIZED", message))
}

// UserIDFromContext returns the authenticated user ID
func UserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	id, ok := c.Get(contextKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	userID, ok := id.(uuid.UUID)
	return userID, ok
}

// TenantIDFromContext returns the authenticated tenant (company) ID
func TenantIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	id, ok := c.Get(contextKeyTenantID)
	if !ok {
		return uuid.Nil, false
	}
	tenantID, ok := id.(uuid.UUID)
	return tenantID, ok
}
