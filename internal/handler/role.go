package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobtrack/jobtrack-api/internal/domain"
)

const forbiddenMessage = "You do not have permission to access this resource"

// RequireAdmin gates admin-only route groups. Unauthenticated requests
// pass through so the auth gate can answer 401; authenticated non-admins
// get a fixed 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUserID(c) == "" {
			c.Next()
			return
		}
		if c.GetString(ctxRole) != string(domain.RoleAdmin) {
			respondError(c, http.StatusForbidden, forbiddenMessage, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
