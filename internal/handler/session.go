package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobtrack/jobtrack-api/internal/service"
)

// Cookie names the session rides in
const (
	AccessCookie  = "access"
	RefreshCookie = "refresh"
)

// SessionMiddleware resolves the caller's identity from the access
// cookie. It is deliberately permissive: a missing, expired, or
// malformed cookie passes through unauthenticated, and protected
// routes answer with their own 401. The middleware never refreshes
// tokens on the caller's behalf.
func SessionMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AccessCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := authService.ValidateAccessToken(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxRole, string(claims.Role))
		c.Set(ctxClaims, claims)

		c.Next()
	}
}

// RequireAuth rejects requests the session middleware left unauthenticated
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUserID(c) == "" {
			respondError(c, http.StatusUnauthorized, "Authentication required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
