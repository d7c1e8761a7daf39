package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jobtrack/jobtrack-api/internal/dto"
	"github.com/jobtrack/jobtrack-api/internal/repository"
	"github.com/jobtrack/jobtrack-api/internal/service"
)

// Context keys set by the session middleware and read by handlers
const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
	ctxRole   = "role"
	ctxClaims = "claims"
)

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, dto.SuccessResponse{Data: data})
}

func respondMessage(c *gin.Context, status int, data any, message string) {
	c.JSON(status, dto.SuccessResponse{Data: data, Message: message})
}

func respondError(c *gin.Context, status int, msg string, details any) {
	c.JSON(status, dto.ErrorResponse{Error: msg, Details: details})
}

// respondServiceError maps service and repository failures onto the
// error envelope. Unrecognized errors become 500s with the error text
// surfaced as-is.
func respondServiceError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		respondError(c, http.StatusBadRequest, "Validation failed", ve.Fields)
	case errors.Is(err, service.ErrInvalidRole):
		respondError(c, http.StatusBadRequest, service.ErrInvalidRole.Error(), nil)
	case errors.Is(err, service.ErrSelfDelete):
		respondError(c, http.StatusBadRequest, service.ErrSelfDelete.Error(), nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Invalid email or password", nil)
	case errors.Is(err, service.ErrUserInactive):
		respondError(c, http.StatusUnauthorized, "Account is deactivated", nil)
	case errors.Is(err, repository.ErrDuplicateProfile):
		respondError(c, http.StatusBadRequest, "Profile already exists", nil)
	case errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, repository.ErrDuplicateUsername):
		respondError(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, repository.ErrNotFound):
		respondError(c, http.StatusNotFound, "Not found", nil)
	default:
		respondError(c, http.StatusInternalServerError, err.Error(), nil)
	}
}

// currentUserID returns the authenticated user id, or "" when the
// request carries no valid session
func currentUserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// clientIP prefers the first X-Forwarded-For entry over the socket address
func clientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		return strings.TrimSpace(strings.Split(xff, ",")[0])
	}
	return c.ClientIP()
}
