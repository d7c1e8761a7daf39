package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobtrack/jobtrack-api/internal/domain"
	"github.com/jobtrack/jobtrack-api/internal/service"
)

// AuditMiddleware records one audit entry per authenticated request.
// Recording is fire-and-forget: a full buffer or failed insert never
// touches the response. Anonymous requests are not audited.
func AuditMiddleware(recorder *service.AuditRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// Login sets the identity during the handler, so read it after
		userID := currentUserID(c)
		if userID == "" {
			return
		}

		path := c.Request.URL.Path
		status := c.Writer.Status()
		elapsed := time.Since(start).Seconds()
		ip := clientIP(c)

		details := map[string]any{
			"query_params": c.Request.URL.Query(),
			"content_type": c.ContentType(),
		}

		recorder.Record(&domain.AuditLog{
			UserID:       userID,
			Action:       classifyAction(c.Request.Method, path),
			IPAddress:    &ip,
			Endpoint:     path,
			Method:       c.Request.Method,
			StatusCode:   &status,
			ResponseTime: &elapsed,
			Details:      details,
		})
	}
}

func classifyAction(method, path string) domain.AuditAction {
	if method == "POST" {
		switch {
		case strings.HasSuffix(path, "/login"):
			return domain.ActionLogin
		case strings.HasSuffix(path, "/logout"):
			return domain.ActionLogout
		}
	}
	return domain.ActionAPICall
}
