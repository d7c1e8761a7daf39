package domain

import "time"

// AuditAction is the kind of activity an audit log entry records
type AuditAction string

const (
	ActionLogin      AuditAction = "LOGIN"
	ActionLogout     AuditAction = "LOGOUT"
	ActionAPICall    AuditAction = "API_CALL"
	ActionRoleChange AuditAction = "ROLE_CHANGE"
	ActionUserUpdate AuditAction = "USER_UPDATE"
	ActionUserDelete AuditAction = "USER_DELETE"
)

// ValidAuditAction reports whether the value is an enumerated action
func ValidAuditAction(a string) bool {
	switch AuditAction(a) {
	case ActionLogin, ActionLogout, ActionAPICall, ActionRoleChange, ActionUserUpdate, ActionUserDelete:
		return true
	}
	return false
}

// AuditLog is an append-only record of a request outcome.
// Entries are never updated or deleted through the API.
type AuditLog struct {
	ID           string         `json:"id" db:"id"`
	UserID       string         `json:"user_id" db:"user_id"`
	Action       AuditAction    `json:"action" db:"action"`
	Timestamp    time.Time      `json:"timestamp" db:"timestamp"`
	IPAddress    *string        `json:"ip_address" db:"ip_address"`
	Endpoint     string         `json:"endpoint" db:"endpoint"`
	Method       string         `json:"method" db:"method"`
	StatusCode   *int           `json:"status_code" db:"status_code"`
	ResponseTime *float64       `json:"response_time" db:"response_time"`
	Details      map[string]any `json:"details" db:"details"`
}
