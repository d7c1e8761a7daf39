package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jobtrack/jobtrack-api/internal/domain"
	"github.com/jobtrack/jobtrack-api/pkg/database"
)

// auditLogRepository implements AuditLogRepository interface
type auditLogRepository struct {
	db *database.Postgres
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *database.Postgres) AuditLogRepository {
	return &auditLogRepository{db: db}
}

// Create appends an audit log entry. Entries are never updated or
// deleted through the API.
func (r *auditLogRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	query := `
		INSERT INTO audit_log (id, user_id, action, timestamp, ip_address, endpoint, method, status_code, response_time, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.Details == nil {
		entry.Details = map[string]any{}
	}

	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal audit details: %w", err)
	}

	_, err = r.db.DB.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Action,
		entry.Timestamp,
		entry.IPAddress,
		entry.Endpoint,
		entry.Method,
		entry.StatusCode,
		entry.ResponseTime,
		details,
	)

	if err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}

	return nil
}

func (r *auditLogRepository) filterClause(filter AuditLogFilter) (string, []any) {
	where := ` WHERE 1=1`
	args := []any{}

	if filter.UserID != "" {
		args = append(args, filter.UserID)
		where += fmt.Sprintf(" AND l.user_id = $%d", len(args))
	}
	if filter.Action != "" {
		args = append(args, filter.Action)
		where += fmt.Sprintf(" AND l.action = $%d", len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		where += fmt.Sprintf(" AND l.timestamp >= $%d", len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		where += fmt.Sprintf(" AND l.timestamp <= $%d", len(args))
	}

	return where, args
}

// List retrieves a filtered page of audit entries, newest first
func (r *auditLogRepository) List(ctx context.Context, filter AuditLogFilter) ([]AuditLogWithUser, error) {
	where, args := r.filterClause(filter)

	args = append(args, filter.Limit)
	limitPos := len(args)
	args = append(args, filter.Offset)

	query := `
		SELECT l.id, l.user_id, l.action, l.timestamp, l.ip_address, l.endpoint, l.method, l.status_code, l.response_time, l.details, u.username, u.email
		FROM audit_log l
		JOIN users u ON u.id = l.user_id` + where +
		fmt.Sprintf(` ORDER BY l.timestamp DESC LIMIT $%d OFFSET $%d`, limitPos, limitPos+1)

	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	return collectAuditLogs(rows)
}

func collectAuditLogs(rows *sql.Rows) ([]AuditLogWithUser, error) {
	logs := []AuditLogWithUser{}
	for rows.Next() {
		var entry AuditLogWithUser
		var ipAddress sql.NullString
		var statusCode sql.NullInt64
		var responseTime sql.NullFloat64
		var details []byte

		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Action,
			&entry.Timestamp,
			&ipAddress,
			&entry.Endpoint,
			&entry.Method,
			&statusCode,
			&responseTime,
			&details,
			&entry.Username,
			&entry.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log entry: %w", err)
		}

		if ipAddress.Valid {
			entry.IPAddress = &ipAddress.String
		}
		if statusCode.Valid {
			code := int(statusCode.Int64)
			entry.StatusCode = &code
		}
		if responseTime.Valid {
			entry.ResponseTime = &responseTime.Float64
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &entry.Details); err != nil {
				return nil, fmt.Errorf("failed to unmarshal audit details: %w", err)
			}
		}

		logs = append(logs, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit logs: %w", err)
	}

	return logs, nil
}

// Count counts audit entries matching the filter
func (r *auditLogRepository) Count(ctx context.Context, filter AuditLogFilter) (int, error) {
	where, args := r.filterClause(filter)
	query := `SELECT COUNT(*) FROM audit_log l` + where

	var count int
	if err := r.db.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	return count, nil
}

// CountByUser counts all audit entries for a user
func (r *auditLogRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM audit_log WHERE user_id = $1`

	var count int
	if err := r.db.DB.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count audit logs by user: %w", err)
	}

	return count, nil
}

// CountByActionSince counts entries of one action type at or after a time
func (r *auditLogRepository) CountByActionSince(ctx context.Context, action domain.AuditAction, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM audit_log WHERE action = $1 AND timestamp >= $2`

	var count int
	if err := r.db.DB.QueryRowContext(ctx, query, action, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count audit logs by action: %w", err)
	}

	return count, nil
}

// TopUsers returns the most active users by audit row count
func (r *auditLogRepository) TopUsers(ctx context.Context, limit int) ([]UserActivity, error) {
	query := `
		SELECT u.username, COUNT(l.id) AS activity_count
		FROM audit_log l
		JOIN users u ON u.id = l.user_id
		GROUP BY u.username
		ORDER BY activity_count DESC
		LIMIT $1
	`

	rows, err := r.db.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top users: %w", err)
	}
	defer rows.Close()

	top := []UserActivity{}
	for rows.Next() {
		var activity UserActivity
		if err := rows.Scan(&activity.Username, &activity.ActivityCount); err != nil {
			return nil, fmt.Errorf("failed to scan user activity: %w", err)
		}
		top = append(top, activity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user activity: %w", err)
	}

	return top, nil
}

// Recent returns the latest audit entries
func (r *auditLogRepository) Recent(ctx context.Context, limit int) ([]AuditLogWithUser, error) {
	return r.List(ctx, AuditLogFilter{Limit: limit})
}

// ActionBreakdown counts audit entries per action type, largest first
func (r *auditLogRepository) ActionBreakdown(ctx context.Context) ([]ActionCount, error) {
	query := `
		SELECT action, COUNT(*) AS count
		FROM audit_log
		GROUP BY action
		ORDER BY count DESC
	`

	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query action breakdown: %w", err)
	}
	defer rows.Close()

	breakdown := []ActionCount{}
	for rows.Next() {
		var ac ActionCount
		if err := rows.Scan(&ac.Action, &ac.Count); err != nil {
			return nil, fmt.Errorf("failed to scan action count: %w", err)
		}
		breakdown = append(breakdown, ac)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate action counts: %w", err)
	}

	return breakdown, nil
}
