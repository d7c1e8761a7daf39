package repository

import (
	"context"
	"time"

	"github.com/jobtrack/jobtrack-api/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateLastLogin(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, activeOnly bool) (int, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int, error)
}

// TokenRepository defines methods for refresh token operations
type TokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context) error
}

// ProfileRepository defines methods for profile operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}

// ApplicationFilter narrows and pages an application listing
type ApplicationFilter struct {
	Search string
	Limit  int
	Offset int
}

// ApplicationRepository defines methods for job application operations
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.Application) error
	// GetOwned returns ErrNotFound for both nonexistent ids and records
	// owned by someone else, so existence never leaks across users.
	GetOwned(ctx context.Context, id, userID string) (*domain.Application, error)
	GetByID(ctx context.Context, id string) (*domain.Application, error)
	ListByUser(ctx context.Context, userID string, filter ApplicationFilter) ([]domain.Application, error)
	CountByUser(ctx context.Context, userID, search string) (int, error)
	ListAllByUser(ctx context.Context, userID string) ([]domain.Application, error)
	Update(ctx context.Context, app *domain.Application) error
	Delete(ctx context.Context, id, userID string) error
}

// AuditLogFilter narrows and pages an audit log listing
type AuditLogFilter struct {
	UserID    string
	Action    string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// AuditLogWithUser joins an audit entry with its actor for admin listings
type AuditLogWithUser struct {
	domain.AuditLog
	Username string
	Email    string
}

// UserActivity counts audit rows per user
type UserActivity struct {
	Username      string `json:"username"`
	ActivityCount int    `json:"activity_count"`
}

// ActionCount counts audit rows per action type
type ActionCount struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
}

// AuditLogRepository defines methods for the append-only audit log
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter) ([]AuditLogWithUser, error)
	Count(ctx context.Context, filter AuditLogFilter) (int, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	CountByActionSince(ctx context.Context, action domain.AuditAction, since time.Time) (int, error)
	TopUsers(ctx context.Context, limit int) ([]UserActivity, error)
	Recent(ctx context.Context, limit int) ([]AuditLogWithUser, error)
	ActionBreakdown(ctx context.Context) ([]ActionCount, error)
}
