package dto

import (
	"time"

	"github.com/jobtrack/jobtrack-api/internal/domain"
)

// SuccessResponse is the standardized success envelope
type SuccessResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the standardized error envelope
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// NewUserResponse maps a domain user onto its API representation
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

// AuthResponse is the body of register/login responses.
// Tokens travel in http-only cookies, not in the body.
type AuthResponse struct {
	User UserResponse `json:"user"`
}

// ProfileResponse represents a profile in API responses
type ProfileResponse struct {
	ID        string       `json:"id"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	Bio       string       `json:"bio"`
	Location  string       `json:"location"`
	BirthDate *domain.Date `json:"birth_date"`
	Avatar    *string      `json:"avatar"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewProfileResponse maps a profile and its owner onto the API representation
func NewProfileResponse(p *domain.Profile, owner *domain.User) ProfileResponse {
	resp := ProfileResponse{
		ID:        p.ID,
		Bio:       p.Bio,
		Location:  p.Location,
		BirthDate: p.BirthDate,
		Avatar:    p.Avatar,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if owner != nil {
		resp.Username = owner.Username
		resp.Email = owner.Email
	}
	return resp
}

// Pagination carries manual pagination metadata
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes pagination metadata for a total row count
func NewPagination(page, pageSize, total int) Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// ApplicationListResponse is a paginated application listing
type ApplicationListResponse struct {
	Results    []domain.Application `json:"results"`
	Pagination Pagination           `json:"pagination"`
}

// AdminUserResponse is a user with admin-only attachments
type AdminUserResponse struct {
	UserResponse
	Profile        *ProfileResponse `json:"profile"`
	AuditLogsCount int              `json:"audit_logs_count"`
}

// AuditLogUser identifies the actor of an audit log entry
type AuditLogUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuditLogResponse represents an audit log entry in admin listings
type AuditLogResponse struct {
	ID           string         `json:"id"`
	User         AuditLogUser   `json:"user"`
	Action       string         `json:"action"`
	Timestamp    time.Time      `json:"timestamp"`
	IPAddress    *string        `json:"ip_address"`
	Endpoint     string         `json:"endpoint"`
	Method       string         `json:"method"`
	StatusCode   *int           `json:"status_code"`
	ResponseTime *float64       `json:"response_time"`
	Details      map[string]any `json:"details"`
}

// AuditLogListResponse is a paginated audit log listing
type AuditLogListResponse struct {
	Logs       []AuditLogResponse `json:"logs"`
	Pagination Pagination         `json:"pagination"`
}
