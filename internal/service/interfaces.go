package service

import (
	"context"
	"time"

	"github.com/jobtrack/jobtrack-api/internal/domain"
	"github.com/jobtrack/jobtrack-api/internal/dto"
	"github.com/jobtrack/jobtrack-api/internal/repository"
)

// AuthService defines methods for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest, ip string) (*AuthResult, error)
	Login(ctx context.Context, req *dto.LoginRequest, ip string) (*AuthResult, error)
	// Refresh validates a refresh token and mints a new access token.
	// The refresh token itself is not rotated; the client keeps it
	// until logout.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, userID, refreshToken string) error
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	ValidateAccessToken(token string) (*domain.TokenClaims, error)
}

// TokenBlacklist is the refresh token revocation store.
// A token added here must be visible to every later lookup.
type TokenBlacklist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}

// ProfileService defines methods for the caller's profile resource
type ProfileService interface {
	Get(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	Create(ctx context.Context, userID string, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error)
	Update(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

// ApplicationService defines methods for the owner-scoped application resource
type ApplicationService interface {
	List(ctx context.Context, userID, search string, page, pageSize int) (*dto.ApplicationListResponse, error)
	Get(ctx context.Context, userID, id string) (*domain.Application, error)
	Create(ctx context.Context, userID string, req *dto.CreateApplicationRequest) (*domain.Application, error)
	Update(ctx context.Context, userID, id string, req *dto.UpdateApplicationRequest) (*domain.Application, error)
	Delete(ctx context.Context, userID, id string) error
	Stats(ctx context.Context, userID string) (*Stats, error)
	Analytics(ctx context.Context, userID string) (*Analytics, error)
}

// AdminService defines admin console operations.
// Route-level authorization is enforced before any of these run.
type AdminService interface {
	ListUsers(ctx context.Context) ([]dto.AdminUserResponse, error)
	CreateUser(ctx context.Context, req *dto.AdminCreateUserRequest) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, actorID, id string, req *dto.AdminUpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, actorID, id string) error
	SetRole(ctx context.Context, actorID, id, role string) (*domain.User, error)
	AuditLogs(ctx context.Context, filter repository.AuditLogFilter, page, pageSize int) (*dto.AuditLogListResponse, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
	Monitoring(ctx context.Context) (*Monitoring, error)
	UserProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	UserApplications(ctx context.Context, userID string) ([]domain.Application, error)
	Application(ctx context.Context, id string) (*domain.Application, error)
}
