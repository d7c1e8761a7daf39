package service

import (
	"context"
	"errors"
	"time"

	"github.com/jobtrack/jobtrack-api/internal/domain"
	"github.com/jobtrack/jobtrack-api/internal/dto"
	"github.com/jobtrack/jobtrack-api/internal/repository"
	"github.com/jobtrack/jobtrack-api/internal/utils"
)

const (
	// AuditDefaultPageSize is the audit listing page size when none is requested
	AuditDefaultPageSize = 50

	dashboardTopUsers       = 10
	dashboardRecentActivity = 10
)

// UserCounts is the user census block of the dashboard
type UserCounts struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	NewThisWeek  int `json:"new_this_week"`
	NewThisMonth int `json:"new_this_month"`
}

// APIUsage counts audited API calls over recent windows
type APIUsage struct {
	CallsToday int `json:"calls_today"`
	CallsWeek  int `json:"calls_week"`
}

// Dashboard is the admin console overview
type Dashboard struct {
	Users           UserCounts                `json:"users"`
	APIUsage        APIUsage                  `json:"api_usage"`
	TopUsers        []repository.UserActivity `json:"top_users"`
	RecentActivity  []dto.AuditLogResponse    `json:"recent_activity"`
	ActionBreakdown []repository.ActionCount  `json:"action_breakdown"`
}

// Monitoring is a lighter operational snapshot than the dashboard
type Monitoring struct {
	APIUsage       APIUsage               `json:"api_usage"`
	RecentActivity []dto.AuditLogResponse `json:"recent_activity"`
}

// adminService implements AdminService interface
type adminService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	appRepo     repository.ApplicationRepository
	auditRepo   repository.AuditLogRepository
	recorder    *AuditRecorder
	bcryptCost  int
}

// NewAdminService creates a new admin service
func NewAdminService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	appRepo repository.ApplicationRepository,
	auditRepo repository.AuditLogRepository,
	recorder *AuditRecorder,
	bcryptCost int,
) AdminService {
	return &adminService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		appRepo:     appRepo,
		auditRepo:   auditRepo,
		recorder:    recorder,
		bcryptCost:  bcryptCost,
	}
}

// ListUsers returns every user with profile and audit attachments
func (s *adminService) ListUsers(ctx context.Context) ([]dto.AdminUserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AdminUserResponse, 0, len(users))
	for _, user := range users {
		item := dto.AdminUserResponse{UserResponse: dto.NewUserResponse(user)}

		profile, err := s.profileRepo.GetByUserID(ctx, user.ID)
		switch {
		case err == nil:
			resp := dto.NewProfileResponse(profile, user)
			item.Profile = &resp
		case !errors.Is(err, repository.ErrNotFound):
			return nil, err
		}

		count, err := s.auditRepo.CountByUser(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		item.AuditLogsCount = count

		out = append(out, item)
	}
	return out, nil
}

// CreateUser creates a user with an admin-chosen role and active flag
func (s *adminService) CreateUser(ctx context.Context, req *dto.AdminCreateUserRequest) (*domain.User, error) {
	email := utils.SanitizeEmail(req.Email)
	username := utils.SanitizeUsername(req.Username)

	if !utils.ValidateEmail(email) {
		return nil, NewValidationError("email", "invalid email format")
	}
	if !utils.ValidatePassword(req.Password) {
		return nil, NewValidationError("password", "password must be at least 8 characters long")
	}

	role := req.Role
	if role == "" {
		role = string(domain.RoleUser)
	}
	if !domain.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	hash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.Role(role),
		IsActive:     isActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser returns a single user by id
func (s *adminService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateUser merges the supplied fields into a user and audits the change
func (s *adminService) UpdateUser(ctx context.Context, actorID, id string, req *dto.AdminUpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := map[string]any{}
	if req.Username != nil {
		user.Username = utils.SanitizeUsername(*req.Username)
		changed["username"] = user.Username
	}
	if req.Email != nil {
		email := utils.SanitizeEmail(*req.Email)
		if !utils.ValidateEmail(email) {
			return nil, NewValidationError("email", "invalid email format")
		}
		user.Email = email
		changed["email"] = email
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
		changed["is_active"] = *req.IsActive
	}
	if req.Role != nil {
		if !domain.ValidRole(*req.Role) {
			return nil, ErrInvalidRole
		}
		user.Role = domain.Role(*req.Role)
		changed["role"] = *req.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.recorder.Record(&domain.AuditLog{
		UserID:   actorID,
		Action:   domain.ActionUserUpdate,
		Endpoint: "/api/v1/admin/users/" + id,
		Method:   "PATCH",
		Details: map[string]any{
			"target_user_id": id,
			"changed":        changed,
		},
	})

	return user, nil
}

// DeleteUser removes a user. Admins cannot delete themselves.
func (s *adminService) DeleteUser(ctx context.Context, actorID, id string) error {
	if actorID == id {
		return ErrSelfDelete
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(&domain.AuditLog{
		UserID:   actorID,
		Action:   domain.ActionUserDelete,
		Endpoint: "/api/v1/admin/users/" + id,
		Method:   "DELETE",
		Details: map[string]any{
			"deleted_user_id":  user.ID,
			"deleted_username": user.Username,
		},
	})

	return nil
}

// SetRole changes a user's role and audits the transition
func (s *adminService) SetRole(ctx context.Context, actorID, id, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := string(user.Role)
	user.Role = domain.Role(role)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.recorder.Record(&domain.AuditLog{
		UserID:   actorID,
		Action:   domain.ActionRoleChange,
		Endpoint: "/api/v1/admin/users/" + id + "/set_role",
		Method:   "POST",
		Details: map[string]any{
			"target_user_id": id,
			"old_role":       previous,
			"new_role":       role,
		},
	})

	return user, nil
}

// AuditLogs returns a filtered, paginated audit log listing
func (s *adminService) AuditLogs(ctx context.Context, filter repository.AuditLogFilter, page, pageSize int) (*dto.AuditLogListResponse, error) {
	if page < 1 {
		page = 1
	}
	pageSize = ClampPageSize(pageSize, AuditDefaultPageSize)

	filter.Limit = pageSize
	filter.Offset = (page - 1) * pageSize

	total, err := s.auditRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	logs, err := s.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:       mapAuditLogs(logs),
		Pagination: dto.NewPagination(page, pageSize, total),
	}, nil
}

// Dashboard aggregates the admin console overview
func (s *adminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	users, err := s.userCounts(ctx)
	if err != nil {
		return nil, err
	}

	usage, err := s.apiUsage(ctx)
	if err != nil {
		return nil, err
	}

	topUsers, err := s.auditRepo.TopUsers(ctx, dashboardTopUsers)
	if err != nil {
		return nil, err
	}

	recent, err := s.auditRepo.Recent(ctx, dashboardRecentActivity)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.auditRepo.ActionBreakdown(ctx)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Users:           users,
		APIUsage:        usage,
		TopUsers:        topUsers,
		RecentActivity:  mapAuditLogs(recent),
		ActionBreakdown: breakdown,
	}, nil
}

// Monitoring returns the operational snapshot
func (s *adminService) Monitoring(ctx context.Context) (*Monitoring, error) {
	usage, err := s.apiUsage(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.auditRepo.Recent(ctx, dashboardRecentActivity)
	if err != nil {
		return nil, err
	}

	return &Monitoring{
		APIUsage:       usage,
		RecentActivity: mapAuditLogs(recent),
	}, nil
}

// UserProfile returns any user's profile for the admin console
func (s *adminService) UserProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	owner, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewProfileResponse(profile, owner)
	return &resp, nil
}

// UserApplications returns any user's applications for the admin console
func (s *adminService) UserApplications(ctx context.Context, userID string) ([]domain.Application, error) {
	return s.appRepo.ListAllByUser(ctx, userID)
}

// Application returns any application by id, ignoring ownership
func (s *adminService) Application(ctx context.Context, id string) (*domain.Application, error) {
	return s.appRepo.GetByID(ctx, id)
}

func (s *adminService) userCounts(ctx context.Context) (UserCounts, error) {
	now := time.Now().UTC()

	total, err := s.userRepo.Count(ctx, false)
	if err != nil {
		return UserCounts{}, err
	}
	active, err := s.userRepo.Count(ctx, true)
	if err != nil {
		return UserCounts{}, err
	}
	newWeek, err := s.userRepo.CountCreatedSince(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		return UserCounts{}, err
	}
	newMonth, err := s.userRepo.CountCreatedSince(ctx, now.AddDate(0, 0, -30))
	if err != nil {
		return UserCounts{}, err
	}

	return UserCounts{
		Total:        total,
		Active:       active,
		NewThisWeek:  newWeek,
		NewThisMonth: newMonth,
	}, nil
}

func (s *adminService) apiUsage(ctx context.Context) (APIUsage, error) {
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	today, err := s.auditRepo.CountByActionSince(ctx, domain.ActionAPICall, startOfDay)
	if err != nil {
		return APIUsage{}, err
	}
	week, err := s.auditRepo.CountByActionSince(ctx, domain.ActionAPICall, now.AddDate(0, 0, -7))
	if err != nil {
		return APIUsage{}, err
	}

	return APIUsage{CallsToday: today, CallsWeek: week}, nil
}

func mapAuditLogs(logs []repository.AuditLogWithUser) []dto.AuditLogResponse {
	out := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.AuditLogResponse{
			ID: l.ID,
			User: dto.AuditLogUser{
				ID:       l.UserID,
				Username: l.Username,
				Email:    l.Email,
			},
			Action:       string(l.Action),
			Timestamp:    l.Timestamp,
			IPAddress:    l.IPAddress,
			Endpoint:     l.Endpoint,
			Method:       l.Method,
			StatusCode:   l.StatusCode,
			ResponseTime: l.ResponseTime,
			Details:      l.Details,
		})
	}
	return out
}
