package service

import (
	"context"
	"fmt"

	"github.com/jobtrack/jobtrack-api/internal/domain"
	"github.com/jobtrack/jobtrack-api/internal/dto"
	"github.com/jobtrack/jobtrack-api/internal/repository"
)

const (
	// DefaultPageSize is the application page size when none is requested
	DefaultPageSize = 5
	// MaxPageSize caps caller-requested page sizes
	MaxPageSize = 100
)

// applicationService implements ApplicationService interface
type applicationService struct {
	appRepo repository.ApplicationRepository
}

// NewApplicationService creates a new application service
func NewApplicationService(appRepo repository.ApplicationRepository) ApplicationService {
	return &applicationService{appRepo: appRepo}
}

// ClampPageSize normalizes a caller-requested page size
func ClampPageSize(pageSize, fallback int) int {
	if pageSize <= 0 {
		return fallback
	}
	if pageSize > MaxPageSize {
		return MaxPageSize
	}
	return pageSize
}

// List returns a page of the caller's applications
func (s *applicationService) List(ctx context.Context, userID, search string, page, pageSize int) (*dto.ApplicationListResponse, error) {
	if page < 1 {
		page = 1
	}
	pageSize = ClampPageSize(pageSize, DefaultPageSize)

	total, err := s.appRepo.CountByUser(ctx, userID, search)
	if err != nil {
		return nil, err
	}

	apps, err := s.appRepo.ListByUser(ctx, userID, repository.ApplicationFilter{
		Search: search,
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	})
	if err != nil {
		return nil, err
	}

	return &dto.ApplicationListResponse{
		Results:    apps,
		Pagination: dto.NewPagination(page, pageSize, total),
	}, nil
}

// Get returns one caller-owned application
func (s *applicationService) Get(ctx context.Context, userID, id string) (*domain.Application, error) {
	return s.appRepo.GetOwned(ctx, id, userID)
}

// Create validates and persists a new application bound to the caller
func (s *applicationService) Create(ctx context.Context, userID string, req *dto.CreateApplicationRequest) (*domain.Application, error) {
	status := req.Status
	if status == "" {
		status = string(domain.StatusApplied)
	}
	jobType := req.JobType
	if jobType == "" {
		jobType = string(domain.JobTypeFullTime)
	}

	if !domain.ValidApplicationStatus(status) {
		return nil, NewValidationError("status", fmt.Sprintf("%q is not a valid status", status))
	}
	if !domain.ValidJobType(jobType) {
		return nil, NewValidationError("jobType", fmt.Sprintf("%q is not a valid job type", jobType))
	}

	app := &domain.Application{
		UserID:        userID,
		Company:       req.Company,
		Position:      req.Position,
		AppliedDate:   req.AppliedDate,
		Status:        domain.ApplicationStatus(status),
		InterviewDate: req.InterviewDate,
		FollowUpDate:  req.FollowUpDate,
		Salary:        req.Salary,
		JobType:       domain.JobType(jobType),
		Notes:         req.Notes,
		JobURL:        req.JobURL,
		ContactPerson: req.ContactPerson,
		ContactEmail:  req.ContactEmail,
	}

	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	return app, nil
}

// Update merges the supplied fields into a caller-owned application.
// Omitted fields are left unchanged.
func (s *applicationService) Update(ctx context.Context, userID, id string, req *dto.UpdateApplicationRequest) (*domain.Application, error) {
	app, err := s.appRepo.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if !domain.ValidApplicationStatus(*req.Status) {
			return nil, NewValidationError("status", fmt.Sprintf("%q is not a valid status", *req.Status))
		}
		app.Status = domain.ApplicationStatus(*req.Status)
	}
	if req.JobType != nil {
		if !domain.ValidJobType(*req.JobType) {
			return nil, NewValidationError("jobType", fmt.Sprintf("%q is not a valid job type", *req.JobType))
		}
		app.JobType = domain.JobType(*req.JobType)
	}
	if req.Company != nil {
		app.Company = *req.Company
	}
	if req.Position != nil {
		app.Position = *req.Position
	}
	if req.AppliedDate != nil {
		app.AppliedDate = *req.AppliedDate
	}
	if req.InterviewDate != nil {
		app.InterviewDate = req.InterviewDate
	}
	if req.FollowUpDate != nil {
		app.FollowUpDate = req.FollowUpDate
	}
	if req.Salary != nil {
		app.Salary = req.Salary
	}
	if req.Notes != nil {
		app.Notes = *req.Notes
	}
	if req.JobURL != nil {
		app.JobURL = *req.JobURL
	}
	if req.ContactPerson != nil {
		app.ContactPerson = *req.ContactPerson
	}
	if req.ContactEmail != nil {
		app.ContactEmail = *req.ContactEmail
	}

	if err := s.appRepo.Update(ctx, app); err != nil {
		return nil, err
	}

	return app, nil
}

// Delete removes a caller-owned application
func (s *applicationService) Delete(ctx context.Context, userID, id string) error {
	return s.appRepo.Delete(ctx, id, userID)
}

// Stats summarizes the caller's applications
func (s *applicationService) Stats(ctx context.Context, userID string) (*Stats, error) {
	apps, err := s.appRepo.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ComputeStats(apps, domain.Today()), nil
}

// Analytics computes breakdowns over the caller's applications
func (s *applicationService) Analytics(ctx context.Context, userID string) (*Analytics, error) {
	apps, err := s.appRepo.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ComputeAnalytics(apps), nil
}
