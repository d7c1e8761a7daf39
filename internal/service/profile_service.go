package service

import (
	"context"
	"errors"

	"github.com/jobtrack/jobtrack-api/internal/domain"
	"github.com/jobtrack/jobtrack-api/internal/dto"
	"github.com/jobtrack/jobtrack-api/internal/repository"
)

// profileService implements ProfileService interface
type profileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// Get returns the caller's profile
func (s *profileService) Get(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.respond(ctx, profile)
}

// Create creates the caller's profile. The owner is always the caller,
// whatever the payload says.
func (s *profileService) Create(ctx context.Context, userID string, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error) {
	if _, err := s.profileRepo.GetByUserID(ctx, userID); err == nil {
		return nil, repository.ErrDuplicateProfile
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	profile := &domain.Profile{
		UserID:    userID,
		Bio:       req.Bio,
		Location:  req.Location,
		BirthDate: req.BirthDate,
		Avatar:    req.Avatar,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return s.respond(ctx, profile)
}

// Update merges the supplied fields into the caller's profile.
// Omitted fields are left unchanged.
func (s *profileService) Update(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.BirthDate != nil {
		profile.BirthDate = req.BirthDate
	}
	if req.Avatar != nil {
		profile.Avatar = req.Avatar
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return s.respond(ctx, profile)
}

func (s *profileService) respond(ctx context.Context, profile *domain.Profile) (*dto.ProfileResponse, error) {
	owner, err := s.userRepo.GetByID(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewProfileResponse(profile, owner)
	return &resp, nil
}
