package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/jobtrack/jobtrack-api/internal/domain"
	"github.com/jobtrack/jobtrack-api/internal/dto"
	"github.com/jobtrack/jobtrack-api/internal/repository"
	"github.com/jobtrack/jobtrack-api/internal/utils"
)

// AuthResult carries the authenticated user and the freshly minted
// token pair. The handler turns the tokens into cookies.
type AuthResult struct {
	User   *domain.User
	Tokens domain.TokenPair
}

// authService implements AuthService interface
type authService struct {
	userRepo   repository.UserRepository
	tokenRepo  repository.TokenRepository
	jwtManager *utils.JWTManager
	blacklist  TokenBlacklist
	bcryptCost int
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	jwtManager *utils.JWTManager,
	blacklist TokenBlacklist,
	bcryptCost int,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		jwtManager: jwtManager,
		blacklist:  blacklist,
		bcryptCost: bcryptCost,
	}
}

// Register registers a new user. Any caller-supplied role is ignored;
// accounts always start as USER.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest, ip string) (*AuthResult, error) {
	email := utils.SanitizeEmail(req.Email)
	if !utils.ValidateEmail(email) {
		return nil, NewValidationError("email", "invalid email format")
	}
	if !utils.ValidatePassword(req.Password) {
		return nil, NewValidationError("password", "password must be at least 8 characters long")
	}

	username := utils.SanitizeUsername(req.Username)

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("user with email %s already exists: %w", email, repository.ErrDuplicateEmail)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("user with username %s already exists: %w", username, repository.ErrDuplicateUsername)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         domain.RoleUser,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user, ip)
}

// Login authenticates a user by email and password
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ip string) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// Best effort; a failed timestamp update must not block the login
	_ = s.userRepo.UpdateLastLogin(ctx, user.ID)

	return s.issueTokens(ctx, user, ip)
}

// Refresh validates a refresh token and mints a new access token
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	revoked, err := s.blacklist.Contains(ctx, refreshToken)
	if err != nil {
		return "", fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if revoked {
		return "", ErrTokenRevoked
	}

	dbToken, err := s.tokenRepo.GetByTokenHash(ctx, hashToken(refreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", utils.ErrTokenInvalid
		}
		return "", fmt.Errorf("failed to get token: %w", err)
	}
	if time.Now().After(dbToken.ExpiresAt) {
		return "", utils.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsActive {
		return "", ErrUserInactive
	}

	access, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return access, nil
}

// Logout blacklists the refresh token and drops its database record.
// Revocation must be visible to every later refresh attempt.
func (s *authService) Logout(ctx context.Context, userID, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	tokenHash := hashToken(refreshToken)
	dbToken, err := s.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil || dbToken.UserID != userID {
		// Unknown or foreign token; nothing to revoke
		return nil
	}

	if err := s.blacklist.Add(ctx, refreshToken, s.jwtManager.RefreshTokenExpiry()); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	// The blacklist is authoritative; a failed row delete is tolerable
	_ = s.tokenRepo.DeleteByTokenHash(ctx, tokenHash)

	return nil
}

// GetUser gets a user by id
func (s *authService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// ValidateAccessToken validates an access token signature and expiry
func (s *authService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	return s.jwtManager.ValidateAccessToken(token)
}

func (s *authService) issueTokens(ctx context.Context, user *domain.User, ip string) (*AuthResult, error) {
	access, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	entity := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(refresh),
		ExpiresAt: time.Now().Add(s.jwtManager.RefreshTokenExpiry()),
	}
	if ip != "" {
		entity.IPAddress = &ip
	}

	if err := s.tokenRepo.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &AuthResult{
		User: user,
		Tokens: domain.TokenPair{
			AccessToken:  access,
			RefreshToken: refresh,
		},
	}, nil
}

// hashToken hashes a token with SHA-256 for storage
func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
