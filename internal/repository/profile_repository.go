package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jobtrack/jobtrack-api/internal/domain"
	"github.com/jobtrack/jobtrack-api/pkg/database"
	"github.com/lib/pq"
)

// profileRepository implements ProfileRepository interface
type profileRepository struct {
	db *database.Postgres
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.Postgres) ProfileRepository {
	return &profileRepository{db: db}
}

// Create creates a profile for a user. The one-profile-per-user
// invariant is backed by a unique index on user_id.
func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, user_id, bio, location, birth_date, avatar, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}

	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = now
	}

	var birthDate any
	if profile.BirthDate != nil {
		birthDate = profile.BirthDate.Time
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		profile.ID,
		profile.UserID,
		profile.Bio,
		profile.Location,
		birthDate,
		profile.Avatar,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" { // unique_violation
			return fmt.Errorf("profile for user %s already exists: %w", profile.UserID, ErrDuplicateProfile)
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// GetByUserID retrieves the profile owned by a user
func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	query := `
		SELECT id, user_id, bio, location, birth_date, avatar, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	profile := &domain.Profile{}
	var birthDate sql.NullTime
	var avatar sql.NullString

	err := r.db.DB.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Bio,
		&profile.Location,
		&birthDate,
		&avatar,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile for user %s not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if birthDate.Valid {
		profile.BirthDate = &domain.Date{Time: birthDate.Time}
	}
	if avatar.Valid {
		profile.Avatar = &avatar.String
	}

	return profile, nil
}

// Update updates an existing profile
func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET bio = $2, location = $3, birth_date = $4, avatar = $5, updated_at = $6
		WHERE id = $1
	`

	profile.UpdatedAt = time.Now()

	var birthDate any
	if profile.BirthDate != nil {
		birthDate = profile.BirthDate.Time
	}

	result, err := r.db.DB.ExecContext(ctx, query,
		profile.ID,
		profile.Bio,
		profile.Location,
		birthDate,
		profile.Avatar,
		profile.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("profile with id %s not found: %w", profile.ID, ErrNotFound)
	}

	return nil
}
