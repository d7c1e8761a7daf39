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
)

// applicationRepository implements ApplicationRepository interface
type applicationRepository struct {
	db *database.Postgres
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *database.Postgres) ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `id, user_id, company, position, applied_date, status, interview_date, follow_up_date, salary, job_type, notes, job_url, contact_person, contact_email, created_at, updated_at`

func scanApplication(row interface{ Scan(...any) error }) (*domain.Application, error) {
	app := &domain.Application{}
	var interviewDate, followUpDate sql.NullTime
	var salary sql.NullInt64

	err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.Company,
		&app.Position,
		&app.AppliedDate,
		&app.Status,
		&interviewDate,
		&followUpDate,
		&salary,
		&app.JobType,
		&app.Notes,
		&app.JobURL,
		&app.ContactPerson,
		&app.ContactEmail,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if interviewDate.Valid {
		app.InterviewDate = &domain.Date{Time: interviewDate.Time}
	}
	if followUpDate.Valid {
		app.FollowUpDate = &domain.Date{Time: followUpDate.Time}
	}
	if salary.Valid {
		s := int(salary.Int64)
		app.Salary = &s
	}

	return app, nil
}

func nullableDate(d *domain.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}

// Create creates a new application bound to its owner
func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (id, user_id, company, position, applied_date, status, interview_date, follow_up_date, salary, job_type, notes, job_url, contact_person, contact_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	if app.ID == "" {
		app.ID = uuid.New().String()
	}

	now := time.Now()
	if app.CreatedAt.IsZero() {
		app.CreatedAt = now
	}
	if app.UpdatedAt.IsZero() {
		app.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		app.ID,
		app.UserID,
		app.Company,
		app.Position,
		app.AppliedDate.Time,
		app.Status,
		nullableDate(app.InterviewDate),
		nullableDate(app.FollowUpDate),
		app.Salary,
		app.JobType,
		app.Notes,
		app.JobURL,
		app.ContactPerson,
		app.ContactEmail,
		app.CreatedAt,
		app.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	return nil
}

// GetOwned retrieves an application only when it belongs to the given
// user. A record owned by someone else reads as not found.
func (r *applicationRepository) GetOwned(ctx context.Context, id, userID string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1 AND user_id = $2`

	app, err := scanApplication(r.db.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("application with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return app, nil
}

// GetByID retrieves an application regardless of owner (admin lookups)
func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	app, err := scanApplication(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("application with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}

	return app, nil
}

// ListByUser retrieves a page of a user's applications, newest applied
// first, optionally narrowed by a case-insensitive company/position match
func (r *applicationRepository) ListByUser(ctx context.Context, userID string, filter ApplicationFilter) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM applications
		WHERE user_id = $1 AND (company ILIKE $2 OR position ILIKE $2)
		ORDER BY applied_date DESC, created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.DB.QueryContext(ctx, query, userID, "%"+filter.Search+"%", filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

// CountByUser counts a user's applications under the same search filter
func (r *applicationRepository) CountByUser(ctx context.Context, userID, search string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM applications
		WHERE user_id = $1 AND (company ILIKE $2 OR position ILIKE $2)
	`

	var count int
	if err := r.db.DB.QueryRowContext(ctx, query, userID, "%"+search+"%").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count applications: %w", err)
	}

	return count, nil
}

// ListAllByUser retrieves every application a user owns (analytics,
// admin lookups)
func (r *applicationRepository) ListAllByUser(ctx context.Context, userID string) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM applications
		WHERE user_id = $1
		ORDER BY applied_date DESC, created_at DESC
	`

	rows, err := r.db.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

func collectApplications(rows *sql.Rows) ([]domain.Application, error) {
	apps := []domain.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate applications: %w", err)
	}

	return apps, nil
}

// Update updates an application; the owner check rides in the WHERE
// clause so a foreign record reads as not found
func (r *applicationRepository) Update(ctx context.Context, app *domain.Application) error {
	query := `
		UPDATE applications
		SET company = $3, position = $4, applied_date = $5, status = $6, interview_date = $7, follow_up_date = $8, salary = $9, job_type = $10, notes = $11, job_url = $12, contact_person = $13, contact_email = $14, updated_at = $15
		WHERE id = $1 AND user_id = $2
	`

	app.UpdatedAt = time.Now()

	result, err := r.db.DB.ExecContext(ctx, query,
		app.ID,
		app.UserID,
		app.Company,
		app.Position,
		app.AppliedDate.Time,
		app.Status,
		nullableDate(app.InterviewDate),
		nullableDate(app.FollowUpDate),
		app.Salary,
		app.JobType,
		app.Notes,
		app.JobURL,
		app.ContactPerson,
		app.ContactEmail,
		app.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("application with id %s not found: %w", app.ID, ErrNotFound)
	}

	return nil
}

// Delete removes an application only when the given user owns it
func (r *applicationRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM applications WHERE id = $1 AND user_id = $2`

	result, err := r.db.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("application with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}
