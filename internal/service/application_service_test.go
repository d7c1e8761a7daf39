package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrack/jobtrack-api/internal/domain"
	"github.com/jobtrack/jobtrack-api/internal/dto"
	"github.com/jobtrack/jobtrack-api/internal/repository"
)

func newApplicationFixture() (ApplicationService, *fakeApplicationRepo) {
	repo := newFakeApplicationRepo()
	return NewApplicationService(repo), repo
}

func createApplication(t *testing.T, svc ApplicationService, userID, company string) *domain.Application {
	t.Helper()
	app, err := svc.Create(context.Background(), userID, &dto.CreateApplicationRequest{
		Company:     company,
		Position:    "Engineer",
		AppliedDate: mustDate(t, "2026-08-01"),
	})
	require.NoError(t, err)
	return app
}

func TestApplicationCreateDefaults(t *testing.T) {
	svc, _ := newApplicationFixture()

	app := createApplication(t, svc, "user-1", "Acme")

	assert.NotEmpty(t, app.ID)
	assert.Equal(t, "user-1", app.UserID)
	assert.Equal(t, domain.StatusApplied, app.Status)
	assert.Equal(t, domain.JobTypeFullTime, app.JobType)
}

func TestApplicationCreateInvalidEnums(t *testing.T) {
	svc, _ := newApplicationFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, "user-1", &dto.CreateApplicationRequest{
		Company:     "Acme",
		Position:    "Engineer",
		AppliedDate: mustDate(t, "2026-08-01"),
		Status:      "Pending",
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	_, err = svc.Create(ctx, "user-1", &dto.CreateApplicationRequest{
		Company:     "Acme",
		Position:    "Engineer",
		AppliedDate: mustDate(t, "2026-08-01"),
		JobType:     "Freelance",
	})
	require.ErrorAs(t, err, &ve)
}

func TestApplicationOwnershipMaskedAsNotFound(t *testing.T) {
	svc, _ := newApplicationFixture()
	ctx := context.Background()

	app := createApplication(t, svc, "user-a", "Acme")

	_, err := svc.Get(ctx, "user-b", app.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Update(ctx, "user-b", app.ID, &dto.UpdateApplicationRequest{})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = svc.Delete(ctx, "user-b", app.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Owner still sees it
	got, err := svc.Get(ctx, "user-a", app.ID)
	require.NoError(t, err)
	assert.Equal(t, app.ID, got.ID)
}

func TestApplicationPartialUpdate(t *testing.T) {
	svc, _ := newApplicationFixture()
	ctx := context.Background()

	app := createApplication(t, svc, "user-1", "Acme")

	status := string(domain.StatusInterview)
	interview := mustDate(t, "2026-09-01")
	updated, err := svc.Update(ctx, "user-1", app.ID, &dto.UpdateApplicationRequest{
		Status:        &status,
		InterviewDate: &interview,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusInterview, updated.Status)
	require.NotNil(t, updated.InterviewDate)
	assert.Equal(t, "2026-09-01", updated.InterviewDate.String())
	// Untouched fields survive
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, "Engineer", updated.Position)
}

func TestApplicationUpdateInvalidStatusLeavesRecord(t *testing.T) {
	svc, _ := newApplicationFixture()
	ctx := context.Background()

	app := createApplication(t, svc, "user-1", "Acme")

	bad := "BOGUS"
	_, err := svc.Update(ctx, "user-1", app.ID, &dto.UpdateApplicationRequest{Status: &bad})
	require.Error(t, err)

	got, err := svc.Get(ctx, "user-1", app.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApplied, got.Status)
}

func TestApplicationListPagination(t *testing.T) {
	svc, _ := newApplicationFixture()
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		createApplication(t, svc, "user-1", "Acme")
	}

	// Default page size is 5
	page1, err := svc.List(ctx, "user-1", "", 1, 0)
	require.NoError(t, err)
	assert.Len(t, page1.Results, 5)
	assert.Equal(t, 12, page1.Pagination.Total)
	assert.Equal(t, 3, page1.Pagination.TotalPages)

	page3, err := svc.List(ctx, "user-1", "", 3, 0)
	require.NoError(t, err)
	assert.Len(t, page3.Results, 2)

	// Requested size caps at MaxPageSize
	big, err := svc.List(ctx, "user-1", "", 1, 500)
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, big.Pagination.PageSize)
	assert.Len(t, big.Results, 12)
}

func TestApplicationListSearch(t *testing.T) {
	svc, _ := newApplicationFixture()
	ctx := context.Background()

	createApplication(t, svc, "user-1", "Acme Corp")
	createApplication(t, svc, "user-1", "Globex")

	result, err := svc.List(ctx, "user-1", "acme", 1, 0)
	require.NoError(t, err)
	require.Len(t, result.Results, 1)
	assert.Equal(t, "Acme Corp", result.Results[0].Company)
	assert.Equal(t, 1, result.Pagination.Total)
}

func TestApplicationStatsAndAnalytics(t *testing.T) {
	svc, repo := newApplicationFixture()
	ctx := context.Background()

	app := createApplication(t, svc, "user-1", "Acme")
	status := string(domain.StatusAccepted)
	_, err := svc.Update(ctx, "user-1", app.ID, &dto.UpdateApplicationRequest{Status: &status})
	require.NoError(t, err)
	createApplication(t, svc, "user-1", "Globex")
	createApplication(t, svc, "user-2", "Initech")

	stats, err := svc.Stats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalApplications)
	assert.Equal(t, 1, stats.AcceptedApplications)

	analytics, err := svc.Analytics(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, analytics.StatusBreakdown[string(domain.StatusAccepted)].Count)
	assert.Equal(t, 50.0, analytics.StatusBreakdown[string(domain.StatusAccepted)].Percent)

	// user-2's data never leaks into user-1's aggregates
	all, err := repo.ListAllByUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestClampPageSize(t *testing.T) {
	assert.Equal(t, DefaultPageSize, ClampPageSize(0, DefaultPageSize))
	assert.Equal(t, DefaultPageSize, ClampPageSize(-1, DefaultPageSize))
	assert.Equal(t, 20, ClampPageSize(20, DefaultPageSize))
	assert.Equal(t, MaxPageSize, ClampPageSize(101, DefaultPageSize))
	assert.Equal(t, AuditDefaultPageSize, ClampPageSize(0, AuditDefaultPageSize))
}
