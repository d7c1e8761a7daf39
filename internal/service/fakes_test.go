package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jobtrack/jobtrack-api/internal/domain"
	"github.com/jobtrack/jobtrack-api/internal/repository"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
		if strings.EqualFold(u.Username, user.Username) {
			return repository.ErrDuplicateUsername
		}
	}
	user.Normalize()
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.Username, username) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.User, 0, len(f.users))
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	user.Normalize()
	user.UpdatedAt = time.Now()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	u.LastLoginAt = &now
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) Count(_ context.Context, activeOnly bool) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, u := range f.users {
		if !activeOnly || u.IsActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) CountCreatedSince(_ context.Context, since time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, u := range f.users {
		if u.CreatedAt.After(since) {
			n++
		}
	}
	return n, nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*domain.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*domain.RefreshToken{}}
}

func (f *fakeTokenRepo) Create(_ context.Context, token *domain.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tokens[token.TokenHash]; ok {
		return repository.ErrDuplicateToken
	}
	token.ID = uuid.New().String()
	token.CreatedAt = time.Now()
	cp := *token
	f.tokens[token.TokenHash] = &cp
	return nil
}

func (f *fakeTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*domain.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tokens[tokenHash]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTokenRepo) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, tokenHash)
	return nil
}

func (f *fakeTokenRepo) DeleteExpired(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for hash, t := range f.tokens {
		if time.Now().After(t.ExpiresAt) {
			delete(f.tokens, hash)
		}
	}
	return nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*domain.Profile{}}
}

func (f *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[profile.UserID]; ok {
		return repository.ErrDuplicateProfile
	}
	profile.ID = uuid.New().String()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	cp := *profile
	f.profiles[profile.UserID] = &cp
	return nil
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, profile *domain.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.profiles[profile.UserID]; !ok {
		return repository.ErrNotFound
	}
	profile.UpdatedAt = time.Now()
	cp := *profile
	f.profiles[profile.UserID] = &cp
	return nil
}

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps map[string]*domain.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: map[string]*domain.Application{}}
}

func (f *fakeApplicationRepo) Create(_ context.Context, app *domain.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	app.ID = uuid.New().String()
	app.CreatedAt = time.Now()
	app.UpdatedAt = app.CreatedAt
	cp := *app
	f.apps[app.ID] = &cp
	return nil
}

func (f *fakeApplicationRepo) GetOwned(_ context.Context, id, userID string) (*domain.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok || a.UserID != userID {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeApplicationRepo) GetByID(_ context.Context, id string) (*domain.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeApplicationRepo) matches(a *domain.Application, userID, search string) bool {
	if a.UserID != userID {
		return false
	}
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(a.Company), needle) ||
		strings.Contains(strings.ToLower(a.Position), needle)
}

func (f *fakeApplicationRepo) ListByUser(_ context.Context, userID string, filter repository.ApplicationFilter) ([]domain.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Application
	for _, a := range f.apps {
		if f.matches(a, userID, filter.Search) {
			out = append(out, *a)
		}
	}
	// Newest applied first, like the real query
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].AppliedDate.Time.After(out[i].AppliedDate.Time) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	if filter.Offset >= len(out) {
		return []domain.Application{}, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeApplicationRepo) CountByUser(_ context.Context, userID, search string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, a := range f.apps {
		if f.matches(a, userID, search) {
			n++
		}
	}
	return n, nil
}

func (f *fakeApplicationRepo) ListAllByUser(_ context.Context, userID string) ([]domain.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Application{}
	for _, a := range f.apps {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) Update(_ context.Context, app *domain.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.apps[app.ID]
	if !ok || existing.UserID != app.UserID {
		return repository.ErrNotFound
	}
	app.UpdatedAt = time.Now()
	cp := *app
	f.apps[app.ID] = &cp
	return nil
}

func (f *fakeApplicationRepo) Delete(_ context.Context, id, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok || a.UserID != userID {
		return repository.ErrNotFound
	}
	delete(f.apps, id)
	return nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func newFakeAuditRepo() *fakeAuditRepo {
	return &fakeAuditRepo{}
}

func (f *fakeAuditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.ID = uuid.New().String()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	cp := *entry
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeAuditRepo) all() []*domain.AuditLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.AuditLog, len(f.entries))
	copy(out, f.entries)
	return out
}

func (f *fakeAuditRepo) filtered(filter repository.AuditLogFilter) []*domain.AuditLog {
	var out []*domain.AuditLog
	for _, e := range f.all() {
		if filter.UserID != "" && e.UserID != filter.UserID {
			continue
		}
		if filter.Action != "" && string(e.Action) != filter.Action {
			continue
		}
		if filter.StartDate != nil && e.Timestamp.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && e.Timestamp.After(*filter.EndDate) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (f *fakeAuditRepo) List(_ context.Context, filter repository.AuditLogFilter) ([]repository.AuditLogWithUser, error) {
	matched := f.filtered(filter)
	if filter.Offset >= len(matched) {
		return []repository.AuditLogWithUser{}, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	out := make([]repository.AuditLogWithUser, 0, len(matched))
	for _, e := range matched {
		out = append(out, repository.AuditLogWithUser{AuditLog: *e})
	}
	return out, nil
}

func (f *fakeAuditRepo) Count(_ context.Context, filter repository.AuditLogFilter) (int, error) {
	filter.Limit = 0
	filter.Offset = 0
	return len(f.filtered(filter)), nil
}

func (f *fakeAuditRepo) CountByUser(_ context.Context, userID string) (int, error) {
	return len(f.filtered(repository.AuditLogFilter{UserID: userID})), nil
}

func (f *fakeAuditRepo) CountByActionSince(_ context.Context, action domain.AuditAction, since time.Time) (int, error) {
	n := 0
	for _, e := range f.all() {
		if e.Action == action && e.Timestamp.After(since) {
			n++
		}
	}
	return n, nil
}

func (f *fakeAuditRepo) TopUsers(_ context.Context, limit int) ([]repository.UserActivity, error) {
	counts := map[string]int{}
	for _, e := range f.all() {
		counts[e.UserID]++
	}
	out := []repository.UserActivity{}
	for id, n := range counts {
		if len(out) >= limit {
			break
		}
		out = append(out, repository.UserActivity{Username: id, ActivityCount: n})
	}
	return out, nil
}

func (f *fakeAuditRepo) Recent(ctx context.Context, limit int) ([]repository.AuditLogWithUser, error) {
	return f.List(ctx, repository.AuditLogFilter{Limit: limit})
}

func (f *fakeAuditRepo) ActionBreakdown(_ context.Context) ([]repository.ActionCount, error) {
	counts := map[string]int{}
	for _, e := range f.all() {
		counts[string(e.Action)]++
	}
	out := []repository.ActionCount{}
	for action, n := range counts {
		out = append(out, repository.ActionCount{Action: action, Count: n})
	}
	return out, nil
}

type fakeBlacklist struct {
	mu     sync.Mutex
	tokens map[string]struct{}
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{tokens: map[string]struct{}{}}
}

func (f *fakeBlacklist) Add(_ context.Context, token string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = struct{}{}
	return nil
}

func (f *fakeBlacklist) Contains(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.tokens[token]
	return ok, nil
}
