package repository

import (
	"github.com/jobtrack/jobtrack-api/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User        UserRepository
	Token       TokenRepository
	Profile     ProfileRepository
	Application ApplicationRepository
	Audit       AuditLogRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Token:       NewTokenRepository(db),
		Profile:     NewProfileRepository(db),
		Application: NewApplicationRepository(db),
		Audit:       NewAuditLogRepository(db),
	}
}
