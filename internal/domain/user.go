package domain

import "time"

// Role is the access level of a user account
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// ValidRole reports whether the given value is one of the enumerated roles
func ValidRole(r string) bool {
	return r == string(RoleAdmin) || r == string(RoleUser)
}

// User represents a user account in the system
type User struct {
	ID           string     `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         Role       `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	IsSuperuser  bool       `json:"-" db:"is_superuser"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at" db:"last_login_at"`
}

// IsAdmin reports whether the user carries the ADMIN role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Normalize enforces account invariants before a save.
// A superuser account always carries the ADMIN role.
func (u *User) Normalize() {
	if u.IsSuperuser && u.Role != RoleAdmin {
		u.Role = RoleAdmin
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
}

// RefreshToken represents a persisted refresh token
type RefreshToken struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	TokenHash string    `json:"-" db:"token_hash"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	IPAddress *string   `json:"ip_address" db:"ip_address"`
}
