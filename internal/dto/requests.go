package dto

import "github.com/jobtrack/jobtrack-api/internal/domain"

// RegisterRequest represents a registration request.
// Any caller-supplied role is ignored; new accounts always start as USER.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=150"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LogoutRequest optionally carries the refresh token in the body.
// When absent the refresh cookie is used instead.
type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

// CreateProfileRequest represents a profile creation request
type CreateProfileRequest struct {
	Bio       string       `json:"bio" binding:"max=500"`
	Location  string       `json:"location" binding:"max=100"`
	BirthDate *domain.Date `json:"birth_date"`
	Avatar    *string      `json:"avatar"`
}

// UpdateProfileRequest represents a partial profile update.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Bio       *string      `json:"bio" binding:"omitempty,max=500"`
	Location  *string      `json:"location" binding:"omitempty,max=100"`
	BirthDate *domain.Date `json:"birth_date"`
	Avatar    *string      `json:"avatar"`
}

// CreateApplicationRequest represents an application creation request
type CreateApplicationRequest struct {
	Company       string       `json:"company" binding:"required,max=200"`
	Position      string       `json:"position" binding:"required,max=200"`
	AppliedDate   domain.Date  `json:"appliedDate" binding:"required"`
	Status        string       `json:"status"`
	InterviewDate *domain.Date `json:"interviewDate"`
	FollowUpDate  *domain.Date `json:"followUpDate"`
	Salary        *int         `json:"salary"`
	JobType       string       `json:"jobType"`
	Notes         string       `json:"notes"`
	JobURL        string       `json:"jobUrl" binding:"omitempty,url"`
	ContactPerson string       `json:"contactPerson" binding:"max=200"`
	ContactEmail  string       `json:"contactEmail" binding:"omitempty,email"`
}

// UpdateApplicationRequest represents a partial application update.
// Nil fields are left unchanged.
type UpdateApplicationRequest struct {
	Company       *string      `json:"company" binding:"omitempty,max=200"`
	Position      *string      `json:"position" binding:"omitempty,max=200"`
	AppliedDate   *domain.Date `json:"appliedDate"`
	Status        *string      `json:"status"`
	InterviewDate *domain.Date `json:"interviewDate"`
	FollowUpDate  *domain.Date `json:"followUpDate"`
	Salary        *int         `json:"salary"`
	JobType       *string      `json:"jobType"`
	Notes         *string      `json:"notes"`
	JobURL        *string      `json:"jobUrl" binding:"omitempty,url"`
	ContactPerson *string      `json:"contactPerson" binding:"omitempty,max=200"`
	ContactEmail  *string      `json:"contactEmail" binding:"omitempty,email"`
}

// SetRoleRequest represents an admin role change request
type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// AdminCreateUserRequest represents an admin user creation request
type AdminCreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=150"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
	IsActive *bool  `json:"is_active"`
}

// AdminUpdateUserRequest represents a partial admin user update
type AdminUpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=150"`
	Email    *string `json:"email" binding:"omitempty,email"`
	IsActive *bool   `json:"is_active"`
	Role     *string `json:"role"`
}
