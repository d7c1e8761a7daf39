package domain

import "time"

// ApplicationStatus is the stage a job application is in
type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "Applied"
	StatusInterview ApplicationStatus = "Interview"
	StatusRejected  ApplicationStatus = "Rejected"
	StatusAccepted  ApplicationStatus = "Accepted"
)

// ApplicationStatuses lists every enumerated status, in display order
var ApplicationStatuses = []ApplicationStatus{
	StatusApplied,
	StatusInterview,
	StatusRejected,
	StatusAccepted,
}

// ValidApplicationStatus reports whether the value is an enumerated status
func ValidApplicationStatus(s string) bool {
	for _, v := range ApplicationStatuses {
		if s == string(v) {
			return true
		}
	}
	return false
}

// JobType is the employment kind of a job application
type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeInternship JobType = "Internship"
)

// JobTypes lists every enumerated job type, in display order
var JobTypes = []JobType{
	JobTypeFullTime,
	JobTypePartTime,
	JobTypeContract,
	JobTypeInternship,
}

// ValidJobType reports whether the value is an enumerated job type
func ValidJobType(s string) bool {
	for _, v := range JobTypes {
		if s == string(v) {
			return true
		}
	}
	return false
}

// Application represents a tracked job application owned by a single user
type Application struct {
	ID            string            `json:"id" db:"id"`
	UserID        string            `json:"-" db:"user_id"`
	Company       string            `json:"company" db:"company"`
	Position      string            `json:"position" db:"position"`
	AppliedDate   Date              `json:"appliedDate" db:"applied_date"`
	Status        ApplicationStatus `json:"status" db:"status"`
	InterviewDate *Date             `json:"interviewDate" db:"interview_date"`
	FollowUpDate  *Date             `json:"followUpDate" db:"follow_up_date"`
	Salary        *int              `json:"salary" db:"salary"`
	JobType       JobType           `json:"jobType" db:"job_type"`
	Notes         string            `json:"notes" db:"notes"`
	JobURL        string            `json:"jobUrl" db:"job_url"`
	ContactPerson string            `json:"contactPerson" db:"contact_person"`
	ContactEmail  string            `json:"contactEmail" db:"contact_email"`
	CreatedAt     time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time         `json:"updatedAt" db:"updated_at"`
}
