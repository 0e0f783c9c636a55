package domain

import "time"

// ApplicationStatus represents the review state of a driver application.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusDenied   ApplicationStatus = "denied"
)

// ValidApplicationStatus reports whether s is a known application status.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusApproved, ApplicationStatusDenied:
		return true
	default:
		return false
	}
}

// DriverApplication is a passenger's request to become a driver.
// Note holds the reviewer's comment, if any.
type DriverApplication struct {
	ID          string
	ApplicantID string
	Status      ApplicationStatus
	Note        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
