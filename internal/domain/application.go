package domain

import (
	"strings"
	"time"
)

// ApplicationStatus enumerates upstream application states.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "Pending"
	ApplicationStatusReviewed ApplicationStatus = "Reviewed"
	ApplicationStatusAccepted ApplicationStatus = "Accepted"
	ApplicationStatusRejected ApplicationStatus = "Rejected"
)

// Valid reports whether the status is one of the known states.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	default:
		return false
	}
}

// ParseApplicationStatus matches a status value case-insensitively, the
// way the list filters compare it.
func ParseApplicationStatus(value string) (ApplicationStatus, bool) {
	for _, status := range []ApplicationStatus{
		ApplicationStatusPending, ApplicationStatusReviewed, ApplicationStatusAccepted, ApplicationStatusRejected,
	} {
		if strings.EqualFold(value, string(status)) {
			return status, true
		}
	}
	return "", false
}

// Application is a job application record mirrored from the backend.
type Application struct {
	ID        string            `json:"id"`
	JobID     string            `json:"jobId"`
	Job       *Job              `json:"job,omitempty"`
	Applicant *User             `json:"applicant,omitempty"`
	Status    ApplicationStatus `json:"status"`
	AppliedAt time.Time         `json:"appliedAt"`
}
