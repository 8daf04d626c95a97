package events

import (
	"time"

	"github.com/mustakbalak/portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionInvalidated       EventType = "session_invalidated"
	EventJobApplied               EventType = "job_applied"
	EventJobDeleted               EventType = "job_deleted"
	EventProfileUpdated           EventType = "profile_updated"
	EventApplicationStatusChanged EventType = "application_status_changed"
	EventFormSubmitted            EventType = "form_submitted"
)

// Event represents a portal event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SessionInvalidatedPayload payload. Raised by the upstream response
// pipeline when any call returns HTTP 401.
type SessionInvalidatedPayload struct {
	Status int    `json:"status"`
	Path   string `json:"path"`
}

// JobAppliedPayload payload.
type JobAppliedPayload struct {
	JobID string `json:"job_id"`
}

// JobDeletedPayload payload.
type JobDeletedPayload struct {
	JobID string `json:"job_id"`
	Title string `json:"title,omitempty"`
}

// ProfileUpdatedPayload payload.
type ProfileUpdatedPayload struct {
	UserType domain.UserType `json:"user_type"`
	Changed  []string        `json:"changed,omitempty"`
}

// ApplicationStatusChangedPayload payload.
type ApplicationStatusChangedPayload struct {
	ApplicationID string                   `json:"application_id"`
	OldStatus     domain.ApplicationStatus `json:"old_status"`
	NewStatus     domain.ApplicationStatus `json:"new_status"`
}

// FormSubmittedPayload payload.
type FormSubmittedPayload struct {
	Form     string `json:"form"`
	Redirect string `json:"redirect,omitempty"`
}
