package domain

import "time"

// JobStatus represents lifecycle states for a posted job.
type JobStatus string

const (
	JobStatusActive JobStatus = "Active"
	JobStatusClosed JobStatus = "Closed"
	JobStatusDraft  JobStatus = "Draft"
)

// Salary is the advertised range for a job.
type Salary struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

// Job is the posting shape mirrored from the upstream backend. The portal
// never owns these records; it caches the latest fetched snapshot.
type Job struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Company          string    `json:"company"`
	Location         string    `json:"location"`
	Type             string    `json:"type"`
	Description      string    `json:"description"`
	Requirements     []string  `json:"requirements"`
	Responsibilities []string  `json:"responsibilities"`
	Benefits         []string  `json:"benefits"`
	Skills           []string  `json:"skills"`
	Salary           Salary    `json:"salary"`
	Experience       string    `json:"experience"`
	Education        string    `json:"education"`
	Status           JobStatus `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}
