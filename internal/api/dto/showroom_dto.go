package dto

import (
	"github.com/mustakbalak/portal/internal/domain"
	"github.com/mustakbalak/portal/internal/showroom"
)

// FiltersRequest replaces the session's draft filter set.
type FiltersRequest struct {
	Country     string `json:"country"`
	JobType     string `json:"jobType"`
	Experience  string `json:"experience"`
	Education   string `json:"education"`
	SalaryRange string `json:"salaryRange"`
	SortBy      string `json:"sortBy"`
}

// Filters converts the request into the showroom filter set.
func (r FiltersRequest) Filters() showroom.Filters {
	return showroom.Filters{
		Country:     r.Country,
		JobType:     r.JobType,
		Experience:  r.Experience,
		Education:   r.Education,
		SalaryRange: r.SalaryRange,
		SortBy:      r.SortBy,
	}
}

// FilterStateResponse exposes both filter sets.
type FilterStateResponse struct {
	Draft   showroom.Filters `json:"draft"`
	Applied showroom.Filters `json:"applied"`
}

// ShowroomResponse is the filtered, sorted job list plus the state that
// produced it.
type ShowroomResponse struct {
	Jobs        []domain.Job     `json:"jobs"`
	Total       int              `json:"total"`
	Applied     showroom.Filters `json:"applied"`
	AppliedJobs []string         `json:"appliedJobs,omitempty"`
}

// StatusUpdateRequest changes an application's status.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}
