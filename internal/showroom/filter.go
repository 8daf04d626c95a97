// Package showroom derives the displayed job list from a fetched
// snapshot, a draft filter set and an applied filter set, without ever
// mutating the source list.
package showroom

import (
	"strconv"
	"strings"

	"github.com/mustakbalak/portal/internal/domain"
)

// SortKey values accepted by SortJobs.
const (
	SortNewest     = "newest"
	SortOldest     = "oldest"
	SortSalaryHigh = "salaryHigh"
	SortSalaryLow  = "salaryLow"
)

// Filters is one filter set. Empty fields match everything. SalaryRange
// is the "lo-hi" encoded range; a job matches only when its advertised
// [min,max] lies fully inside it.
type Filters struct {
	Country     string `json:"country"`
	JobType     string `json:"jobType"`
	Experience  string `json:"experience"`
	Education   string `json:"education"`
	SalaryRange string `json:"salaryRange"`
	SortBy      string `json:"sortBy"`
}

// DefaultFilters returns the cleared filter set.
func DefaultFilters() Filters {
	return Filters{SortBy: SortNewest}
}

// ApplyFilters returns the subset of jobs matched by every non-empty
// predicate. The input slice is never modified.
func ApplyFilters(jobs []domain.Job, filters Filters) []domain.Job {
	lo, hi, hasSalary := parseSalaryRange(filters.SalaryRange)

	out := make([]domain.Job, 0, len(jobs))
	for _, job := range jobs {
		if filters.Country != "" && !strings.EqualFold(job.Location, filters.Country) {
			continue
		}
		if filters.JobType != "" && !strings.EqualFold(job.Type, filters.JobType) {
			continue
		}
		if filters.Experience != "" && job.Experience != filters.Experience {
			continue
		}
		if filters.Education != "" && job.Education != filters.Education {
			continue
		}
		if hasSalary && (job.Salary.Min < lo || job.Salary.Max > hi) {
			continue
		}
		out = append(out, job)
	}
	return out
}

// parseSalaryRange decodes "lo-hi". Malformed ranges disable the
// predicate rather than filtering everything out.
func parseSalaryRange(value string) (lo, hi int, ok bool) {
	if value == "" {
		return 0, 0, false
	}
	parts := strings.SplitN(value, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lo, errLo := strconv.Atoi(strings.TrimSpace(parts[0]))
	hi, errHi := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errLo != nil || errHi != nil {
		return 0, 0, false
	}
	return lo, hi, true
}
