package showroom

import (
	"sort"

	"github.com/mustakbalak/portal/internal/domain"
)

// SortJobs orders a copy of jobs by the given key. Unknown keys return
// the copy unordered.
func SortJobs(jobs []domain.Job, sortKey string) []domain.Job {
	out := make([]domain.Job, len(jobs))
	copy(out, jobs)

	switch sortKey {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case SortSalaryHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Salary.Max > out[j].Salary.Max
		})
	case SortSalaryLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Salary.Min < out[j].Salary.Min
		})
	}
	return out
}
