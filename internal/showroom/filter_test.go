package showroom

import (
	"testing"
	"time"

	"github.com/mustakbalak/portal/internal/domain"
)

func sampleJobs() []domain.Job {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	return []domain.Job{
		{
			ID:         "qa",
			Title:      "Engineer",
			Location:   "Qatar",
			Type:       "Full-time",
			Experience: "Mid",
			Education:  "Bachelor",
			Salary:     domain.Salary{Min: 40000, Max: 90000},
			CreatedAt:  base,
		},
		{
			ID:         "ae",
			Title:      "Analyst",
			Location:   "UAE",
			Type:       "Part-time",
			Experience: "Senior",
			Education:  "Master",
			Salary:     domain.Salary{Min: 60000, Max: 95000},
			CreatedAt:  base.Add(48 * time.Hour),
		},
		{
			ID:         "kw",
			Title:      "Designer",
			Location:   "Kuwait",
			Type:       "Full-time",
			Experience: "Junior",
			Education:  "Bachelor",
			Salary:     domain.Salary{Min: 55000, Max: 80000},
			CreatedAt:  base.Add(24 * time.Hour),
		},
	}
}

func ids(jobs []domain.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, job.ID)
	}
	return out
}

func TestApplyFiltersSalaryContainment(t *testing.T) {
	// The advertised range must lie fully inside the filter range, so a
	// 40000-90000 job does not match a 50000-100000 filter.
	got := ApplyFilters(sampleJobs(), Filters{SalaryRange: "50000-100000"})
	if len(got) != 2 {
		t.Fatalf("expected 2 jobs, got %v", ids(got))
	}
	for _, job := range got {
		if job.ID == "qa" {
			t.Fatal("expected the 40000-90000 job to be excluded")
		}
	}
}

func TestApplyFiltersMalformedSalaryRangeMatchesAll(t *testing.T) {
	got := ApplyFilters(sampleJobs(), Filters{SalaryRange: "lots"})
	if len(got) != 3 {
		t.Fatalf("expected malformed range to be ignored, got %v", ids(got))
	}
}

func TestApplyFiltersByCountryAndType(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{"country is case-insensitive", Filters{Country: "qatar"}, []string{"qa"}},
		{"job type", Filters{JobType: "Full-time"}, []string{"qa", "kw"}},
		{"experience exact", Filters{Experience: "Senior"}, []string{"ae"}},
		{"education exact", Filters{Education: "Bachelor"}, []string{"qa", "kw"}},
		{"combined", Filters{JobType: "Full-time", Education: "Bachelor", Country: "Kuwait"}, []string{"kw"}},
		{"empty matches all", Filters{}, []string{"qa", "ae", "kw"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(ApplyFilters(sampleJobs(), tc.filters))
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestApplyFiltersDoesNotMutateInput(t *testing.T) {
	jobs := sampleJobs()
	_ = ApplyFilters(jobs, Filters{Country: "Qatar"})
	if len(jobs) != 3 {
		t.Fatalf("input slice modified, got %d jobs", len(jobs))
	}
}

func TestSortJobs(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{SortNewest, []string{"ae", "kw", "qa"}},
		{SortOldest, []string{"qa", "kw", "ae"}},
		{SortSalaryHigh, []string{"ae", "qa", "kw"}},
		{SortSalaryLow, []string{"qa", "kw", "ae"}},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			got := ids(SortJobs(sampleJobs(), tc.key))
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("key %s: expected %v, got %v", tc.key, tc.want, got)
				}
			}
		})
	}
}

func TestDraftDoesNotAffectAppliedUntilApply(t *testing.T) {
	m := NewStateManager()

	state := m.SetDraft("sid", Filters{Country: "Qatar"})
	if state.Applied.Country != "" {
		t.Fatal("expected applied set untouched by a draft edit")
	}

	state = m.Apply("sid")
	if state.Applied.Country != "Qatar" {
		t.Fatalf("expected applied country Qatar, got %q", state.Applied.Country)
	}

	state = m.Reset("sid")
	if state.Draft.Country != "" || state.Applied.Country != "" {
		t.Fatal("expected reset to clear both sets")
	}
	if state.Draft.SortBy != SortNewest || state.Applied.SortBy != SortNewest {
		t.Fatal("expected reset to restore the default sort")
	}
}

func TestSetDraftDefaultsSortKey(t *testing.T) {
	m := NewStateManager()
	state := m.SetDraft("sid", Filters{})
	if state.Draft.SortBy != SortNewest {
		t.Fatalf("expected default sort, got %q", state.Draft.SortBy)
	}
}
