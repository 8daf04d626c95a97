package forms

import (
	"context"
	"strconv"
	"strings"

	"github.com/mustakbalak/portal/internal/domain"
	"github.com/mustakbalak/portal/internal/upstream"
	"github.com/mustakbalak/portal/internal/wizard"
	apperrors "github.com/mustakbalak/portal/pkg/util"
)

func jobDefaults() wizard.Fields {
	return wizard.Fields{
		"requirements":     []string{""},
		"responsibilities": []string{""},
		"benefits":         []string{""},
		"skills":           []string{""},
		"currency":         "AED",
		"status":           string(domain.JobStatusActive),
	}
}

// jobSeed flattens a fetched job into wizard fields for edit mode.
func jobSeed(job *domain.Job) wizard.Fields {
	return wizard.Fields{
		"title":            job.Title,
		"company":          job.Company,
		"location":         job.Location,
		"type":             job.Type,
		"description":      job.Description,
		"requirements":     orBlank(job.Requirements),
		"responsibilities": orBlank(job.Responsibilities),
		"benefits":         orBlank(job.Benefits),
		"skills":           orBlank(job.Skills),
		"salaryMin":        strconv.Itoa(job.Salary.Min),
		"salaryMax":        strconv.Itoa(job.Salary.Max),
		"currency":         job.Salary.Currency,
		"experience":       job.Experience,
		"education":        job.Education,
		"status":           string(job.Status),
	}
}

// orBlank keeps one editable blank row for empty list sections.
func orBlank(list []string) []string {
	if len(list) == 0 {
		return []string{""}
	}
	return append([]string{}, list...)
}

func jobSteps() []wizard.StepDef {
	return []wizard.StepDef{
		{
			Name:           "Basic Information",
			RequiredFields: []string{"title", "company", "location", "type"},
		},
		{
			Name:           "Job Details",
			RequiredFields: []string{"description"},
		},
		{
			Name:          "Requirements & Responsibilities",
			RequiredLists: []string{"requirements", "responsibilities"},
		},
		{
			Name:           "Salary & Skills",
			RequiredFields: []string{"salaryMin", "salaryMax", "experience", "education"},
			RequiredLists:  []string{"skills"},
			Validate:       validateSalaryBounds,
		},
	}
}

// validateSalaryBounds checks the advertised range is numeric and not
// inverted before it is sent.
func validateSalaryBounds(fields wizard.Fields) error {
	min, okMin := intField(fields, "salaryMin")
	max, okMax := intField(fields, "salaryMax")
	if !okMin || !okMax {
		return apperrors.NewValidationError("salary must be a number", nil)
	}
	if min > max {
		return apperrors.NewValidationError("minimum salary cannot exceed maximum salary", nil)
	}
	return nil
}

func (m *Manager) startJobCreate(ctx context.Context, sid string) (*wizard.Wizard, error) {
	auth, _, err := m.authFor(ctx, sid)
	if err != nil {
		return nil, err
	}
	return wizard.New(m.jobCreateConfig(auth), jobDefaults()), nil
}

// jobCreateConfig is the four-step posting form for hiring managers.
func (m *Manager) jobCreateConfig(auth upstream.Auth) wizard.Config {
	return wizard.Config{
		Name:  FormJobCreate,
		Steps: jobSteps(),
		Submit: func(ctx context.Context, payload wizard.Fields) (string, error) {
			if _, err := m.deps.Upstream.CreateJob(ctx, auth, jobPayload(payload)); err != nil {
				return "", err
			}
			return "/hiring-manager/jobs", nil
		},
	}
}

func (m *Manager) startJobEdit(ctx context.Context, sid, jobID string) (*wizard.Wizard, error) {
	if strings.TrimSpace(jobID) == "" {
		return nil, apperrors.NewValidationError("a job id is required to edit", nil)
	}
	auth, _, err := m.authFor(ctx, sid)
	if err != nil {
		return nil, err
	}
	job, err := m.deps.Upstream.GetJob(ctx, auth, jobID)
	if err != nil {
		return nil, err
	}
	return wizard.NewSeeded(m.jobEditConfig(auth, jobID), jobSeed(job)), nil
}

// jobEditConfig reuses the posting steps in edit mode. Submission sends
// the full record, not a diff.
func (m *Manager) jobEditConfig(auth upstream.Auth, jobID string) wizard.Config {
	return wizard.Config{
		Name:  FormJobEdit,
		Steps: jobSteps(),
		Submit: func(ctx context.Context, payload wizard.Fields) (string, error) {
			if _, err := m.deps.Upstream.UpdateJob(ctx, auth, jobID, jobPayload(payload)); err != nil {
				return "", err
			}
			return "/hiring-manager/jobs", nil
		},
	}
}

// jobPayload assembles the nested record the backend expects from the
// flat wizard fields.
func jobPayload(fields wizard.Fields) map[string]any {
	min, _ := intField(fields, "salaryMin")
	max, _ := intField(fields, "salaryMax")
	return map[string]any{
		"title":            str(fields, "title"),
		"company":          str(fields, "company"),
		"location":         str(fields, "location"),
		"type":             str(fields, "type"),
		"description":      str(fields, "description"),
		"requirements":     listField(fields, "requirements"),
		"responsibilities": listField(fields, "responsibilities"),
		"benefits":         listField(fields, "benefits"),
		"skills":           listField(fields, "skills"),
		"salary": map[string]any{
			"min":      min,
			"max":      max,
			"currency": str(fields, "currency"),
		},
		"experience": str(fields, "experience"),
		"education":  str(fields, "education"),
		"status":     str(fields, "status"),
	}
}

// intField reads a numeric field regardless of whether it arrived as a
// JSON number or a string.
func intField(fields wizard.Fields, key string) (int, bool) {
	switch v := fields[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// listField returns the section's non-blank entries.
func listField(fields wizard.Fields, key string) []string {
	var raw []string
	switch v := fields[key].(type) {
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
