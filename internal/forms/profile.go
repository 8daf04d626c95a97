package forms

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mustakbalak/portal/internal/domain"
	"github.com/mustakbalak/portal/internal/events"
	"github.com/mustakbalak/portal/internal/upstream"
	"github.com/mustakbalak/portal/internal/wizard"
)

func dateString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// profileSeed flattens the fetched job-seeker profile into wizard
// fields so edits diff against the server's current state.
func profileSeed(record *upstream.ProfileRecord) wizard.Fields {
	education := make([]wizard.Entry, 0, len(record.Education))
	for _, e := range record.Education {
		education = append(education, wizard.Entry{
			"degree":         e.Degree,
			"field":          e.Field,
			"institution":    e.Institution,
			"graduationDate": dateString(e.GraduationDate),
			"description":    e.Description,
		})
	}
	experience := make([]wizard.Entry, 0, len(record.Experience))
	for _, e := range record.Experience {
		experience = append(experience, wizard.Entry{
			"title":       e.Title,
			"company":     e.Company,
			"startDate":   dateString(e.StartDate),
			"endDate":     dateString(e.EndDate),
			"current":     e.Current,
			"description": e.Description,
		})
	}
	certificates := make([]wizard.Entry, 0, len(record.Certificates))
	for _, c := range record.Certificates {
		certificates = append(certificates, wizard.Entry{
			"name":        c.Name,
			"issuer":      c.Issuer,
			"date":        dateString(c.Date),
			"description": c.Description,
			"type":        c.Type,
		})
	}
	fields := append([]string{}, record.Fields...)

	return wizard.Fields{
		"nationality":     record.Nationality,
		"DOB":             dateString(record.DOB),
		"education":       education,
		"experience":      experience,
		"certificates":    certificates,
		"fields":          fields,
		"currentPosition": record.JobSeekerProfile.CurrentPosition,
		"company":         record.JobSeekerProfile.Company,
	}
}

func (m *Manager) startCompleteProfile(ctx context.Context, sid string) (*wizard.Wizard, error) {
	auth, sess, err := m.authFor(ctx, sid)
	if err != nil {
		return nil, err
	}
	record, err := m.deps.Upstream.GetProfile(ctx, auth)
	if err != nil {
		return nil, err
	}
	return wizard.NewSeeded(m.completeProfileConfig(sid, auth, sess.User.UserType), profileSeed(record)), nil
}

// completeProfileConfig is the six-step job-seeker profile form. It is
// diff-only: submission sends changed fields and rejects a no-op edit.
func (m *Manager) completeProfileConfig(sid string, auth upstream.Auth, userType domain.UserType) wizard.Config {
	return wizard.Config{
		Name: FormCompleteProfile,
		Steps: []wizard.StepDef{
			{
				Name:           "Personal Information",
				RequiredFields: []string{"nationality", "DOB"},
			},
			{
				Name: "Education",
				RequiredEntryFields: map[string][]string{
					"education": {"degree", "field", "institution"},
				},
			},
			{
				Name: "Work Experience",
				RequiredEntryFields: map[string][]string{
					"experience": {"title", "company", "startDate"},
				},
			},
			{
				Name: "Certificates",
				RequiredEntryFields: map[string][]string{
					"certificates": {"name"},
				},
			},
			{Name: "Current Position"},
			{Name: "Fields of Interest"},
		},
		Templates: map[string]wizard.Entry{
			"education": {
				"degree": "", "field": "", "institution": "",
				"graduationDate": "", "description": "",
			},
			"experience": {
				"title": "", "company": "", "startDate": "",
				"endDate": "", "current": false, "description": "",
			},
			"certificates": {
				"name": "", "issuer": "", "date": "",
				"description": "", "type": "",
			},
		},
		FieldGuards: map[string]wizard.FieldGuard{
			"DOB":                  minimumAgeGuard,
			"experience.startDate": startDateGuard,
			"experience.endDate":   endDateGuard,
		},
		DiffOnly: true,
		Submit: func(ctx context.Context, payload wizard.Fields) (string, error) {
			if err := m.deps.Upstream.CompleteProfile(ctx, auth, payload); err != nil {
				return "", err
			}
			m.publishProfileUpdated(ctx, sid, userType, payload)
			return "/profile", nil
		},
	}
}

func (m *Manager) startHiringManagerCompleteProfile(ctx context.Context, sid string) (*wizard.Wizard, error) {
	auth, sess, err := m.authFor(ctx, sid)
	if err != nil {
		return nil, err
	}
	profile, err := m.deps.Upstream.GetHiringManagerProfile(ctx, auth)
	if err != nil {
		return nil, err
	}
	seed := wizard.Fields{
		"currentPosition": profile.CurrentPosition,
		"company":         profile.Company,
		"department":      profile.Department,
		"role":            profile.Role,
		"companySize":     profile.CompanySize,
		"industry":        profile.Industry,
	}
	return wizard.NewSeeded(m.hiringManagerCompleteProfileConfig(sid, auth, sess.User.UserType), seed), nil
}

// hiringManagerCompleteProfileConfig is the three-step hiring-manager
// profile form. Submission sends the full record.
func (m *Manager) hiringManagerCompleteProfileConfig(sid string, auth upstream.Auth, userType domain.UserType) wizard.Config {
	return wizard.Config{
		Name: FormHiringManagerCompleteProfile,
		Steps: []wizard.StepDef{
			{
				Name:           "Personal Information",
				RequiredFields: []string{"currentPosition"},
			},
			{
				Name:           "Company Details",
				RequiredFields: []string{"company", "department"},
			},
			{
				Name:           "Company Profile",
				RequiredFields: []string{"companySize", "industry"},
			},
		},
		Submit: func(ctx context.Context, payload wizard.Fields) (string, error) {
			if err := m.deps.Upstream.CompleteHiringManagerProfile(ctx, auth, payload); err != nil {
				return "", err
			}
			m.publishProfileUpdated(ctx, sid, userType, payload)
			return "/hiring-manager/profile", nil
		},
	}
}

func (m *Manager) publishProfileUpdated(ctx context.Context, sid string, userType domain.UserType, payload wizard.Fields) {
	changed := make([]string, 0, len(payload))
	for k := range payload {
		changed = append(changed, k)
	}
	_ = m.deps.Dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventProfileUpdated,
		SessionID: sid,
		Timestamp: time.Now(),
		Payload:   events.ProfileUpdatedPayload{UserType: userType, Changed: changed},
	})
}
