package domain

import "encoding/json"

// UserType differentiates the two portal roles.
type UserType string

const (
	UserTypeJobSeeker     UserType = "job_seeker"
	UserTypeHiringManager UserType = "hiring_manager"
)

// Valid reports whether the value is one of the known roles.
func (t UserType) Valid() bool {
	return t == UserTypeJobSeeker || t == UserTypeHiringManager
}

// User is the identity snapshot cached alongside the bearer token.
// It mirrors the shape returned by the upstream auth endpoints.
type User struct {
	ID              string   `json:"id"`
	Username        string   `json:"username"`
	FullName        string   `json:"fullName"`
	Email           string   `json:"email"`
	UserType        UserType `json:"userType"`
	HasCertificates bool     `json:"hasCertificates"`
	HasExperience   bool     `json:"hasExperience"`
}

// UnmarshalJSON accepts both shapes of the user blob. The upstream auth
// endpoints carry certificate and experience arrays on the user object;
// a cached snapshot carries the derived booleans. Non-empty arrays set
// the flags, the booleans pass through unchanged.
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	aux := struct {
		*plain
		Certificate  []json.RawMessage `json:"certificate"`
		Certificates []json.RawMessage `json:"certificates"`
		Experience   []json.RawMessage `json:"experience"`
	}{plain: (*plain)(u)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Certificate) > 0 || len(aux.Certificates) > 0 {
		u.HasCertificates = true
	}
	if len(aux.Experience) > 0 {
		u.HasExperience = true
	}
	return nil
}

// ProfileComplete reports whether a job seeker has filled the profile
// sections the dashboard requires. Hiring managers are never bounced
// to the job-seeker completion flow.
func (u User) ProfileComplete() bool {
	if u.UserType != UserTypeJobSeeker {
		return true
	}
	return u.HasCertificates && u.HasExperience
}
