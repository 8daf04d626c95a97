package upstream

import (
	"context"
	"encoding/json"

	"github.com/mustakbalak/portal/internal/domain"
)

// SignupRequest is the job-seeker registration payload. Address is the
// single assembled string the backend expects; the typed parts live in
// the signup wizard.
type SignupRequest struct {
	Username        string `json:"username"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	Address         string `json:"Address"`
	UserType        string `json:"userType"`
	CurrentPosition string `json:"currentPosition,omitempty"`
	Company         string `json:"company,omitempty"`
	Password        string `json:"password"`
}

// LoginResult is the shared shape of successful auth responses.
type LoginResult struct {
	Message      string      `json:"message"`
	Token        string      `json:"token"`
	User         domain.User `json:"user"`
	IsFirstLogin bool        `json:"isFirstLogin"`
}

// ProfileRecord is the job-seeker profile envelope: the identity
// snapshot plus the extended wizard sections.
type ProfileRecord struct {
	domain.User
	domain.JobSeekerProfile
}

// UnmarshalJSON decodes the flat user blob into both embedded halves.
// Without it the identity snapshot's custom decoding would be promoted
// and swallow the profile sections.
func (r *ProfileRecord) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &r.User); err != nil {
		return err
	}
	return json.Unmarshal(data, &r.JobSeekerProfile)
}

type profileEnvelope struct {
	User ProfileRecord `json:"user"`
}

// Signup registers a job-seeker account. The account is created logged
// out; the caller routes the user to the login page.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.post(ctx, Auth{}, "/api/auth/signup", req, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Login authenticates a job seeker.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var out LoginResult
	if err := c.post(ctx, Auth{}, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProfile fetches the job-seeker profile for the session.
func (c *Client) GetProfile(ctx context.Context, auth Auth) (*ProfileRecord, error) {
	var out profileEnvelope
	if err := c.get(ctx, auth, "/api/auth/profile", &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// CompleteProfile submits the changed-fields-only profile payload.
func (c *Client) CompleteProfile(ctx context.Context, auth Auth, changed map[string]any) error {
	return c.post(ctx, auth, "/api/auth/complete-profile", changed, nil)
}

// DeleteProfile removes the job-seeker account.
func (c *Client) DeleteProfile(ctx context.Context, auth Auth) error {
	return c.delete(ctx, auth, "/api/auth/profile", nil)
}
