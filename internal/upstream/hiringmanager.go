package upstream

import (
	"context"

	"github.com/mustakbalak/portal/internal/domain"
)

// SignupAddress is the structured address the hiring-manager endpoints
// expect, unlike job-seeker signup which takes one assembled string.
type SignupAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

// HiringManagerSignupRequest is the hiring-manager registration payload.
type HiringManagerSignupRequest struct {
	Username        string        `json:"username"`
	FullName        string        `json:"fullName"`
	Email           string        `json:"email"`
	PhoneNumber     string        `json:"phoneNumber"`
	Password        string        `json:"password"`
	CurrentPosition string        `json:"currentPosition"`
	Company         string        `json:"company"`
	Department      string        `json:"department"`
	Role            string        `json:"role"`
	CompanySize     string        `json:"companySize"`
	Industry        string        `json:"industry"`
	Address         SignupAddress `json:"address"`
}

type hiringManagerProfileEnvelope struct {
	Profile domain.HiringManagerProfile `json:"profile"`
}

// HiringManagerSignup registers a hiring manager. Unlike job-seeker
// signup the response carries a session, so the caller lands on the
// dashboard already logged in.
func (c *Client) HiringManagerSignup(ctx context.Context, req HiringManagerSignupRequest) (*LoginResult, error) {
	var out LoginResult
	if err := c.post(ctx, Auth{}, "/api/hiring-manager/signup", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HiringManagerLogin authenticates a hiring manager.
func (c *Client) HiringManagerLogin(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	var out LoginResult
	if err := c.post(ctx, Auth{}, "/api/hiring-manager/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetHiringManagerProfile fetches the hiring-manager profile.
func (c *Client) GetHiringManagerProfile(ctx context.Context, auth Auth) (*domain.HiringManagerProfile, error) {
	var out hiringManagerProfileEnvelope
	if err := c.get(ctx, auth, "/api/hiring-manager/profile", &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

// CompleteHiringManagerProfile submits the profile completion payload.
func (c *Client) CompleteHiringManagerProfile(ctx context.Context, auth Auth, profile map[string]any) error {
	return c.post(ctx, auth, "/api/hiring-manager/complete-profile", profile, nil)
}

// DeleteHiringManagerProfile removes the hiring-manager account.
func (c *Client) DeleteHiringManagerProfile(ctx context.Context, auth Auth) error {
	return c.delete(ctx, auth, "/api/hiring-manager/profile", nil)
}
