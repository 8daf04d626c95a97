package upstream

import (
	"context"

	"github.com/mustakbalak/portal/internal/domain"
)

// CreateApplication submits an application for a job.
func (c *Client) CreateApplication(ctx context.Context, auth Auth, jobID string) error {
	body := map[string]string{"job": jobID}
	return c.post(ctx, auth, "/api/applications", body, nil)
}

// ListUserApplications fetches the job seeker's applications.
func (c *Client) ListUserApplications(ctx context.Context, auth Auth) ([]domain.Application, error) {
	var out []domain.Application
	if err := c.get(ctx, auth, "/api/applications/user", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListHiringManagerApplications fetches applications received for the
// manager's posted jobs.
func (c *Client) ListHiringManagerApplications(ctx context.Context, auth Auth) ([]domain.Application, error) {
	var out []domain.Application
	if err := c.get(ctx, auth, "/api/applications/hiring-manager", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetApplication fetches a single application.
func (c *Client) GetApplication(ctx context.Context, auth Auth, id string) (*domain.Application, error) {
	var out domain.Application
	if err := c.get(ctx, auth, "/api/applications/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateApplicationStatus sets a new status on an application.
func (c *Client) UpdateApplicationStatus(ctx context.Context, auth Auth, id string, status domain.ApplicationStatus) error {
	body := map[string]string{"status": string(status)}
	return c.put(ctx, auth, "/api/applications/"+id, body, nil)
}
