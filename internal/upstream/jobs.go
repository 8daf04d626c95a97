package upstream

import (
	"context"

	"github.com/mustakbalak/portal/internal/domain"
)

type jobEnvelope struct {
	Job domain.Job `json:"job"`
}

// ListJobs fetches the public showroom list.
func (c *Client) ListJobs(ctx context.Context) ([]domain.Job, error) {
	var out []domain.Job
	if err := c.get(ctx, Auth{}, "/api/jobs", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMyJobs fetches the jobs posted by the authenticated hiring manager.
func (c *Client) ListMyJobs(ctx context.Context, auth Auth) ([]domain.Job, error) {
	var out []domain.Job
	if err := c.get(ctx, auth, "/api/jobs/my-jobs", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetJob fetches one job by id.
func (c *Client) GetJob(ctx context.Context, auth Auth, id string) (*domain.Job, error) {
	var out jobEnvelope
	if err := c.get(ctx, auth, "/api/jobs/"+id, &out); err != nil {
		return nil, err
	}
	return &out.Job, nil
}

// CreateJob posts a new job.
func (c *Client) CreateJob(ctx context.Context, auth Auth, payload map[string]any) (*domain.Job, error) {
	var out jobEnvelope
	if err := c.post(ctx, auth, "/api/jobs", payload, &out); err != nil {
		return nil, err
	}
	return &out.Job, nil
}

// UpdateJob replaces a job record. The edit flow sends the full record
// rather than a diff.
func (c *Client) UpdateJob(ctx context.Context, auth Auth, id string, payload map[string]any) (*domain.Job, error) {
	var out jobEnvelope
	if err := c.put(ctx, auth, "/api/jobs/"+id, payload, &out); err != nil {
		return nil, err
	}
	return &out.Job, nil
}

// DeleteJob removes a job by id.
func (c *Client) DeleteJob(ctx context.Context, auth Auth, id string) error {
	return c.delete(ctx, auth, "/api/jobs/"+id, nil)
}
