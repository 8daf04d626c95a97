package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mustakbalak/portal/internal/events"
	"github.com/mustakbalak/portal/internal/guard"
	"github.com/mustakbalak/portal/internal/showroom"
	"github.com/mustakbalak/portal/internal/upstream"
	apperrors "github.com/mustakbalak/portal/pkg/util"
)

// JobsHandler serves the hiring manager's own postings. Creation and
// editing go through the step forms; this handler covers listing and
// deletion.
type JobsHandler struct {
	upstream   *upstream.Client
	cache      showroom.SnapshotCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewJobsHandler constructs handler.
func NewJobsHandler(client *upstream.Client, cache showroom.SnapshotCache, dispatcher events.Dispatcher, logger *zap.Logger) *JobsHandler {
	return &JobsHandler{upstream: client, cache: cache, dispatcher: dispatcher, logger: logger}
}

// List GET /portal/jobs.
func (h *JobsHandler) List(c *fiber.Ctx) error {
	jobs, err := h.upstream.ListMyJobs(c.UserContext(), sessionAuth(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"jobs": jobs, "total": len(jobs)})
}

// Get GET /portal/jobs/:id.
func (h *JobsHandler) Get(c *fiber.Ctx) error {
	job, err := h.upstream.GetJob(c.UserContext(), sessionAuth(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"job": job})
}

// Delete DELETE /portal/jobs/:id. The cached showroom snapshot is
// invalidated so the public list drops the job on the next read.
func (h *JobsHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.upstream.DeleteJob(c.UserContext(), sessionAuth(c), id); err != nil {
		return err
	}
	h.cache.Invalidate(c.UserContext(), snapshotKeyAll)
	publish(c, h.dispatcher, events.EventJobDeleted, events.JobDeletedPayload{JobID: id})
	h.logger.Info("job deleted", zap.String("job_id", id))
	return c.JSON(fiber.Map{"deleted": true, "jobId": id})
}

// sessionAuth builds upstream credentials from the guarded session.
func sessionAuth(c *fiber.Ctx) upstream.Auth {
	auth := upstream.Auth{SessionID: guard.SessionID(c)}
	if sess, ok := guard.SessionFromContext(c); ok {
		auth.Token = sess.Token
	}
	return auth
}

// requireSessionAuth is sessionAuth for handlers reachable only behind
// RequireRole; it errors instead of sending an anonymous request.
func requireSessionAuth(c *fiber.Ctx) (upstream.Auth, error) {
	sess, ok := guard.SessionFromContext(c)
	if !ok {
		return upstream.Auth{}, apperrors.NewUnauthorized("please log in first")
	}
	return upstream.Auth{SessionID: guard.SessionID(c), Token: sess.Token}, nil
}
