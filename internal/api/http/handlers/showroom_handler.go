package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mustakbalak/portal/internal/api/dto"
	"github.com/mustakbalak/portal/internal/domain"
	"github.com/mustakbalak/portal/internal/events"
	"github.com/mustakbalak/portal/internal/guard"
	"github.com/mustakbalak/portal/internal/session"
	"github.com/mustakbalak/portal/internal/showroom"
	"github.com/mustakbalak/portal/internal/upstream"
	apperrors "github.com/mustakbalak/portal/pkg/util"
)

const snapshotKeyAll = "all"

// ShowroomHandler serves the public job list with per-session filters.
type ShowroomHandler struct {
	upstream   *upstream.Client
	sessions   *session.Store
	filters    *showroom.StateManager
	cache      showroom.SnapshotCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewShowroomHandler constructs handler.
func NewShowroomHandler(client *upstream.Client, sessions *session.Store, filters *showroom.StateManager, cache showroom.SnapshotCache, dispatcher events.Dispatcher, logger *zap.Logger) *ShowroomHandler {
	return &ShowroomHandler{upstream: client, sessions: sessions, filters: filters, cache: cache, dispatcher: dispatcher, logger: logger}
}

// Jobs GET /portal/showroom/jobs.
func (h *ShowroomHandler) Jobs(c *fiber.Ctx) error {
	sid := guard.SessionID(c)
	jobs, err := h.snapshot(c)
	if err != nil {
		return err
	}
	state := h.filters.State(sid)
	visible := showroom.SortJobs(showroom.ApplyFilters(jobs, state.Applied), state.Applied.SortBy)

	applied, err := h.sessions.AppliedJobs(c.UserContext(), sid)
	if err != nil {
		return err
	}
	return c.JSON(dto.ShowroomResponse{
		Jobs:        visible,
		Total:       len(visible),
		Applied:     state.Applied,
		AppliedJobs: applied,
	})
}

// Job GET /portal/showroom/jobs/:id.
func (h *ShowroomHandler) Job(c *fiber.Ctx) error {
	job, err := h.upstream.GetJob(c.UserContext(), h.auth(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"job": job})
}

// Filters GET /portal/showroom/filters.
func (h *ShowroomHandler) Filters(c *fiber.Ctx) error {
	state := h.filters.State(guard.SessionID(c))
	return c.JSON(dto.FilterStateResponse{Draft: state.Draft, Applied: state.Applied})
}

// SetFilters PUT /portal/showroom/filters. Edits land in the draft set
// only; the displayed list does not change until ApplyFilters.
func (h *ShowroomHandler) SetFilters(c *fiber.Ctx) error {
	var req dto.FiltersRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	state := h.filters.SetDraft(guard.SessionID(c), req.Filters())
	return c.JSON(dto.FilterStateResponse{Draft: state.Draft, Applied: state.Applied})
}

// ApplyFilters POST /portal/showroom/filters/apply.
func (h *ShowroomHandler) ApplyFilters(c *fiber.Ctx) error {
	state := h.filters.Apply(guard.SessionID(c))
	return c.JSON(dto.FilterStateResponse{Draft: state.Draft, Applied: state.Applied})
}

// ResetFilters POST /portal/showroom/filters/reset.
func (h *ShowroomHandler) ResetFilters(c *fiber.Ctx) error {
	state := h.filters.Reset(guard.SessionID(c))
	return c.JSON(dto.FilterStateResponse{Draft: state.Draft, Applied: state.Applied})
}

// Apply POST /portal/showroom/jobs/:id/apply. Job seekers only; a
// second application to the same job is rejected locally.
func (h *ShowroomHandler) Apply(c *fiber.Ctx) error {
	sess, ok := guard.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("please log in first")
	}
	sid := guard.SessionID(c)
	jobID := c.Params("id")

	already, err := h.sessions.HasApplied(c.UserContext(), sid, jobID)
	if err != nil {
		return err
	}
	if already {
		return apperrors.NewConflict("You have already applied for this job", map[string]any{"jobId": jobID})
	}

	auth := upstream.Auth{SessionID: sid, Token: sess.Token}
	if err := h.upstream.CreateApplication(c.UserContext(), auth, jobID); err != nil {
		return err
	}
	if err := h.sessions.AddAppliedJob(c.UserContext(), sid, jobID); err != nil {
		return err
	}
	publish(c, h.dispatcher, events.EventJobApplied, events.JobAppliedPayload{JobID: jobID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"applied": true, "jobId": jobID})
}

// snapshot returns the cached job list, refetching on a miss.
func (h *ShowroomHandler) snapshot(c *fiber.Ctx) ([]domain.Job, error) {
	if jobs, ok := h.cache.Get(c.UserContext(), snapshotKeyAll); ok {
		return jobs, nil
	}
	jobs, err := h.upstream.ListJobs(c.UserContext())
	if err != nil {
		return nil, err
	}
	h.cache.Set(c.UserContext(), snapshotKeyAll, jobs)
	return jobs, nil
}

func (h *ShowroomHandler) auth(c *fiber.Ctx) upstream.Auth {
	auth := upstream.Auth{SessionID: guard.SessionID(c)}
	if sess, ok := guard.SessionFromContext(c); ok {
		auth.Token = sess.Token
	}
	return auth
}
