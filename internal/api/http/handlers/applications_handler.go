package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mustakbalak/portal/internal/api/dto"
	"github.com/mustakbalak/portal/internal/domain"
	"github.com/mustakbalak/portal/internal/events"
	"github.com/mustakbalak/portal/internal/upstream"
	apperrors "github.com/mustakbalak/portal/pkg/util"
)

// ApplicationsHandler serves both sides of the application flow: the
// seeker's own applications and the manager's received ones.
type ApplicationsHandler struct {
	upstream   *upstream.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewApplicationsHandler constructs handler.
func NewApplicationsHandler(client *upstream.Client, dispatcher events.Dispatcher, logger *zap.Logger) *ApplicationsHandler {
	return &ApplicationsHandler{upstream: client, dispatcher: dispatcher, logger: logger}
}

// ListMine GET /portal/applications. An optional status query narrows
// the list, compared case-insensitively against each record.
func (h *ApplicationsHandler) ListMine(c *fiber.Ctx) error {
	auth, err := requireSessionAuth(c)
	if err != nil {
		return err
	}
	var want domain.ApplicationStatus
	if query := strings.TrimSpace(c.Query("status")); query != "" {
		status, ok := domain.ParseApplicationStatus(query)
		if !ok {
			return apperrors.NewValidationError("unknown application status", map[string]any{"status": query})
		}
		want = status
	}
	applications, err := h.upstream.ListUserApplications(c.UserContext(), auth)
	if err != nil {
		return err
	}
	if want != "" {
		filtered := make([]domain.Application, 0, len(applications))
		for _, application := range applications {
			if strings.EqualFold(string(application.Status), string(want)) {
				filtered = append(filtered, application)
			}
		}
		applications = filtered
	}
	return c.JSON(fiber.Map{"applications": applications, "total": len(applications)})
}

// ListReceived GET /portal/applications/received.
func (h *ApplicationsHandler) ListReceived(c *fiber.Ctx) error {
	auth, err := requireSessionAuth(c)
	if err != nil {
		return err
	}
	applications, err := h.upstream.ListHiringManagerApplications(c.UserContext(), auth)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"applications": applications, "total": len(applications)})
}

// Get GET /portal/applications/:id.
func (h *ApplicationsHandler) Get(c *fiber.Ctx) error {
	auth, err := requireSessionAuth(c)
	if err != nil {
		return err
	}
	application, err := h.upstream.GetApplication(c.UserContext(), auth, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"application": application})
}

// UpdateStatus PUT /portal/applications/:id/status.
func (h *ApplicationsHandler) UpdateStatus(c *fiber.Ctx) error {
	auth, err := requireSessionAuth(c)
	if err != nil {
		return err
	}
	var req dto.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	status := domain.ApplicationStatus(req.Status)
	if !status.Valid() {
		return apperrors.NewValidationError("unknown application status", map[string]any{"status": req.Status})
	}

	id := c.Params("id")
	current, err := h.upstream.GetApplication(c.UserContext(), auth, id)
	if err != nil {
		return err
	}
	if err := h.upstream.UpdateApplicationStatus(c.UserContext(), auth, id, status); err != nil {
		return err
	}
	publish(c, h.dispatcher, events.EventApplicationStatusChanged, events.ApplicationStatusChangedPayload{
		ApplicationID: id,
		OldStatus:     current.Status,
		NewStatus:     status,
	})
	h.logger.Info("application status updated",
		zap.String("application_id", id),
		zap.String("status", string(status)))
	return c.JSON(fiber.Map{"applicationId": id, "status": status})
}
