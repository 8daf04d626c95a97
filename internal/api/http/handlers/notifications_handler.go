package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mustakbalak/portal/internal/guard"
	"github.com/mustakbalak/portal/internal/notify"
)

// NotificationsHandler drains the session's pending notifications.
type NotificationsHandler struct {
	center *notify.Center
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(center *notify.Center) *NotificationsHandler {
	return &NotificationsHandler{center: center}
}

// List GET /portal/notifications. Reading clears the queue, like a
// toast that is shown once.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	notifications := h.center.Drain(guard.SessionID(c))
	if notifications == nil {
		notifications = []notify.Notification{}
	}
	return c.JSON(fiber.Map{"notifications": notifications})
}
