package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mustakbalak/portal/internal/api/dto"
	"github.com/mustakbalak/portal/internal/domain"
	"github.com/mustakbalak/portal/internal/forms"
	"github.com/mustakbalak/portal/internal/guard"
	"github.com/mustakbalak/portal/internal/session"
	"github.com/mustakbalak/portal/internal/showroom"
	"github.com/mustakbalak/portal/internal/upstream"
	apperrors "github.com/mustakbalak/portal/pkg/util"
)

// ProfileHandler serves the profile page for either role and account
// deletion.
type ProfileHandler struct {
	upstream *upstream.Client
	sessions *session.Store
	forms    *forms.Manager
	filters  *showroom.StateManager
	logger   *zap.Logger
}

// NewProfileHandler constructs handler.
func NewProfileHandler(client *upstream.Client, sessions *session.Store, formManager *forms.Manager, filters *showroom.StateManager, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{upstream: client, sessions: sessions, forms: formManager, filters: filters, logger: logger}
}

// Get GET /portal/profile.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	sess, ok := guard.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("please log in first")
	}
	auth := upstream.Auth{SessionID: guard.SessionID(c), Token: sess.Token}

	if sess.User.UserType == domain.UserTypeHiringManager {
		profile, err := h.upstream.GetHiringManagerProfile(c.UserContext(), auth)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"user": sess.User, "profile": profile})
	}

	record, err := h.upstream.GetProfile(c.UserContext(), auth)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": record})
}

// Delete DELETE /portal/profile. Removing the account also ends the
// portal session.
func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	sess, ok := guard.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("please log in first")
	}
	sid := guard.SessionID(c)
	auth := upstream.Auth{SessionID: sid, Token: sess.Token}

	var err error
	if sess.User.UserType == domain.UserTypeHiringManager {
		err = h.upstream.DeleteHiringManagerProfile(c.UserContext(), auth)
	} else {
		err = h.upstream.DeleteProfile(c.UserContext(), auth)
	}
	if err != nil {
		return err
	}

	if err := h.sessions.Logout(c.UserContext(), sid); err != nil {
		return err
	}
	h.forms.DiscardAll(sid)
	h.filters.Drop(sid)
	h.logger.Info("account deleted", zap.String("session_id", sid))
	return c.JSON(dto.RedirectResponse{Redirect: "/"})
}
