package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mustakbalak/portal/internal/api/dto"
	"github.com/mustakbalak/portal/internal/domain"
	"github.com/mustakbalak/portal/internal/events"
	"github.com/mustakbalak/portal/internal/forms"
	"github.com/mustakbalak/portal/internal/guard"
	"github.com/mustakbalak/portal/internal/session"
	"github.com/mustakbalak/portal/internal/showroom"
	"github.com/mustakbalak/portal/internal/upstream"
	apperrors "github.com/mustakbalak/portal/pkg/util"
)

// SessionHandler owns login, logout and session restoration.
type SessionHandler struct {
	upstream *upstream.Client
	sessions *session.Store
	forms    *forms.Manager
	filters  *showroom.StateManager
	logger   *zap.Logger
}

// NewSessionHandler constructs handler.
func NewSessionHandler(client *upstream.Client, sessions *session.Store, formManager *forms.Manager, filters *showroom.StateManager, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{upstream: client, sessions: sessions, forms: formManager, filters: filters, logger: logger}
}

// Login POST /portal/auth/login.
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	req, err := parseLogin(c)
	if err != nil {
		return err
	}
	result, err := h.upstream.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return h.adopt(c, result, req.From)
}

// HiringManagerLogin POST /portal/hiring-manager/login.
func (h *SessionHandler) HiringManagerLogin(c *fiber.Ctx) error {
	req, err := parseLogin(c)
	if err != nil {
		return err
	}
	result, err := h.upstream.HiringManagerLogin(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return h.adopt(c, result, req.From)
}

// Logout POST /portal/auth/logout.
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	sid := guard.SessionID(c)
	if err := h.sessions.Logout(c.UserContext(), sid); err != nil {
		return err
	}
	h.forms.DiscardAll(sid)
	h.filters.Drop(sid)
	return c.JSON(dto.RedirectResponse{Redirect: "/"})
}

// Session GET /portal/session.
func (h *SessionHandler) Session(c *fiber.Ctx) error {
	sid := guard.SessionID(c)
	sess, err := h.sessions.Current(c.UserContext(), sid)
	if err != nil {
		return err
	}
	if sess == nil {
		return c.JSON(dto.SessionResponse{Authenticated: false})
	}
	applied, err := h.sessions.AppliedJobs(c.UserContext(), sid)
	if err != nil {
		return err
	}
	user := sess.User
	return c.JSON(dto.SessionResponse{
		Authenticated:   true,
		User:            &user,
		ProfileComplete: user.ProfileComplete(),
		AppliedJobs:     applied,
	})
}

func (h *SessionHandler) adopt(c *fiber.Ctx, result *upstream.LoginResult, from string) error {
	sid := guard.SessionID(c)
	if err := h.sessions.Login(c.UserContext(), sid, result.Token, result.User); err != nil {
		return err
	}
	h.logger.Info("login",
		zap.String("session_id", sid),
		zap.String("user_type", string(result.User.UserType)))
	return c.JSON(dto.LoginResponse{
		Message:         result.Message,
		User:            result.User,
		ProfileComplete: result.User.ProfileComplete(),
		IsFirstLogin:    result.IsFirstLogin,
		Redirect:        postLoginRedirect(result, from),
	})
}

// postLoginRedirect picks the landing page: email verification first,
// then profile completion for job seekers, then the originally
// requested path, then the role's home.
func postLoginRedirect(result *upstream.LoginResult, from string) string {
	if result.IsFirstLogin {
		return "/verify-email"
	}
	if !result.User.ProfileComplete() {
		return "/complete-profile"
	}
	if strings.TrimSpace(from) != "" {
		return from
	}
	if result.User.UserType == domain.UserTypeHiringManager {
		return "/hiring-manager/dashboard"
	}
	return "/"
}

func parseLogin(c *fiber.Ctx) (dto.LoginRequest, error) {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return req, apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return req, apperrors.NewValidationError("username and password required", nil)
	}
	return req, nil
}

func publish(c *fiber.Ctx, dispatcher events.Dispatcher, eventType events.EventType, payload any) {
	_ = dispatcher.Publish(c.UserContext(), events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SessionID: guard.SessionID(c),
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
