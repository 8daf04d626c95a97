package guard

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mustakbalak/portal/internal/domain"
	"github.com/mustakbalak/portal/internal/session"
)

const (
	localsSessionID = "portal_session_id"
	localsSession   = "portal_session"
)

// SessionCookie assigns each browser a stable portal session id. The id
// keys everything the portal remembers for a visitor; it carries no
// authentication by itself.
func SessionCookie(cookieName string, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(cookieName)
		if sid == "" {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     cookieName,
				Value:    sid,
				Expires:  time.Now().Add(ttl),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(localsSessionID, sid)
		return c.Next()
	}
}

// SessionID returns the request's portal session id.
func SessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(localsSessionID).(string)
	return sid
}

// RequireRole guards a route group: anonymous callers are bounced to
// the role-appropriate login carrying the originally requested path,
// and a logged-in caller of the wrong role is bounced home.
func RequireRole(store *session.Store, role domain.UserType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Current(c.UserContext(), SessionID(c))
		if err != nil {
			return err
		}
		decision := Decide(sess, role, c.Path())
		switch decision.Outcome {
		case Allow:
			c.Locals(localsSession, sess)
			return c.Next()
		case RedirectLogin:
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"redirect": decision.Location,
				"from":     decision.From,
			})
		default:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"redirect": decision.Location,
			})
		}
	}
}

// SessionFromContext returns the session attached by RequireRole.
func SessionFromContext(c *fiber.Ctx) (*session.Session, bool) {
	sess, ok := c.Locals(localsSession).(*session.Session)
	return sess, ok && sess != nil
}
