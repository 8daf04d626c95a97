package guard

import (
	"github.com/mustakbalak/portal/internal/domain"
	"github.com/mustakbalak/portal/internal/session"
)

// Route paths the guard redirects to. These mirror the portal's page
// commands, not upstream API endpoints.
const (
	PathHome               = "/"
	PathLogin              = "/login"
	PathHiringManagerLogin = "/hiring-manager/login"
)

// Outcome is the guard's verdict for a navigation attempt.
type Outcome int

const (
	// Allow renders the requested page.
	Allow Outcome = iota
	// RedirectLogin bounces to the role-appropriate login entry point.
	RedirectLogin
	// RedirectHome bounces to the application home on role mismatch.
	RedirectHome
)

// Decision carries the outcome plus the redirect target and the
// originally requested location for a post-login bounce-back.
type Decision struct {
	Outcome  Outcome
	Location string
	// From is set on login redirects so the login flow can return the
	// caller to where they were headed.
	From string
}

// Decide is a pure function over (session, requiredRole, requestedPath).
// An empty requiredRole means any authenticated user may pass.
func Decide(sess *session.Session, requiredRole domain.UserType, requestedPath string) Decision {
	if sess == nil {
		loginPath := PathLogin
		if requiredRole == domain.UserTypeHiringManager {
			loginPath = PathHiringManagerLogin
		}
		return Decision{Outcome: RedirectLogin, Location: loginPath, From: requestedPath}
	}
	if requiredRole != "" && sess.User.UserType != requiredRole {
		return Decision{Outcome: RedirectHome, Location: PathHome}
	}
	return Decision{Outcome: Allow}
}
