package guard

import (
	"testing"

	"github.com/mustakbalak/portal/internal/domain"
	"github.com/mustakbalak/portal/internal/session"
)

func TestDecide(t *testing.T) {
	seeker := &session.Session{
		ID:    "s1",
		Token: "tok",
		User:  domain.User{ID: "u1", UserType: domain.UserTypeJobSeeker},
	}
	manager := &session.Session{
		ID:    "s2",
		Token: "tok",
		User:  domain.User{ID: "u2", UserType: domain.UserTypeHiringManager},
	}

	tests := []struct {
		name     string
		sess     *session.Session
		role     domain.UserType
		path     string
		outcome  Outcome
		location string
		from     string
	}{
		{
			name:     "anonymous to seeker page",
			sess:     nil,
			role:     domain.UserTypeJobSeeker,
			path:     "/applications",
			outcome:  RedirectLogin,
			location: PathLogin,
			from:     "/applications",
		},
		{
			name:     "anonymous to manager page uses manager login",
			sess:     nil,
			role:     domain.UserTypeHiringManager,
			path:     "/hiring-manager/jobs",
			outcome:  RedirectLogin,
			location: PathHiringManagerLogin,
			from:     "/hiring-manager/jobs",
		},
		{
			name:     "anonymous to any-role page",
			sess:     nil,
			role:     "",
			path:     "/profile",
			outcome:  RedirectLogin,
			location: PathLogin,
			from:     "/profile",
		},
		{
			name:     "seeker on manager page bounces home",
			sess:     seeker,
			role:     domain.UserTypeHiringManager,
			path:     "/hiring-manager/jobs",
			outcome:  RedirectHome,
			location: PathHome,
		},
		{
			name:     "manager on seeker page bounces home",
			sess:     manager,
			role:     domain.UserTypeJobSeeker,
			path:     "/applications",
			outcome:  RedirectHome,
			location: PathHome,
		},
		{
			name:    "seeker allowed on seeker page",
			sess:    seeker,
			role:    domain.UserTypeJobSeeker,
			path:    "/applications",
			outcome: Allow,
		},
		{
			name:    "any authenticated user allowed on shared page",
			sess:    manager,
			role:    "",
			path:    "/profile",
			outcome: Allow,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decision := Decide(tc.sess, tc.role, tc.path)
			if decision.Outcome != tc.outcome {
				t.Fatalf("expected outcome %v, got %v", tc.outcome, decision.Outcome)
			}
			if decision.Location != tc.location {
				t.Fatalf("expected location %q, got %q", tc.location, decision.Location)
			}
			if decision.From != tc.from {
				t.Fatalf("expected from %q, got %q", tc.from, decision.From)
			}
		})
	}
}
