package handlers

import (
	"testing"

	"github.com/mustakbalak/portal/internal/domain"
	"github.com/mustakbalak/portal/internal/upstream"
)

func TestPostLoginRedirect(t *testing.T) {
	completeSeeker := domain.User{
		UserType:        domain.UserTypeJobSeeker,
		HasCertificates: true,
		HasExperience:   true,
	}
	tests := []struct {
		name   string
		result upstream.LoginResult
		from   string
		want   string
	}{
		{
			name:   "first login goes to email verification",
			result: upstream.LoginResult{IsFirstLogin: true, User: completeSeeker},
			from:   "/jobs",
			want:   "/verify-email",
		},
		{
			name: "incomplete job seeker goes to profile completion",
			result: upstream.LoginResult{User: domain.User{
				UserType:      domain.UserTypeJobSeeker,
				HasExperience: true,
			}},
			want: "/complete-profile",
		},
		{
			name:   "remembered path wins for a complete profile",
			result: upstream.LoginResult{User: completeSeeker},
			from:   "/showroom",
			want:   "/showroom",
		},
		{
			name:   "hiring manager lands on the dashboard",
			result: upstream.LoginResult{User: domain.User{UserType: domain.UserTypeHiringManager}},
			want:   "/hiring-manager/dashboard",
		},
		{
			name:   "job seeker defaults to home",
			result: upstream.LoginResult{User: completeSeeker},
			want:   "/",
		},
		{
			name:   "blank from is ignored",
			result: upstream.LoginResult{User: completeSeeker},
			from:   "   ",
			want:   "/",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := postLoginRedirect(&tc.result, tc.from)
			if got != tc.want {
				t.Fatalf("expected redirect %q, got %q", tc.want, got)
			}
		})
	}
}
