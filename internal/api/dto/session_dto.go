package dto

import "github.com/mustakbalak/portal/internal/domain"

// LoginRequest is the credential payload for both login endpoints.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	// From is the originally requested path a guard bounced the user
	// away from; an empty value falls back to the role's landing page.
	From string `json:"from,omitempty"`
}

// LoginResponse reports the adopted session and where to land next.
type LoginResponse struct {
	Message         string      `json:"message,omitempty"`
	User            domain.User `json:"user"`
	ProfileComplete bool        `json:"profileComplete"`
	IsFirstLogin    bool        `json:"isFirstLogin"`
	Redirect        string      `json:"redirect"`
}

// SessionResponse is the restored session view.
type SessionResponse struct {
	Authenticated   bool         `json:"authenticated"`
	User            *domain.User `json:"user,omitempty"`
	ProfileComplete bool         `json:"profileComplete,omitempty"`
	AppliedJobs     []string     `json:"appliedJobs,omitempty"`
}

// RedirectResponse carries a standalone navigation target.
type RedirectResponse struct {
	Redirect string `json:"redirect"`
}
