package session

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenInfo is the subset of bearer-token claims the portal surfaces for
// introspection and logging.
type TokenInfo struct {
	Subject   string
	ExpiresAt time.Time
}

// Expired reports whether the exp claim is in the past. A zero ExpiresAt
// (no exp claim) never counts as expired.
func (t TokenInfo) Expired() bool {
	return !t.ExpiresAt.IsZero() && time.Now().After(t.ExpiresAt)
}

// DecodeToken extracts claims without verifying the signature. Token
// issuance and verification are the backend's job; the portal only treats
// the token as an opaque credential, so the decoded claims are used for
// logging and session introspection, never for authorization.
func DecodeToken(token string) (TokenInfo, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, false
	}

	info := TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, true
}
