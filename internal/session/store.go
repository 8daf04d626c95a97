package session

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/mustakbalak/portal/internal/domain"
	"github.com/mustakbalak/portal/internal/events"
)

// Storage field names, matching the keys the web client uses for its
// session payloads.
const (
	fieldToken       = "token"
	fieldUser        = "user"
	fieldAppliedJobs = "appliedJobs"
)

// Session is the locally cached belief about who is logged in. Token and
// user are always both set or both absent.
type Session struct {
	ID    string
	Token string
	User  domain.User
}

// Store is the single source of truth for session state. All components
// read through it; none touch the underlying storage directly.
type Store struct {
	storage Storage
	logger  *zap.Logger
}

// NewStore builds a session store over the given storage.
func NewStore(storage Storage, logger *zap.Logger) *Store {
	return &Store{storage: storage, logger: logger}
}

// Login persists the bearer token and identity snapshot together and
// adopts them as the active session.
func (s *Store) Login(ctx context.Context, sid, token string, user domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if info, ok := DecodeToken(token); ok {
		s.logger.Debug("session established",
			zap.String("subject", info.Subject),
			zap.Time("token_expires", info.ExpiresAt))
	}
	return s.storage.Set(ctx, sid, map[string]string{
		fieldToken: token,
		fieldUser:  string(raw),
	})
}

// Logout clears persisted and in-memory session state. Subsequent
// upstream calls carry no token.
func (s *Store) Logout(ctx context.Context, sid string) error {
	return s.storage.Clear(ctx, sid)
}

// Restore re-reads the persisted token/user pair. A missing or malformed
// pair yields a nil session, never an error visible to callers: bad
// persisted state is wiped and treated as "not logged in". No server
// round-trip is performed; the token is trusted until a request 401s.
func (s *Store) Restore(ctx context.Context, sid string) (*Session, error) {
	token, hasToken, err := s.storage.Get(ctx, sid, fieldToken)
	if err != nil {
		return nil, err
	}
	rawUser, hasUser, err := s.storage.Get(ctx, sid, fieldUser)
	if err != nil {
		return nil, err
	}
	if !hasToken || !hasUser {
		if hasToken || hasUser {
			// Half a pair is worse than none; drop it.
			_ = s.storage.Clear(ctx, sid)
		}
		return nil, nil
	}

	var user domain.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.logger.Warn("wiping malformed session state", zap.String("session_id", sid), zap.Error(err))
		_ = s.storage.Clear(ctx, sid)
		return nil, nil
	}
	if !user.UserType.Valid() {
		s.logger.Warn("wiping session with unknown user type", zap.String("session_id", sid))
		_ = s.storage.Clear(ctx, sid)
		return nil, nil
	}

	if info, ok := DecodeToken(token); ok && info.Expired() {
		// Kept optimistic on purpose: an expired claim is only logged,
		// the 401 interceptor remains the sole invalidation path.
		s.logger.Debug("restored session carries expired token claim",
			zap.String("session_id", sid), zap.Time("token_expires", info.ExpiresAt))
	}

	return &Session{ID: sid, Token: token, User: user}, nil
}

// Validate reports whether a usable token/user pair exists, re-adopting
// it if so. It never contacts the server.
func (s *Store) Validate(ctx context.Context, sid string) (bool, error) {
	sess, err := s.Restore(ctx, sid)
	if err != nil {
		return false, err
	}
	return sess != nil, nil
}

// Current is an alias for Restore kept for call-site readability.
func (s *Store) Current(ctx context.Context, sid string) (*Session, error) {
	return s.Restore(ctx, sid)
}

// AddAppliedJob records a job id in the persisted applied set. The set is
// only used to render "already applied" state.
func (s *Store) AddAppliedJob(ctx context.Context, sid, jobID string) error {
	applied, err := s.AppliedJobs(ctx, sid)
	if err != nil {
		return err
	}
	for _, id := range applied {
		if id == jobID {
			return nil
		}
	}
	applied = append(applied, jobID)
	raw, err := json.Marshal(applied)
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, sid, map[string]string{fieldAppliedJobs: string(raw)})
}

// AppliedJobs returns the persisted applied-job ids. Malformed state is
// treated as empty.
func (s *Store) AppliedJobs(ctx context.Context, sid string) ([]string, error) {
	raw, ok, err := s.storage.Get(ctx, sid, fieldAppliedJobs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, nil
	}
	return ids, nil
}

// HasApplied reports whether the session already applied to the job.
func (s *Store) HasApplied(ctx context.Context, sid, jobID string) (bool, error) {
	ids, err := s.AppliedJobs(ctx, sid)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == jobID {
			return true, nil
		}
	}
	return false, nil
}

// BindInvalidation subscribes the store to session-invalidated events so
// any upstream 401 forces a logout. This is the only path by which
// server-side token expiry is detected.
func (s *Store) BindInvalidation(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventSessionInvalidated, func(ctx context.Context, event events.Event) error {
		if event.SessionID == "" {
			return nil
		}
		s.logger.Info("session invalidated by upstream", zap.String("session_id", event.SessionID))
		return s.Logout(ctx, event.SessionID)
	})
}
