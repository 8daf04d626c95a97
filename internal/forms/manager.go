package forms

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mustakbalak/portal/internal/events"
	"github.com/mustakbalak/portal/internal/schedule"
	"github.com/mustakbalak/portal/internal/session"
	"github.com/mustakbalak/portal/internal/upstream"
	"github.com/mustakbalak/portal/internal/wizard"
	apperrors "github.com/mustakbalak/portal/pkg/util"
)

// Form names accepted by Manager.Start.
const (
	FormSignup                       = "signup"
	FormHiringManagerSignup          = "hiring-manager-signup"
	FormCompleteProfile              = "complete-profile"
	FormHiringManagerCompleteProfile = "hiring-manager-complete-profile"
	FormJobCreate                    = "job-create"
	FormJobEdit                      = "job-edit"
)

// Deps collects the collaborators the form adapters need.
type Deps struct {
	Upstream      *upstream.Client
	Sessions      *session.Store
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
	NavigateDelay time.Duration
}

// instance pairs a live wizard with its post-submit redirect task, so
// discarding the form also cancels a still-pending redirect.
type instance struct {
	wizard  *wizard.Wizard
	pending *schedule.Task
}

// Manager keeps at most one live wizard per (session, form) pair.
type Manager struct {
	deps Deps

	mu     sync.Mutex
	active map[string]*instance
}

// NewManager builds an empty form manager.
func NewManager(deps Deps) *Manager {
	return &Manager{deps: deps, active: make(map[string]*instance)}
}

func key(sid, form string) string { return sid + "|" + form }

// Start creates a fresh wizard for the named form, replacing any
// previous instance for the same session. Edit-mode forms are seeded
// from the current upstream record; recordID names the record for
// forms that edit one (job-edit), and is ignored otherwise.
func (m *Manager) Start(ctx context.Context, sid, form, recordID string) (*wizard.Wizard, error) {
	var (
		w   *wizard.Wizard
		err error
	)
	switch form {
	case FormSignup:
		w = wizard.New(m.signupConfig(), signupDefaults())
	case FormHiringManagerSignup:
		w = wizard.New(m.hiringManagerSignupConfig(sid), hiringManagerSignupDefaults())
	case FormCompleteProfile:
		w, err = m.startCompleteProfile(ctx, sid)
	case FormHiringManagerCompleteProfile:
		w, err = m.startHiringManagerCompleteProfile(ctx, sid)
	case FormJobCreate:
		w, err = m.startJobCreate(ctx, sid)
	case FormJobEdit:
		w, err = m.startJobEdit(ctx, sid, recordID)
	default:
		return nil, apperrors.NewNotFound("form", map[string]any{"form": form})
	}
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if prev, ok := m.active[key(sid, form)]; ok && prev.pending != nil {
		prev.pending.Cancel()
	}
	m.active[key(sid, form)] = &instance{wizard: w}
	m.deps.Logger.Debug("form started", zap.String("form", form), zap.String("session_id", sid))
	return w, nil
}

// Get returns the live wizard for the pair, or a not-found error.
func (m *Manager) Get(sid, form string) (*wizard.Wizard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	inst, ok := m.active[key(sid, form)]
	if !ok {
		return nil, apperrors.NewNotFound("form", map[string]any{"form": form})
	}
	return inst.wizard, nil
}

// Submit runs the wizard's single submission. On success the redirect
// becomes effective only after the navigation delay elapses; the form
// is dropped when the delay fires. Discarding the form first cancels
// the pending redirect, so a user who leaves the page never navigates.
func (m *Manager) Submit(ctx context.Context, sid, form string) (string, error) {
	m.mu.Lock()
	inst, ok := m.active[key(sid, form)]
	m.mu.Unlock()
	if !ok {
		return "", apperrors.NewNotFound("form", map[string]any{"form": form})
	}

	redirect, err := inst.wizard.Submit(ctx)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	inst.pending = schedule.After(context.Background(), m.deps.NavigateDelay, func() {
		_ = m.deps.Dispatcher.Publish(context.Background(), events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventFormSubmitted,
			SessionID: sid,
			Timestamp: time.Now(),
			Payload:   events.FormSubmittedPayload{Form: form, Redirect: redirect},
		})
		m.drop(sid, form)
	})
	return redirect, nil
}

// Discard drops the wizard and cancels any pending post-submit
// redirect.
func (m *Manager) Discard(sid, form string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if inst, ok := m.active[key(sid, form)]; ok {
		if inst.pending != nil {
			inst.pending.Cancel()
		}
		delete(m.active, key(sid, form))
	}
}

// DiscardAll drops every form a session has in progress. Called on
// logout.
func (m *Manager) DiscardAll(sid string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := sid + "|"
	for k, inst := range m.active {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			if inst.pending != nil {
				inst.pending.Cancel()
			}
			delete(m.active, k)
		}
	}
}

func (m *Manager) drop(sid, form string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, key(sid, form))
}

// authFor resolves the session into upstream credentials, rejecting
// anonymous callers.
func (m *Manager) authFor(ctx context.Context, sid string) (upstream.Auth, *session.Session, error) {
	sess, err := m.deps.Sessions.Current(ctx, sid)
	if err != nil {
		return upstream.Auth{}, nil, err
	}
	if sess == nil {
		return upstream.Auth{}, nil, apperrors.NewUnauthorized("please log in first")
	}
	return upstream.Auth{SessionID: sid, Token: sess.Token}, sess, nil
}
