package upstream

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mustakbalak/portal/internal/events"
)

// NewAuthFailureStage returns the pipeline stage that turns any HTTP 401
// into a session-invalidated event. Interception of failed requests is
// the only path by which server-side token expiry is detected, so the
// stage is wired as an explicit, testable pipeline step rather than an
// ambient side effect.
func NewAuthFailureStage(dispatcher events.Dispatcher) ResponseStage {
	return func(ctx context.Context, auth Auth, resp *http.Response) {
		if resp.StatusCode != http.StatusUnauthorized {
			return
		}
		if auth.SessionID == "" {
			return
		}
		_ = dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventSessionInvalidated,
			SessionID: auth.SessionID,
			Timestamp: time.Now(),
			Payload: events.SessionInvalidatedPayload{
				Status: resp.StatusCode,
				Path:   resp.Request.URL.Path,
			},
		})
	}
}
