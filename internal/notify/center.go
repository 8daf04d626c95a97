// Package notify keeps per-session transient notifications, which the
// web client renders as toast messages. Notifications are drained on
// read.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mustakbalak/portal/internal/events"
)

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one transient message for a session.
type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Center stores pending notifications per session.
type Center struct {
	mu      sync.Mutex
	pending map[string][]Notification
	logger  *zap.Logger
}

// NewCenter builds an empty notification center.
func NewCenter(logger *zap.Logger) *Center {
	return &Center{pending: make(map[string][]Notification), logger: logger}
}

// Push queues a message for the session.
func (c *Center) Push(sid string, level Level, message string) {
	if sid == "" || message == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[sid] = append(c.pending[sid], Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

// Drain returns and clears the session's pending notifications.
func (c *Center) Drain(sid string) []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.pending[sid]
	delete(c.pending, sid)
	return out
}

// RegisterHandlers subscribes the center to portal events so the usual
// flows produce their confirmation messages without every handler
// pushing text by hand.
func (c *Center) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventJobApplied, func(_ context.Context, event events.Event) error {
		c.Push(event.SessionID, LevelSuccess, "Your job request has been sent successfully!")
		return nil
	})
	dispatcher.Subscribe(events.EventJobDeleted, func(_ context.Context, event events.Event) error {
		c.Push(event.SessionID, LevelSuccess, "Job deleted successfully")
		return nil
	})
	dispatcher.Subscribe(events.EventProfileUpdated, func(_ context.Context, event events.Event) error {
		c.Push(event.SessionID, LevelSuccess, "Profile updated successfully!")
		return nil
	})
	dispatcher.Subscribe(events.EventApplicationStatusChanged, func(_ context.Context, event events.Event) error {
		c.Push(event.SessionID, LevelSuccess, "Application status updated")
		return nil
	})
	dispatcher.Subscribe(events.EventSessionInvalidated, func(_ context.Context, event events.Event) error {
		c.Push(event.SessionID, LevelError, "Your session has expired. Please log in again.")
		return nil
	})
	c.logger.Debug("notification handlers registered")
}
