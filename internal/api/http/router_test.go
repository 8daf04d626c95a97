package http

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mustakbalak/portal/internal/api/http/handlers"
	"github.com/mustakbalak/portal/internal/config"
	"github.com/mustakbalak/portal/internal/domain"
	"github.com/mustakbalak/portal/internal/events"
	"github.com/mustakbalak/portal/internal/guard"
	"github.com/mustakbalak/portal/internal/session"
	"github.com/mustakbalak/portal/internal/showroom"
	"github.com/mustakbalak/portal/internal/upstream"
)

func routedApp(t *testing.T, store *session.Store, backend nethttp.HandlerFunc) *fiber.App {
	t.Helper()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)
	client := upstream.New(config.BackendConfig{BaseURL: server.URL}, zap.NewNop())

	dispatcher := events.NewInMemoryDispatcher()
	cache := showroom.NewMemorySnapshotCache(time.Minute)
	filters := showroom.NewStateManager()
	logger := zap.NewNop()

	app := fiber.New()
	RegisterRoutes(app, RouteConfig{
		Health:        handlers.NewHealthHandler("portal", "test", nil),
		Session:       handlers.NewSessionHandler(client, store, nil, filters, logger),
		Forms:         handlers.NewFormsHandler(nil, time.Second),
		Showroom:      handlers.NewShowroomHandler(client, store, filters, cache, dispatcher, logger),
		Jobs:          handlers.NewJobsHandler(client, cache, dispatcher, logger),
		Applications:  handlers.NewApplicationsHandler(client, dispatcher, logger),
		Profile:       handlers.NewProfileHandler(client, store, nil, filters, logger),
		Notifications: handlers.NewNotificationsHandler(nil),
		Sessions:      store,
		CookieName:    "sid",
		SessionTTL:    time.Hour,
	})
	return app
}

func TestShowroomRequiresLogin(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage(), zap.NewNop())
	app := routedApp(t, store, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		t.Errorf("anonymous request must not reach the backend, got %s", r.URL.Path)
		w.WriteHeader(nethttp.StatusInternalServerError)
	})

	for _, path := range []string{
		"/portal/showroom/jobs",
		"/portal/showroom/jobs/j1",
		"/portal/showroom/filters",
	} {
		resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, path, nil))
		if err != nil {
			t.Fatalf("request %s: %v", path, err)
		}
		if resp.StatusCode != nethttp.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, resp.StatusCode)
		}
		var body map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["redirect"] != guard.PathLogin {
			t.Fatalf("%s: expected login redirect, got %q", path, body["redirect"])
		}
		if body["from"] != path {
			t.Fatalf("%s: expected original path preserved, got %q", path, body["from"])
		}
	}
}

func TestShowroomOpenToBothRoles(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage(), zap.NewNop())
	app := routedApp(t, store, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_ = json.NewEncoder(w).Encode([]domain.Job{{ID: "j1", Title: "Engineer"}})
	})

	logins := []struct {
		sid  string
		user domain.User
	}{
		{"s-seeker", domain.User{ID: "u1", Username: "amira", UserType: domain.UserTypeJobSeeker}},
		{"s-manager", domain.User{ID: "m1", Username: "omar", UserType: domain.UserTypeHiringManager}},
	}
	for _, login := range logins {
		if err := store.Login(context.Background(), login.sid, "tok", login.user); err != nil {
			t.Fatalf("login: %v", err)
		}
		req := httptest.NewRequest(nethttp.MethodGet, "/portal/showroom/jobs", nil)
		req.AddCookie(&nethttp.Cookie{Name: "sid", Value: login.sid})
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != nethttp.StatusOK {
			t.Fatalf("%s: expected 200, got %d", login.user.UserType, resp.StatusCode)
		}
	}
}

func TestShowroomApplyStaysSeekerOnly(t *testing.T) {
	store := session.NewStore(session.NewMemoryStorage(), zap.NewNop())
	app := routedApp(t, store, func(w nethttp.ResponseWriter, r *nethttp.Request) {
		t.Errorf("a blocked apply must not reach the backend, got %s", r.URL.Path)
		w.WriteHeader(nethttp.StatusInternalServerError)
	})

	err := store.Login(context.Background(), "s-manager", "tok", domain.User{
		ID: "m1", Username: "omar", UserType: domain.UserTypeHiringManager,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	req := httptest.NewRequest(nethttp.MethodPost, "/portal/showroom/jobs/j1/apply", nil)
	req.AddCookie(&nethttp.Cookie{Name: "sid", Value: "s-manager"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != nethttp.StatusForbidden {
		t.Fatalf("expected 403 for a hiring manager apply, got %d", resp.StatusCode)
	}
}
