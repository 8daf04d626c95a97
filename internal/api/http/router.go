package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mustakbalak/portal/internal/api/http/handlers"
	"github.com/mustakbalak/portal/internal/domain"
	"github.com/mustakbalak/portal/internal/guard"
	"github.com/mustakbalak/portal/internal/session"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Session       *handlers.SessionHandler
	Forms         *handlers.FormsHandler
	Showroom      *handlers.ShowroomHandler
	Jobs          *handlers.JobsHandler
	Applications  *handlers.ApplicationsHandler
	Profile       *handlers.ProfileHandler
	Notifications *handlers.NotificationsHandler

	Sessions   *session.Store
	CookieName string
	SessionTTL time.Duration
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	portal := app.Group("/portal", guard.SessionCookie(cfg.CookieName, cfg.SessionTTL))

	portal.Post("/auth/login", cfg.Session.Login)
	portal.Post("/auth/logout", cfg.Session.Logout)
	portal.Post("/hiring-manager/login", cfg.Session.HiringManagerLogin)
	portal.Get("/session", cfg.Session.Session)
	portal.Get("/notifications", cfg.Notifications.List)

	// The form manager itself rejects anonymous starts of forms that
	// need a session, so signup stays reachable logged out.
	form := portal.Group("/forms/:form")
	form.Post("/start", cfg.Forms.Start)
	form.Get("", cfg.Forms.State)
	form.Delete("", cfg.Forms.Discard)
	form.Put("/fields", cfg.Forms.SetField)
	form.Post("/next", cfg.Forms.Next)
	form.Post("/back", cfg.Forms.Back)
	form.Post("/goto/:step", cfg.Forms.Goto)
	form.Post("/entries/:section", cfg.Forms.AddEntry)
	form.Put("/entries/:section", cfg.Forms.SetEntryField)
	form.Delete("/entries/:section/:index", cfg.Forms.RemoveEntry)
	form.Post("/items/:section", cfg.Forms.AddListItem)
	form.Put("/items/:section", cfg.Forms.SetListItem)
	form.Delete("/items/:section/:index", cfg.Forms.RemoveListItem)
	form.Post("/submit", cfg.Forms.Submit)

	// Browsing the showroom requires a login of either role; applying
	// stays seeker-only.
	showroom := portal.Group("/showroom", guard.RequireRole(cfg.Sessions, ""))
	showroom.Get("/jobs", cfg.Showroom.Jobs)
	showroom.Get("/jobs/:id", cfg.Showroom.Job)
	showroom.Get("/filters", cfg.Showroom.Filters)
	showroom.Put("/filters", cfg.Showroom.SetFilters)
	showroom.Post("/filters/apply", cfg.Showroom.ApplyFilters)
	showroom.Post("/filters/reset", cfg.Showroom.ResetFilters)
	showroom.Post("/jobs/:id/apply", guard.RequireRole(cfg.Sessions, domain.UserTypeJobSeeker), cfg.Showroom.Apply)

	jobs := portal.Group("/jobs", guard.RequireRole(cfg.Sessions, domain.UserTypeHiringManager))
	jobs.Get("", cfg.Jobs.List)
	jobs.Get("/:id", cfg.Jobs.Get)
	jobs.Delete("/:id", cfg.Jobs.Delete)

	applications := portal.Group("/applications")
	applications.Get("", guard.RequireRole(cfg.Sessions, domain.UserTypeJobSeeker), cfg.Applications.ListMine)
	applications.Get("/received", guard.RequireRole(cfg.Sessions, domain.UserTypeHiringManager), cfg.Applications.ListReceived)
	applications.Get("/:id", guard.RequireRole(cfg.Sessions, ""), cfg.Applications.Get)
	applications.Put("/:id/status", guard.RequireRole(cfg.Sessions, domain.UserTypeHiringManager), cfg.Applications.UpdateStatus)

	profile := portal.Group("/profile", guard.RequireRole(cfg.Sessions, ""))
	profile.Get("", cfg.Profile.Get)
	profile.Delete("", cfg.Profile.Delete)
}
