package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/mustakbalak/portal/internal/api/http"
	"github.com/mustakbalak/portal/internal/api/http/handlers"
	"github.com/mustakbalak/portal/internal/config"
	"github.com/mustakbalak/portal/internal/events"
	"github.com/mustakbalak/portal/internal/forms"
	"github.com/mustakbalak/portal/internal/notify"
	"github.com/mustakbalak/portal/internal/observability"
	"github.com/mustakbalak/portal/internal/persistence"
	"github.com/mustakbalak/portal/internal/session"
	"github.com/mustakbalak/portal/internal/showroom"
	"github.com/mustakbalak/portal/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		storage session.Storage
		cache   showroom.SnapshotCache
	)
	if err := redis.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, using in-memory session storage", zap.Error(err))
		storage = session.NewMemoryStorage()
		cache = showroom.NewMemorySnapshotCache(cfg.Showroom.SnapshotTTL())
		redis = nil
	} else {
		storage = session.NewRedisStorage(redis.Client, cfg.Session.TTL())
		cache = showroom.NewRedisSnapshotCache(redis.Client, cfg.Showroom.SnapshotTTL())
	}

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	sessions := session.NewStore(storage, logger)
	sessions.BindInvalidation(dispatcher)

	center := notify.NewCenter(logger)
	center.RegisterHandlers(dispatcher)

	client := upstream.New(cfg.Backend, logger)
	client.Use(upstream.NewAuthFailureStage(dispatcher))

	formManager := forms.NewManager(forms.Deps{
		Upstream:      client,
		Sessions:      sessions,
		Dispatcher:    dispatcher,
		Logger:        logger,
		NavigateDelay: cfg.Session.NavigateDelay(),
	})
	filterStates := showroom.NewStateManager()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redis),
		Session:       handlers.NewSessionHandler(client, sessions, formManager, filterStates, logger),
		Forms:         handlers.NewFormsHandler(formManager, cfg.Session.NavigateDelay()),
		Showroom:      handlers.NewShowroomHandler(client, sessions, filterStates, cache, dispatcher, logger),
		Jobs:          handlers.NewJobsHandler(client, cache, dispatcher, logger),
		Applications:  handlers.NewApplicationsHandler(client, dispatcher, logger),
		Profile:       handlers.NewProfileHandler(client, sessions, formManager, filterStates, logger),
		Notifications: handlers.NewNotificationsHandler(center),
		Sessions:      sessions,
		CookieName:    cfg.Session.CookieName,
		SessionTTL:    cfg.Session.TTL(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
