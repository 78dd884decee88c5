package main

import (
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticketing-api/internal/api/http"
	"github.com/spec-kit/ticketing-api/internal/api/http/handlers"
	"github.com/spec-kit/ticketing-api/internal/auth"
	"github.com/spec-kit/ticketing-api/internal/domain"
	"github.com/spec-kit/ticketing-api/internal/events"
	"github.com/spec-kit/ticketing-api/internal/observability"
	"github.com/spec-kit/ticketing-api/internal/persistence"
	"github.com/spec-kit/ticketing-api/internal/service"
	"github.com/spec-kit/ticketing-api/internal/worker"
)

// ServeCmd returns the command that runs the HTTP server.
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, repos, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	bootstrap := service.NewBootstrapService(repos.Users, cfg.Auth.BcryptCost, logger)
	if _, err := bootstrap.EnsureAdmin(ctx, cfg.Bootstrap); err != nil {
		return err
	}

	dependencies := map[string]handlers.Pinger{cfg.Database.Driver: db}

	dispatcher := events.NewInMemoryDispatcher()
	var publisher service.Publisher
	if cfg.Notification.Enabled {
		redis := persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		publisher = redis
		dependencies["redis"] = redis
	}
	notifications := service.NewNotificationService(dispatcher, publisher, logger, cfg.Notification)
	worker.StartNotificationWorker(notifications, cfg.Notification, logger)

	lifecycle := service.LifecycleDependencies{
		TicketRepo:    repos.Tickets,
		WorkOrderRepo: repos.WorkOrders,
		Transactor:    repos.Transactor,
		Dispatcher:    dispatcher,
		Policy:        domain.ParseTransitionPolicy(cfg.Lifecycle.Strict),
	}
	authService := service.NewAuthService(*cfg, repos.Users)
	ticketService := service.NewTicketService(lifecycle)
	workOrderService := service.NewWorkOrderService(lifecycle)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		WorkOrders:     handlers.NewWorkOrdersHandler(workOrderService),
		Metrics:        handlers.NewMetricsHandler(metrics),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager()),
	})

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening",
			zap.String("addr", cfg.App.Addr()),
			zap.String("lifecycle_policy", string(lifecycle.Policy)))
		listenErr <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			return err
		}
		return errors.New("http server stopped unexpectedly")
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	return app.ShutdownWithTimeout(10 * time.Second)
}

var _ handlers.Pinger = (*persistence.Database)(nil)
