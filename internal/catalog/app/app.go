package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/aicatalog/internal/catalog/codestore"
	httpapi "github.com/aussiebroadwan/aicatalog/internal/catalog/http"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/notify"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/service"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/store"
	"github.com/aussiebroadwan/aicatalog/internal/catalog/store/drivers/sqlite"
	"github.com/aussiebroadwan/aicatalog/pkg/cryptox"
	"github.com/aussiebroadwan/aicatalog/pkg/sessionx"
	"github.com/aussiebroadwan/aicatalog/pkg/slogx"
)

// BuildVersion is overridden at build time with
// -ldflags "-X github.com/aussiebroadwan/aicatalog/internal/catalog/app.BuildVersion=...".
var BuildVersion = "v0.1.0"

// Application owns every long-lived dependency of the catalog service.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	codes  codestore.Store
	tokens *sessionx.HS256
	sender notify.MessageSender

	activityService     *service.ActivityService
	twoFactorService    *service.TwoFactorService
	authService         *service.AuthService
	userAdminService    *service.UserAdminService
	catalogService      *service.CatalogService
	statsService        *service.StatsService
	housekeepingService *service.HousekeepingService
	viewCounter         *service.ViewCounter
	dispatcher          *notify.Dispatcher

	server *http.Server
	router *httpapi.Router
}

func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "catalog-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	tokens, err := InitSessionKeys(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.tokens = tokens

	app.initCodeStore()
	if err := app.initSenders(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the workers and the server, creates the bootstrap owner if
// configured, and blocks until shutdown is requested.
func (app *Application) Run() error {
	ctx := slogx.WithContext(context.Background(), app.logger)
	if _, err := app.authService.BootstrapOwner(ctx, app.cfg.BootstrapOwner); err != nil {
		return fmt.Errorf("bootstrap owner: %w", err)
	}

	app.housekeepingService.Start()
	app.viewCounter.Start()
	app.dispatcher.Start()

	app.logger.Info("catalog service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.stopWorkers()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown stops accepting requests, drains the workers, then closes the
// stores.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down catalog service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.stopWorkers()

	if r, ok := app.codes.(*codestore.Redis); ok {
		if err := r.Close(); err != nil {
			app.logger.Error("error closing redis", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("catalog service stopped")
	return nil
}

// stopWorkers drains queued views and notifications.
func (app *Application) stopWorkers() {
	app.housekeepingService.Stop()
	app.viewCounter.Stop()
	app.dispatcher.Stop()
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initCodeStore() {
	if app.cfg.CodeStore == "redis" {
		app.codes = codestore.NewRedis(app.cfg.Redis)
		app.logger.Info("using redis code store", "addr", app.cfg.Redis.Addr, "db", app.cfg.Redis.DB)
		return
	}
	app.codes = codestore.NewMemory()
	app.logger.Info("using in-memory code store")
}

// initSenders picks a real channel where one is configured and falls back
// to logging the message otherwise.
func (app *Application) initSenders() error {
	var mux notify.Mux

	switch app.cfg.EmailProvider {
	case "resend":
		s, err := notify.NewResendSender(app.cfg.ResendAPIKey, app.cfg.EmailFrom, app.cfg.DeliveryTimeout)
		if err != nil {
			return fmt.Errorf("failed to initialize email sender: %w", err)
		}
		mux.Email = s
		app.logger.Info("email delivery via resend", "from", app.cfg.EmailFrom)
	default:
		mux.Email = notify.LogSender{}
		app.logger.Warn("email delivery disabled, codes will be logged")
	}

	if app.cfg.TelegramBotToken != "" {
		mux.Telegram = notify.NewTelegramBotSender(app.cfg.TelegramBotToken, app.cfg.TelegramAPIEndpoint, app.cfg.DeliveryTimeout)
		app.logger.Info("telegram delivery enabled")
	} else {
		mux.Telegram = notify.LogSender{}
		app.logger.Warn("telegram delivery disabled, codes will be logged")
	}

	app.sender = mux
	return nil
}

func (app *Application) initServices() {
	app.activityService = &service.ActivityService{Store: app.db}

	app.twoFactorService = &service.TwoFactorService{
		Store:    app.db,
		Codes:    app.codes,
		Sender:   app.sender,
		Activity: app.activityService,
		Issuer:   app.cfg.Issuer,
	}

	app.authService = &service.AuthService{
		Store:      app.db,
		TwoFactor:  app.twoFactorService,
		Tokens:     app.tokens,
		Issuer:     app.cfg.Issuer,
		SessionTTL: app.cfg.SessionTTL,
	}

	app.dispatcher = notify.NewDispatcher(app.sender, app.logger, app.cfg.NotifyQueueSize, app.cfg.DeliveryTimeout)
	app.userAdminService = &service.UserAdminService{
		Store:    app.db,
		Notifier: app.dispatcher,
	}

	app.viewCounter = service.NewViewCounter(app.db, app.logger, app.cfg.ViewQueueSize)
	app.catalogService = &service.CatalogService{
		Store: app.db,
		Cache: app.codes,
		Views: app.viewCounter,
	}

	app.statsService = &service.StatsService{Store: app.db}

	// Redis expires keys on its own.
	var purger service.Purger
	if m, ok := app.codes.(*codestore.Memory); ok {
		purger = m
	}
	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		purger,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.codes, app.logger)

	router.AuthService = app.authService
	router.TwoFactorService = app.twoFactorService
	router.UserAdminService = app.userAdminService
	router.CatalogService = app.catalogService
	router.ActivityService = app.activityService
	router.StatsService = app.statsService
	router.CookieSecure = app.cfg.CookieSecure
	router.Limits = app.cfg.RateLimits
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
