package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/tarotlyfe/tarotlyfe/internal/auth/http"
	"github.com/tarotlyfe/tarotlyfe/internal/auth/mail"
	"github.com/tarotlyfe/tarotlyfe/internal/auth/service"
	"github.com/tarotlyfe/tarotlyfe/internal/auth/store"
	"github.com/tarotlyfe/tarotlyfe/internal/auth/store/drivers/sqlite"
	"github.com/tarotlyfe/tarotlyfe/pkg/cryptox"
	"github.com/tarotlyfe/tarotlyfe/pkg/httpx"
	"github.com/tarotlyfe/tarotlyfe/pkg/jwtx"
	"github.com/tarotlyfe/tarotlyfe/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"

	metricsNamespace = "tarotlyfe_auth"
)

// Application encapsulates the auth service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	signer *jwtx.HS256

	tokenService        *service.TokenService
	authService         *service.AuthService
	resetService        *service.PasswordResetService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "auth-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, err := jwtx.NewHS256([]byte(app.cfg.JWT.Secret), app.cfg.JWT.Issuer)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize JWT signer: %w", err)
	}
	app.signer = signer

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
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

func (app *Application) initServices() {
	app.tokenService = &service.TokenService{
		Signer:    app.signer,
		Verifier:  app.signer,
		Issuer:    app.cfg.JWT.Issuer,
		AccessTTL: app.cfg.JWT.AccessTTL,
	}

	app.authService = &service.AuthService{
		Store:  app.db,
		Tokens: app.tokenService,
	}

	app.resetService = &service.PasswordResetService{
		Store:       app.db,
		Tokens:      app.tokenService,
		Mailer:      app.newMailer(),
		ResetTTL:    app.cfg.Reset.TTL,
		FrontendURL: app.cfg.Reset.FrontendURL,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) newMailer() mail.Sender {
	if app.cfg.Email.Provider == "smtp" {
		return mail.NewSMTPSender(
			app.cfg.Email.SMTPAddr,
			app.cfg.Email.From,
			app.cfg.Email.SMTPUsername,
			app.cfg.Email.SMTPPassword,
		)
	}
	return mail.NewConsoleSender()
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		BuildVersion,
		app.db,
		app.logger,
		httpx.NewMetrics(metricsNamespace),
		httpapi.CookieConfig{
			Domain:   app.cfg.Cookie.Domain,
			Path:     app.cfg.Cookie.Path,
			Secure:   app.cfg.Cookie.Secure,
			SameSite: app.cfg.SameSiteMode(),
			MaxAge:   app.cfg.Cookie.MaxAge,
		},
		app.cfg.CORS.Origin,
	)

	router.AuthService = app.authService
	router.ResetService = app.resetService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
