package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lcalzada-xor/snapgram/internal/adapters/email"
	"github.com/lcalzada-xor/snapgram/internal/adapters/files"
	"github.com/lcalzada-xor/snapgram/internal/adapters/password"
	"github.com/lcalzada-xor/snapgram/internal/adapters/storage"
	"github.com/lcalzada-xor/snapgram/internal/adapters/token"
	"github.com/lcalzada-xor/snapgram/internal/adapters/web/middleware"
	webserver "github.com/lcalzada-xor/snapgram/internal/adapters/web/server"
	"github.com/lcalzada-xor/snapgram/internal/config"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"github.com/lcalzada-xor/snapgram/internal/core/services/audit"
	"github.com/lcalzada-xor/snapgram/internal/core/services/auth"
	"github.com/lcalzada-xor/snapgram/internal/core/services/maintenance"
	"github.com/lcalzada-xor/snapgram/internal/core/services/posts"
	"github.com/lcalzada-xor/snapgram/internal/core/services/profile"
	"github.com/lcalzada-xor/snapgram/internal/core/services/sessions"
	"github.com/lcalzada-xor/snapgram/internal/telemetry"
	"github.com/sirupsen/logrus"
)

// Application holds the core components of the application.
// It acts as the Facade for the entire system, orchestrating services and infrastructure.
type Application struct {
	Config *config.Config
	Log    logrus.FieldLogger

	Store       *storage.SQLiteAdapter
	Content     *files.LocalStorage
	AuthService *auth.AuthService
	Maintenance *maintenance.Service
	Janitor     *maintenance.Janitor
	WebServer   *webserver.Server
}

// New creates a new Application instance and bootstraps its components.
func New(cfg *config.Config, log logrus.FieldLogger) (*Application, error) {
	app := &Application{
		Config: cfg,
		Log:    log,
	}

	if err := app.bootstrap(); err != nil {
		if app.Store != nil {
			app.Store.Close()
		}
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}

	return app, nil
}

// bootstrap orchestrates the initialization sequence.
func (app *Application) bootstrap() error {
	// 1. Foundation & Infrastructure
	telemetry.InitMetrics()

	store, err := app.initStorage()
	if err != nil {
		return err
	}
	app.Store = store

	content, err := files.NewLocalStorage(app.Config.ContentDir, app.Config.PublicURL)
	if err != nil {
		return fmt.Errorf("failed to init content storage: %w", err)
	}
	app.Content = content

	tokens, err := token.New(app.Config.Token.AccessSecret, app.Config.Token.RefreshSecret, app.Config.Token.AccessTTL, app.Config.Token.RefreshTTL)
	if err != nil {
		return fmt.Errorf("failed to init token issuer: %w", err)
	}

	mailer, err := app.initMailer()
	if err != nil {
		return err
	}

	// 2. Domain Services
	users := store.Users()
	deviceSessions := store.Sessions()

	auditService := audit.NewAuditService(store, app.Log.WithField("component", "audit"))

	app.AuthService = auth.NewAuthService(auth.Deps{
		Users:    users,
		Sessions: deviceSessions,
		Tokens:   tokens,
		Hasher:   password.NewBcryptHasher(0),
		Mailer:   mailer,
		Audit:    auditService,
		Log:      app.Log.WithField("component", "auth"),
	}, auth.Config{
		ConfirmationTTL: app.Config.ConfirmationTTL,
		RecoveryTTL:     app.Config.RecoveryTTL,
	})

	sessionService := sessions.NewService(deviceSessions, auditService)
	profileService := profile.NewService(users, store.Profiles(), content, auditService, app.Log.WithField("component", "profile"))
	postService := posts.NewService(store.Posts(), content, auditService, app.Log.WithField("component", "posts"))

	app.Maintenance = maintenance.NewService(store, users, deviceSessions, content, app.Log.WithField("component", "maintenance"))
	app.Janitor, err = maintenance.NewJanitor(app.Maintenance, app.Config.JanitorSpec, app.Log.WithField("component", "janitor"))
	if err != nil {
		return err
	}

	// 3. Servers
	trusted, err := middleware.ParseTrustedProxies(app.Config.TrustedProxies)
	if err != nil {
		return err
	}
	app.WebServer = webserver.NewServer(webserver.Options{
		Addr:           app.Config.Addr,
		ContentDir:     content.Root(),
		DefaultOrigin:  app.Config.DefaultOrigin,
		TestingRoutes:  app.Config.TestingRoutes,
		LoginRate:      app.Config.LoginRate,
		LoginBurst:     app.Config.LoginBurst,
		TrustedProxies: trusted,
		Auth:           app.AuthService,
		Sessions:       sessionService,
		Profiles:       profileService,
		Posts:          postService,
		Audit:          auditService,
		Maintenance:    app.Maintenance,
		DB:             store,
		Log:            app.Log,
	})

	if app.Config.TestingRoutes {
		app.Log.Warn("testing routes enabled: DELETE /testing/all-data wipes every table")
	}
	return nil
}

func (app *Application) initStorage() (*storage.SQLiteAdapter, error) {
	if err := os.MkdirAll(filepath.Dir(app.Config.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create DB directory: %w", err)
	}

	store, err := storage.NewSQLiteAdapter(app.Config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to init system storage: %w", err)
	}
	return store, nil
}

func (app *Application) initMailer() (ports.Mailer, error) {
	if app.Config.MockMail {
		app.Log.Info("mock mail active: emails are logged, not sent")
		return email.NewLogMailer(app.Log.WithField("component", "mail"), app.Config.SMTP.FromName)
	}

	mailer, err := email.NewSMTPMailer(app.Config.SMTP)
	if err != nil {
		return nil, fmt.Errorf("failed to init mailer: %w", err)
	}
	return mailer, nil
}

// Run starts the application components and manages their execution lifecycle.
func (app *Application) Run(ctx context.Context) error {
	app.Log.Info("starting snapgram components")

	app.Janitor.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		app.Janitor.Stop(stopCtx)
	}()

	errChan := make(chan error, 1)
	go func() {
		if err := app.WebServer.Run(ctx); err != nil {
			errChan <- fmt.Errorf("web server error: %w", err)
		}
	}()

	app.Log.Info("snapgram ready, press Ctrl+C to terminate")

	select {
	case <-ctx.Done():
		app.Log.Info("termination signal received")
		return nil
	case err := <-errChan:
		return err
	}
}

// Close releases the database handle.
func (app *Application) Close() error {
	if app.Store == nil {
		return nil
	}
	return app.Store.Close()
}
