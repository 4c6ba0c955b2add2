package server

import (
	"context"
	"net/http"
	"time"

	"github.com/lcalzada-xor/snapgram/internal/adapters/web/handlers"
	"github.com/lcalzada-xor/snapgram/internal/adapters/web/middleware"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Options carries everything the HTTP layer needs.
type Options struct {
	Addr          string
	ContentDir    string
	DefaultOrigin string
	TestingRoutes bool
	// LoginRate requests per 10 seconds per IP on the throttled auth routes.
	LoginRate  int
	LoginBurst int

	// TrustedProxies may set X-Forwarded-For. Everyone else is keyed by socket address.
	TrustedProxies middleware.TrustedProxies

	Auth        ports.AuthService
	Sessions    ports.SessionService
	Profiles    ports.ProfileService
	Posts       ports.PostService
	Audit       ports.AuditService
	Maintenance ports.MaintenanceService
	DB          handlers.Pinger

	Log logrus.FieldLogger
}

// Server handles HTTP connections.
type Server struct {
	Addr          string
	ContentDir    string
	TestingRoutes bool

	AuthService    ports.AuthService
	Limiter        *middleware.RateLimiter
	TrustedProxies middleware.TrustedProxies

	AuthHandler    *handlers.AuthHandler
	DeviceHandler  *handlers.DeviceHandler
	ProfileHandler *handlers.ProfileHandler
	PostHandler    *handlers.PostHandler
	AuditHandler   *handlers.AuditHandler
	TestingHandler *handlers.TestingHandler
	HealthHandler  *handlers.HealthHandler

	log logrus.FieldLogger
	srv *http.Server
}

// NewServer creates a new web server.
func NewServer(opts Options) *Server {
	log := opts.Log.WithField("component", "http")

	return &Server{
		Addr:          opts.Addr,
		ContentDir:    opts.ContentDir,
		TestingRoutes: opts.TestingRoutes,
		AuthService:   opts.Auth,
		Limiter:       middleware.NewRateLimiter(opts.LoginRate, 10*time.Second, opts.LoginBurst, log),

		TrustedProxies: opts.TrustedProxies,

		AuthHandler:    handlers.NewAuthHandler(opts.Auth, opts.DefaultOrigin, log),
		DeviceHandler:  handlers.NewDeviceHandler(opts.Sessions, log),
		ProfileHandler: handlers.NewProfileHandler(opts.Profiles, log),
		PostHandler:    handlers.NewPostHandler(opts.Posts, log),
		AuditHandler:   handlers.NewAuditHandler(opts.Audit, log),
		TestingHandler: handlers.NewTestingHandler(opts.Maintenance, log),
		HealthHandler:  handlers.NewHealthHandler(opts.DB),
		log:            log,
	}
}

// Handler returns the instrumented router.
func (s *Server) Handler() http.Handler {
	// "snapgram-server" is the name of the operation (span)
	return otelhttp.NewHandler(SetupRoutes(s), "snapgram-server")
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.Limiter.StartCleanup(time.Minute, ctx.Done())

	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown implementation
	go func() {
		<-ctx.Done()
		s.log.Info("web server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.log.WithError(err).Error("web server shutdown error")
		}
	}()

	s.log.WithField("addr", s.Addr).Info("web server listening")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
