package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/snapgram/internal/adapters/files"
	"github.com/lcalzada-xor/snapgram/internal/adapters/web/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(s *Server) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.ClientIPMiddleware(s.TrustedProxies), middleware.AccessLog(s.log))

	bearer := middleware.BearerAuth(s.AuthService, s.log)
	refresh := middleware.RefreshAuth(s.AuthService, s.log)
	throttle := s.Limiter.Middleware

	protect := func(h http.HandlerFunc) http.Handler {
		return bearer(h)
	}
	session := func(h http.HandlerFunc) http.Handler {
		return refresh(h)
	}
	limited := func(h http.HandlerFunc) http.Handler {
		return throttle(h)
	}

	// Auth
	a := r.PathPrefix("/auth").Subrouter()
	a.Handle("/registration", limited(s.AuthHandler.HandleRegistration)).Methods(http.MethodPost)
	a.Handle("/registration-confirmation", limited(s.AuthHandler.HandleConfirmation)).Methods(http.MethodPost)
	a.Handle("/registration-email-resending", limited(s.AuthHandler.HandleResend)).Methods(http.MethodPost)
	a.Handle("/login", limited(s.AuthHandler.HandleLogin)).Methods(http.MethodPost)
	a.Handle("/refresh-token", session(s.AuthHandler.HandleRefresh)).Methods(http.MethodPost)
	a.Handle("/password-recovery", limited(s.AuthHandler.HandlePasswordRecovery)).Methods(http.MethodPost)
	a.Handle("/new-password", limited(s.AuthHandler.HandleNewPassword)).Methods(http.MethodPost)
	a.Handle("/logout", session(s.AuthHandler.HandleLogout)).Methods(http.MethodPost)
	a.Handle("/me", protect(s.AuthHandler.HandleMe)).Methods(http.MethodGet)

	// Devices and account activity
	sec := r.PathPrefix("/security").Subrouter()
	sec.Handle("/devices", session(s.DeviceHandler.HandleList)).Methods(http.MethodGet)
	sec.Handle("/devices", session(s.DeviceHandler.HandleTerminateOthers)).Methods(http.MethodDelete)
	sec.Handle("/devices/{deviceId}", session(s.DeviceHandler.HandleTerminate)).Methods(http.MethodDelete)
	sec.Handle("/audit-logs", protect(s.AuditHandler.HandleGetLogs)).Methods(http.MethodGet)

	// Profile and posts
	u := r.PathPrefix("/user").Subrouter()
	u.Handle("/profile", protect(s.ProfileHandler.HandleGet)).Methods(http.MethodGet)
	u.Handle("/profile", protect(s.ProfileHandler.HandleUpdate)).Methods(http.MethodPut)
	u.Handle("/profile", protect(s.ProfileHandler.HandleDelete)).Methods(http.MethodDelete)
	u.Handle("/post", protect(s.PostHandler.HandleCreate)).Methods(http.MethodPost)
	u.HandleFunc("/post/{id}", s.PostHandler.HandleGet).Methods(http.MethodGet)
	u.Handle("/post/{id}", protect(s.PostHandler.HandleUpdate)).Methods(http.MethodPut)
	u.Handle("/post/{id}", protect(s.PostHandler.HandleDelete)).Methods(http.MethodDelete)
	u.Handle("/posts", protect(s.PostHandler.HandleListMine)).Methods(http.MethodGet)
	u.HandleFunc("/{userId}/posts", s.PostHandler.HandleListByUser).Methods(http.MethodGet)

	if s.TestingRoutes {
		r.HandleFunc("/testing/all-data", s.TestingHandler.HandleDeleteAll).Methods(http.MethodDelete)
	}

	// Uploaded content
	content := http.StripPrefix(files.URLPrefix, http.FileServer(filesOnly{root: http.Dir(s.ContentDir)}))
	r.PathPrefix(files.URLPrefix).Handler(content).Methods(http.MethodGet, http.MethodHead)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.HealthHandler.HandleHealth).Methods(http.MethodGet)

	return r
}
