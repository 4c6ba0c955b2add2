package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/lcalzada-xor/snapgram/internal/adapters/web/response"
	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"github.com/sirupsen/logrus"
)

type contextKey string

const ClaimsContextKey contextKey = "claims"

// RefreshCookie carries the refresh token.
const RefreshCookie = "refreshToken"

var errMissingToken = domain.Unauthorized("missing token")

// BearerAuth requires a valid access token in the Authorization header.
func BearerAuth(authService ports.AuthService, log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				response.Error(w, r, log, errMissingToken)
				return
			}

			claims, err := authService.VerifyAccess(r.Context(), token)
			if err != nil {
				response.Error(w, r, log, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RefreshAuth requires a refresh token cookie that still matches its device
// session.
func RefreshAuth(authService ports.AuthService, log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(RefreshCookie)
			if err != nil || cookie.Value == "" {
				response.Error(w, r, log, errMissingToken)
				return
			}

			claims, err := authService.VerifyRefresh(r.Context(), cookie.Value)
			if err != nil {
				response.Error(w, r, log, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims stores verified token claims in ctx.
func WithClaims(ctx context.Context, claims domain.Claims) context.Context {
	return context.WithValue(ctx, ClaimsContextKey, claims)
}

// ClaimsFrom returns the claims stored by one of the auth middlewares.
func ClaimsFrom(ctx context.Context) (domain.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(domain.Claims)
	return claims, ok
}
