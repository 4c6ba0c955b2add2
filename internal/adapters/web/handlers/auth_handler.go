package handlers

import (
	"net/http"
	"time"

	"github.com/lcalzada-xor/snapgram/internal/adapters/web/middleware"
	"github.com/lcalzada-xor/snapgram/internal/adapters/web/response"
	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"github.com/sirupsen/logrus"
)

type confirmationRequest struct {
	Code string `json:"code" validate:"required"`
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type accessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// AuthHandler serves the /auth routes.
type AuthHandler struct {
	Service       ports.AuthService
	DefaultOrigin string
	Log           logrus.FieldLogger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service ports.AuthService, defaultOrigin string, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		Service:       service,
		DefaultOrigin: defaultOrigin,
		Log:           log,
	}
}

// HandleRegistration creates an account and sends the confirmation email.
func (h *AuthHandler) HandleRegistration(w http.ResponseWriter, r *http.Request) {
	var in domain.RegistrationInput
	if err := decodeJSON(w, r, &in); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}

	if err := h.Service.Register(r.Context(), in, origin(r, h.DefaultOrigin)); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	response.NoContent(w)
}

// HandleConfirmation confirms an email address.
func (h *AuthHandler) HandleConfirmation(w http.ResponseWriter, r *http.Request) {
	var in confirmationRequest
	if err := decodeJSON(w, r, &in); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}

	if err := h.Service.ConfirmRegistration(r.Context(), in.Code); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	response.NoContent(w)
}

// HandleResend sends a fresh confirmation email.
func (h *AuthHandler) HandleResend(w http.ResponseWriter, r *http.Request) {
	var in emailRequest
	if err := decodeJSON(w, r, &in); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}

	if err := h.Service.ResendConfirmation(r.Context(), in.Email, origin(r, h.DefaultOrigin)); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	response.NoContent(w)
}

// HandleLogin opens a session for a new device.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var creds domain.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}

	userAgent := r.UserAgent()
	if userAgent == "" {
		userAgent = "unknown device"
	}

	pair, err := h.Service.Login(r.Context(), creds, userAgent, middleware.ClientIP(r))
	if err != nil {
		response.Error(w, r, h.Log, err)
		return
	}

	setRefreshCookie(w, pair)
	response.JSON(w, http.StatusOK, accessTokenResponse{AccessToken: pair.AccessToken})
}

// HandleRefresh rotates the token pair of the current device.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		response.Error(w, r, h.Log, domain.ErrUnauthorized)
		return
	}

	pair, err := h.Service.RefreshTokens(r.Context(), claims, middleware.ClientIP(r))
	if err != nil {
		response.Error(w, r, h.Log, err)
		return
	}

	setRefreshCookie(w, pair)
	response.JSON(w, http.StatusOK, accessTokenResponse{AccessToken: pair.AccessToken})
}

// HandlePasswordRecovery emails a recovery code.
func (h *AuthHandler) HandlePasswordRecovery(w http.ResponseWriter, r *http.Request) {
	var in emailRequest
	if err := decodeJSON(w, r, &in); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}

	if err := h.Service.RecoverPassword(r.Context(), in.Email, origin(r, h.DefaultOrigin)); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	response.NoContent(w)
}

// HandleNewPassword sets a password from a recovery code.
func (h *AuthHandler) HandleNewPassword(w http.ResponseWriter, r *http.Request) {
	var in domain.NewPasswordInput
	if err := decodeJSON(w, r, &in); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}

	if err := h.Service.NewPassword(r.Context(), in); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	response.NoContent(w)
}

// HandleLogout closes the current device session and clears the cookie.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		response.Error(w, r, h.Log, domain.ErrUnauthorized)
		return
	}

	if err := h.Service.Logout(r.Context(), claims); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}

	clearRefreshCookie(w)
	response.NoContent(w)
}

// HandleMe returns the authenticated user.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		response.Error(w, r, h.Log, domain.ErrUnauthorized)
		return
	}

	me, err := h.Service.Me(r.Context(), claims.UserID)
	if err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, me)
}

func setRefreshCookie(w http.ResponseWriter, pair domain.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.RefreshCookie,
		Value:    pair.RefreshToken,
		Path:     "/",
		Expires:  pair.Refresh.ExpiresAt,
		MaxAge:   int(time.Until(pair.Refresh.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

func clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.RefreshCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
