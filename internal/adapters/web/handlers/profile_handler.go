package handlers

import (
	"net/http"

	"github.com/lcalzada-xor/snapgram/internal/adapters/web/middleware"
	"github.com/lcalzada-xor/snapgram/internal/adapters/web/response"
	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// ProfileHandler serves /user/profile for the bearer of the access token.
type ProfileHandler struct {
	Service ports.ProfileService
	Log     logrus.FieldLogger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(service ports.ProfileService, log logrus.FieldLogger) *ProfileHandler {
	return &ProfileHandler{Service: service, Log: log}
}

func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		response.Error(w, r, h.Log, domain.ErrUnauthorized)
		return
	}

	view, err := h.Service.Get(r.Context(), claims.UserID)
	if err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, view)
}

// HandleUpdate reads the multipart profile form with an optional avatar.
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		response.Error(w, r, h.Log, domain.ErrUnauthorized)
		return
	}

	if err := parseMultipart(w, r); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	in := domain.UpdateProfileInput{
		Username: r.FormValue("username"),
		Name:     r.FormValue("name"),
		SurName:  r.FormValue("surName"),
		Birthday: r.FormValue("birthday"),
		City:     r.FormValue("city"),
		AboutMe:  r.FormValue("aboutMe"),
	}
	if err := validateInput(in); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}

	avatar, release, err := formFile(r, "avatar")
	if err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	defer release()

	if err := h.Service.Update(r.Context(), claims.UserID, in, avatar); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	response.NoContent(w)
}

func (h *ProfileHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		response.Error(w, r, h.Log, domain.ErrUnauthorized)
		return
	}

	if err := h.Service.Delete(r.Context(), claims.UserID); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	response.NoContent(w)
}
