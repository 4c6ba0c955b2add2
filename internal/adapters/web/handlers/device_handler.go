package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lcalzada-xor/snapgram/internal/adapters/web/middleware"
	"github.com/lcalzada-xor/snapgram/internal/adapters/web/response"
	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// DeviceHandler serves /security/devices. Every route sits behind the
// refresh guard, so claims always carry a device id.
type DeviceHandler struct {
	Service ports.SessionService
	Log     logrus.FieldLogger
}

// NewDeviceHandler creates a new DeviceHandler
func NewDeviceHandler(service ports.SessionService, log logrus.FieldLogger) *DeviceHandler {
	return &DeviceHandler{Service: service, Log: log}
}

// HandleList returns the active devices of the user.
func (h *DeviceHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		response.Error(w, r, h.Log, domain.ErrUnauthorized)
		return
	}

	sessions, err := h.Service.List(r.Context(), claims.UserID)
	if err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	response.JSON(w, http.StatusOK, sessions)
}

// HandleTerminateOthers logs out every device except the current one.
func (h *DeviceHandler) HandleTerminateOthers(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		response.Error(w, r, h.Log, domain.ErrUnauthorized)
		return
	}

	if err := h.Service.TerminateOthers(r.Context(), claims.UserID, claims.DeviceID); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	response.NoContent(w)
}

// HandleTerminate logs out one device.
func (h *DeviceHandler) HandleTerminate(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		response.Error(w, r, h.Log, domain.ErrUnauthorized)
		return
	}

	deviceID := mux.Vars(r)["deviceId"]
	if err := h.Service.Terminate(r.Context(), claims.UserID, deviceID); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	response.NoContent(w)
}
