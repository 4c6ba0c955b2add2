package handlers

import (
	"net/http"

	"github.com/lcalzada-xor/snapgram/internal/adapters/web/response"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// TestingHandler exposes data reset for end-to-end suites.
type TestingHandler struct {
	Service ports.MaintenanceService
	Log     logrus.FieldLogger
}

func NewTestingHandler(service ports.MaintenanceService, log logrus.FieldLogger) *TestingHandler {
	return &TestingHandler{Service: service, Log: log}
}

// HandleDeleteAll wipes every table and all uploaded content.
func (h *TestingHandler) HandleDeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteAllData(r.Context()); err != nil {
		response.Error(w, r, h.Log, err)
		return
	}
	h.Log.Warn("all data deleted")
	response.NoContent(w)
}
