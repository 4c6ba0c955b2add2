package handlers

import (
	"net/http"
	"strconv"

	"github.com/lcalzada-xor/snapgram/internal/adapters/web/middleware"
	"github.com/lcalzada-xor/snapgram/internal/adapters/web/response"
	"github.com/lcalzada-xor/snapgram/internal/core/domain"
	"github.com/lcalzada-xor/snapgram/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// AuditHandler handles audit logging operations
type AuditHandler struct {
	Service ports.AuditService
	Log     logrus.FieldLogger
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(service ports.AuditService, log logrus.FieldLogger) *AuditHandler {
	return &AuditHandler{
		Service: service,
		Log:     log,
	}
}

// HandleGetLogs returns the caller's recent account activity
func (h *AuditHandler) HandleGetLogs(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		response.Error(w, r, h.Log, domain.ErrUnauthorized)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := h.Service.GetLogs(r.Context(), claims.UserID, limit)
	if err != nil {
		response.Error(w, r, h.Log, err)
		return
	}

	if logs == nil {
		logs = []domain.AuditLog{}
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"logs": logs,
	})
}
