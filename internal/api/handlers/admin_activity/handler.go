package admin_activity

import (
	"errors"
	"net/http"

	"github.com/david021dp/salon-booking/internal/api/handlers"
	"github.com/david021dp/salon-booking/internal/api/middleware"
	"github.com/david021dp/salon-booking/internal/service/audit"
)

const (
	msgMissingIdentity = "отсутствуют данные пользователя"
	msgAccessDenied    = "журнал доступен только администраторам"
)

type Handler struct {
	service AuditService
	logger  Logger
}

func NewHandler(service AuditService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/activity
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	list, err := h.service.ListOwn(r.Context(), actor)
	if err != nil {
		switch {
		case errors.Is(err, audit.ErrAccessDenied):
			h.logger.Warn("GET /admin/activity - Access denied: user_id=%s", actor.ID)
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("GET /admin/activity - Failed to list activity: user_id=%s, error=%v", actor.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
