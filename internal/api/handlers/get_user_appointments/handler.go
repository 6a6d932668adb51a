package get_user_appointments

import (
	"errors"
	"net/http"

	"github.com/david021dp/salon-booking/internal/api/handlers"
	"github.com/david021dp/salon-booking/internal/api/middleware"
	"github.com/david021dp/salon-booking/internal/service/appointments"
	"github.com/david021dp/salon-booking/internal/service/appointments/models"
)

const (
	msgMissingIdentity = "отсутствуют данные пользователя"
	msgInvalidStatus   = "некорректный статус записи"
	msgForbidden       = "доступ запрещен"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/me/appointments?status=scheduled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /users/me/appointments - Missing actor")
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	req := &models.GetUserAppointmentsRequest{
		Actor:  actor,
		UserID: actor.ID,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	list, err := h.service.GetUserAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /users/me/appointments - Invalid status: user_id=%s", actor.ID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointments.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /users/me/appointments - Failed to get appointments: user_id=%s, error=%v", actor.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/me/appointments - Retrieved %d appointments: user_id=%s", len(list.Appointments), actor.ID)
	handlers.RespondJSON(w, http.StatusOK, list)
}
