package get_worker_appointments

import (
	"errors"
	"net/http"

	"github.com/david021dp/salon-booking/internal/api/handlers"
	"github.com/david021dp/salon-booking/internal/api/middleware"
	"github.com/david021dp/salon-booking/internal/service/appointments"
	"github.com/david021dp/salon-booking/internal/service/appointments/models"
)

const (
	msgInvalidWorkerID = "некорректный ID мастера"
	msgInvalidDate     = "некорректная дата, ожидается YYYY-MM-DD"
	msgInvalidStatus   = "некорректный статус записи"
	msgMissingIdentity = "отсутствуют данные пользователя"
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

// Handle GET /api/v1/workers/{workerId}/appointments?date=2025-10-15&status=scheduled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	workerID, err := handlers.PathUUID(r, "workerId")
	if err != nil {
		h.logger.Warn("GET /workers/{id}/appointments - Invalid worker ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	req := &models.GetWorkerScheduleRequest{
		Actor:    actor,
		WorkerID: workerID,
	}

	query := r.URL.Query()
	if raw := query.Get("date"); raw != "" {
		date, err := handlers.ParseDate(raw)
		if err != nil {
			h.logger.Warn("GET /workers/{id}/appointments - Invalid date: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	list, err := h.service.GetWorkerSchedule(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /workers/{id}/appointments - Access denied: user_id=%s", actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /workers/{id}/appointments - Failed to get schedule: worker_id=%s, error=%v", workerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /workers/{id}/appointments - Retrieved %d appointments: worker_id=%s",
		len(list.Appointments), workerID)
	handlers.RespondJSON(w, http.StatusOK, list)
}
