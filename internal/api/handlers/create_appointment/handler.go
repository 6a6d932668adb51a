package create_appointment

import (
	"errors"
	"net/http"

	"github.com/david021dp/salon-booking/internal/api/handlers"
	"github.com/david021dp/salon-booking/internal/api/middleware"
	"github.com/david021dp/salon-booking/internal/service/appointments/models"
	createAppointment "github.com/david021dp/salon-booking/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные данные записи"
	msgServiceNotFound    = "одна или несколько услуг не найдены"
	msgWorkerNotFound     = "мастер не найден"
	msgSlotNotAvailable   = "this time slot is already booked, please select another"
	msgDailyLimit         = "превышен дневной лимит записей"
	msgMissingIdentity    = "отсутствуют данные пользователя"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
// Клиент записывается сам, админ создает запись за клиента: различие по роли
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: user_id=%s, %v", actor.ID, err)
			handlers.RespondValidationError(w, msgInvalidInput, err)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: user_id=%s", actor.ID)
			handlers.RespondBadRequest(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrWorkerNotFound):
			h.logger.Warn("POST /appointments - Worker not found: worker_id=%s", req.WorkerID)
			handlers.RespondNotFound(w, msgWorkerNotFound)

		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: worker_id=%s, date=%s, time=%s",
				req.WorkerID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrDailyLimitExceeded):
			h.logger.Warn("POST /appointments - Daily limit exceeded: user_id=%s", actor.ID)
			handlers.RespondTooManyRequests(w, msgDailyLimit)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%s, worker_id=%s, error=%v",
				actor.ID, req.WorkerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%s, user_id=%s, worker_id=%s",
		result.ID, actor.ID, result.WorkerID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainAppointment(result))
}
