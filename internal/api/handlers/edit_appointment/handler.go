package edit_appointment

import (
	"errors"
	"net/http"

	"github.com/david021dp/salon-booking/internal/api/handlers"
	"github.com/david021dp/salon-booking/internal/api/middleware"
	"github.com/david021dp/salon-booking/internal/service/appointments/models"
	editAppointment "github.com/david021dp/salon-booking/internal/usecase/edit_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateTime      = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput         = "некорректные данные записи"
	msgNotFound             = "запись не найдена"
	msgNotEditable          = "редактировать можно только активную запись"
	msgServiceNotFound      = "одна или несколько услуг не найдены"
	msgSlotNotAvailable     = "this time slot is already booked, please select another"
	msgForbidden            = "доступ запрещен"
	msgMissingIdentity      = "отсутствуют данные пользователя"
)

type Handler struct {
	useCase EditAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase EditAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	appointmentID, err := handlers.PathUUID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req EditAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, appointmentID)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, editAppointment.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id} - Access denied: user_id=%s", actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, editAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id} - Invalid input: appointment_id=%s, %v", appointmentID, err)
			handlers.RespondValidationError(w, msgInvalidInput, err)

		case errors.Is(err, editAppointment.ErrServiceNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Service not found: appointment_id=%s", appointmentID)
			handlers.RespondBadRequest(w, msgServiceNotFound)

		case errors.Is(err, editAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, editAppointment.ErrNotEditable):
			h.logger.Warn("PATCH /appointments/{id} - Not editable: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgNotEditable)

		case errors.Is(err, editAppointment.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /appointments/{id} - Slot not available: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		default:
			h.logger.Error("PATCH /appointments/{id} - Failed to edit appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id} - Appointment updated: appointment_id=%s, rescheduled=%t",
		appointmentID, result.IsRescheduled)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAppointment(result))
}
