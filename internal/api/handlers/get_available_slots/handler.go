package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/david021dp/salon-booking/internal/api/handlers"
	"github.com/david021dp/salon-booking/internal/api/middleware"
	getAvailableSlots "github.com/david021dp/salon-booking/internal/usecase/get_available_slots"
)

const (
	msgInvalidWorkerID = "некорректный ID мастера"
	msgMissingDate     = "дата обязательна"
	msgInvalidQuery    = "некорректные параметры запроса: date YYYY-MM-DD, duration в минутах, serviceIds через запятую"
	msgInvalidInput    = "некорректные параметры запроса"
	msgServiceNotFound = "одна или несколько услуг не найдены"
	msgMissingIdentity = "отсутствуют данные пользователя"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/workers/{workerId}/available-slots
// Query params: date (required), duration или serviceIds
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	workerID, err := handlers.PathUUID(r, "workerId")
	if err != nil {
		h.logger.Warn("GET /workers/{id}/available-slots - Invalid worker ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	query := r.URL.Query()
	if query.Get("date") == "" {
		h.logger.Warn("GET /workers/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(actor, workerID, query.Get("date"), query.Get("duration"), query.Get("serviceIds"))
	if err != nil {
		h.logger.Warn("GET /workers/{id}/available-slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /workers/{id}/available-slots - Invalid input: worker_id=%s, %v", workerID, err)
			handlers.RespondValidationError(w, msgInvalidInput, err)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /workers/{id}/available-slots - Service not found: worker_id=%s", workerID)
			handlers.RespondBadRequest(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /workers/{id}/available-slots - Failed to get slots: worker_id=%s, error=%v", workerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /workers/{id}/available-slots - Slots retrieved: worker_id=%s, date=%s, duration=%d, available=%d",
		workerID, query.Get("date"), result.DurationMinutes, result.AvailableCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
