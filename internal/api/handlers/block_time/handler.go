package block_time

import (
	"errors"
	"net/http"

	"github.com/david021dp/salon-booking/internal/api/handlers"
	"github.com/david021dp/salon-booking/internal/api/middleware"
	blockTime "github.com/david021dp/salon-booking/internal/usecase/block_time"
)

const (
	msgInvalidWorkerID    = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidInput       = "некорректные параметры блокировки"
	msgWorkerNotFound     = "мастер не найден"
	msgSlotNotAvailable   = "this time slot is already booked, please select another"
	msgForbidden          = "доступно только администраторам"
	msgMissingIdentity    = "отсутствуют данные пользователя"
)

type Handler struct {
	useCase BlockTimeUseCase
	logger  Logger
}

func NewHandler(useCase BlockTimeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/workers/{workerId}/blocks
// При конфликте посреди нескольких дней - 409 с уже созданными блокировками
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	workerID, err := handlers.PathUUID(r, "workerId")
	if err != nil {
		h.logger.Warn("POST /workers/{id}/blocks - Invalid worker ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWorkerID)
		return
	}

	var req BlockTimeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /workers/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, workerID)
	if err != nil {
		h.logger.Warn("POST /workers/{id}/blocks - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, blockTime.ErrAccessDenied):
			h.logger.Warn("POST /workers/{id}/blocks - Access denied: user_id=%s", actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, blockTime.ErrInvalidInput):
			h.logger.Warn("POST /workers/{id}/blocks - Invalid input: worker_id=%s, %v", workerID, err)
			handlers.RespondValidationError(w, msgInvalidInput, err)

		case errors.Is(err, blockTime.ErrWorkerNotFound):
			h.logger.Warn("POST /workers/{id}/blocks - Worker not found: worker_id=%s", workerID)
			handlers.RespondNotFound(w, msgWorkerNotFound)

		case errors.Is(err, blockTime.ErrSlotNotAvailable):
			h.logger.Warn("POST /workers/{id}/blocks - Slot not available: worker_id=%s", workerID)
			if result == nil || len(result.Blocks) == 0 {
				handlers.RespondConflict(w, msgSlotNotAvailable)
				return
			}
			partial := FromUseCaseResponse(result)
			partial.Error = msgSlotNotAvailable
			handlers.RespondJSON(w, http.StatusConflict, partial)

		default:
			h.logger.Error("POST /workers/{id}/blocks - Failed to block time: worker_id=%s, error=%v", workerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /workers/{id}/blocks - Time blocked: worker_id=%s, blocks=%d", workerID, len(result.Blocks))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
