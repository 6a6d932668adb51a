package get_available_slots

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.WorkerID == uuid.Nil {
		return fmt.Errorf("%w: workerId is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	hasDuration := req.DurationMinutes != nil
	hasServices := len(req.ServiceIDs) > 0

	switch {
	case hasDuration && hasServices:
		return fmt.Errorf("%w: specify either duration or serviceIds, not both", ErrInvalidInput)
	case !hasDuration && !hasServices:
		return fmt.Errorf("%w: duration or serviceIds is required", ErrInvalidInput)
	}

	// полнодневная блокировка тоже проверяется по сетке
	if hasDuration && (*req.DurationMinutes < 0 || *req.DurationMinutes > domain.FullDayBlockMinutes) {
		return fmt.Errorf("%w: duration must be between 0 and %d minutes", ErrInvalidInput, domain.FullDayBlockMinutes)
	}

	return nil
}
