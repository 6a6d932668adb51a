package cancel_appointment

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
)

// validateRequest проверяет форму запроса; причина обязательна только для клиента
func validateRequest(req *Request) error {
	v := &domain.ValidationError{}

	if req.AppointmentID == uuid.Nil {
		v.Add("appointmentId", "is required")
	}

	reason := normalizeReason(req.Reason)
	switch {
	case reason == nil && !req.Actor.Role.IsAdmin():
		v.Add("reason", "cancellation reason is required")
	case reason != nil && len(*reason) > domain.MaxCancellationReasonLength:
		v.Add("reason", fmt.Sprintf("must be at most %d characters", domain.MaxCancellationReasonLength))
	}

	if err := v.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return nil
}

func normalizeReason(reason *string) *string {
	if reason == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*reason)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
