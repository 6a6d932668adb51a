package edit_appointment

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
)

// validateRequest проверяет форму запроса
func validateRequest(req *Request) error {
	v := &domain.ValidationError{}

	if req.AppointmentID == uuid.Nil {
		v.Add("appointmentId", "is required")
	}

	if !req.hasChanges() {
		v.Add("body", "nothing to update")
	}

	if req.ServiceIDs != nil && len(*req.ServiceIDs) == 0 {
		v.Add("serviceIds", "at least one service must be selected")
	}

	if req.Date != nil && req.Date.IsZero() {
		v.Add("date", "is required")
	}

	if req.StartTime != nil && !domain.IsGridAligned(*req.StartTime) {
		v.Add("startTime", "must be a 15-minute slot between 09:00 and 20:45")
	}

	domain.ValidateNotes(v, "notes", req.Notes)

	if err := v.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return nil
}
