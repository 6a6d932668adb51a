package edit_appointment

import (
	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/api/handlers"
	"github.com/david021dp/salon-booking/internal/domain"
	editAppointment "github.com/david021dp/salon-booking/internal/usecase/edit_appointment"
	"github.com/david021dp/salon-booking/pkg/types"
)

// EditAppointmentRequest HTTP request model; отсутствующие поля не меняются
type EditAppointmentRequest struct {
	ServiceIDs *[]uuid.UUID `json:"serviceIds,omitempty"`
	Date       *string      `json:"date,omitempty"`
	StartTime  *string      `json:"startTime,omitempty"`
	Notes      *string      `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *EditAppointmentRequest) ToUseCaseRequest(actor domain.Actor, appointmentID uuid.UUID) (*editAppointment.Request, error) {
	req := &editAppointment.Request{
		Actor:         actor,
		AppointmentID: appointmentID,
		ServiceIDs:    r.ServiceIDs,
		Notes:         r.Notes,
	}

	if r.Date != nil {
		date, err := handlers.ParseDate(*r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &start
	}

	return req, nil
}
