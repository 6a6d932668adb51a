package create_appointment

import (
	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/api/handlers"
	"github.com/david021dp/salon-booking/internal/domain"
	createAppointment "github.com/david021dp/salon-booking/internal/usecase/create_appointment"
	"github.com/david021dp/salon-booking/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	WorkerID   uuid.UUID   `json:"workerId"`
	ServiceIDs []uuid.UUID `json:"serviceIds"`
	Date       string      `json:"date"`      // "2025-03-15"
	StartTime  string      `json:"startTime"` // "10:00"
	FirstName  string      `json:"firstName"`
	LastName   string      `json:"lastName"`
	Phone      *string     `json:"phone,omitempty"`
	Email      string      `json:"email"` // для админа берется из профиля
	Notes      *string     `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(actor domain.Actor) (*createAppointment.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		Actor:      actor,
		WorkerID:   r.WorkerID,
		ServiceIDs: r.ServiceIDs,
		Date:       date,
		StartTime:  startTime,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Phone:      r.Phone,
		Email:      r.Email,
		Notes:      r.Notes,
	}, nil
}
