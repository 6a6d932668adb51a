package cancel_appointment

import (
	"github.com/google/uuid"

	cancelAppointment "github.com/david021dp/salon-booking/internal/usecase/cancel_appointment"
)

// CancelAppointmentRequest HTTP request model; причина обязательна для клиента
type CancelAppointmentRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// CancelAppointmentResponse HTTP response model
type CancelAppointmentResponse struct {
	AppointmentID uuid.UUID `json:"appointmentId"`
	Result        string    `json:"result"` // cancelled | deleted | already_cancelled | not_found
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelAppointment.Response) *CancelAppointmentResponse {
	return &CancelAppointmentResponse{
		AppointmentID: resp.AppointmentID,
		Result:        string(resp.Result),
	}
}
