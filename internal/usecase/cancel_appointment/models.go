package cancel_appointment

import (
	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
)

// Result чем закончилась отмена
type Result string

const (
	ResultCancelled        Result = "cancelled"
	ResultDeleted          Result = "deleted" // блокировка снята
	ResultAlreadyCancelled Result = "already_cancelled"
	ResultNotFound         Result = "not_found"
)

// Request модель запроса на отмену
type Request struct {
	Actor         domain.Actor
	AppointmentID uuid.UUID
	Reason        *string // обязательна для клиента
}

// Response модель ответа
type Response struct {
	AppointmentID uuid.UUID
	Result        Result
}
