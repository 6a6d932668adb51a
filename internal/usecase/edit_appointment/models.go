package edit_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/pkg/types"
)

// Request модель запроса на редактирование записи. nil - поле не меняется.
type Request struct {
	Actor         domain.Actor
	AppointmentID uuid.UUID

	ServiceIDs *[]uuid.UUID      // если передан, не может быть пустым
	Date       *time.Time        // новая дата
	StartTime  *types.TimeString // новое время
	Notes      *string           // пустая строка очищает заметки
}

// hasChanges хотя бы одно поле передано
func (r *Request) hasChanges() bool {
	return r.ServiceIDs != nil || r.Date != nil || r.StartTime != nil || r.Notes != nil
}
