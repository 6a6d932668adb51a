package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
)

// Request модель запроса на получение сетки слотов мастера
type Request struct {
	Actor           domain.Actor // кто спрашивает: клиенту прошедшее время не показывается
	WorkerID        uuid.UUID
	Date            time.Time   // дата (без времени)
	DurationMinutes *int        // длительность напрямую
	ServiceIDs      []uuid.UUID // либо набор услуг, длительность = сумма
}

// Response модель ответа с классифицированными слотами
type Response struct {
	Date            time.Time
	WorkerID        uuid.UUID
	DurationMinutes int
	Slots           []domain.SlotAvailability
	AvailableCount  int
}
