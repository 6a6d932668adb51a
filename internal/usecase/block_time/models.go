package block_time

import (
	"time"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/pkg/types"
)

// Mode режим блокировки
type Mode string

const (
	ModeSpecific Mode = "specific" // один интервал из списка пресетов
	ModeFullDay  Mode = "fullday"  // целые дни 09:00-21:00
)

// FullDayStart начало блокировки целого дня
const FullDayStart types.TimeString = "09:00"

// Request модель запроса на блокировку времени мастера
type Request struct {
	Actor    domain.Actor
	WorkerID uuid.UUID
	Mode     Mode
	Date     time.Time // для fullday - первый день

	StartTime       *types.TimeString // только specific
	DurationMinutes *int              // только specific, из пресетов
	Days            *int              // только fullday, 1-7
}

// Response созданные блокировки.
// При конфликте на одном из дней уже созданные блокировки остаются,
// FailedDate указывает день, на котором остановились.
type Response struct {
	Blocks     []*domain.Appointment
	FailedDate *time.Time
}

// window одна блокировка: отдельная транзакция
type window struct {
	date     time.Time
	start    types.TimeString
	duration int
}
