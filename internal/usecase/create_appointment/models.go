package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Actor      domain.Actor     // клиент записывается сам, админ записывает клиента
	WorkerID   uuid.UUID        // мастер
	ServiceIDs []uuid.UUID      // выбранные услуги, минимум одна
	Date       time.Time        // дата (без времени)
	StartTime  types.TimeString // время начала, кратно 15 минутам

	FirstName string
	LastName  string
	Phone     *string // опционально
	Email     string  // обязателен для клиента; для админа берется email админа
	Notes     *string // опционально
}

// Options бизнес-настройки создания записи
type Options struct {
	Location         *time.Location // часовой пояс салона
	DailyClientLimit int            // сколько записей клиент может создать за день
}
