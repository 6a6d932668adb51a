package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
)

// ActivityRepository интерфейс журнала действий админов
type ActivityRepository interface {
	ListByAdmin(ctx context.Context, adminID uuid.UUID, limit uint64) ([]*domain.AdminActivity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
