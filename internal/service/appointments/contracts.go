package appointments

import (
	"context"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей (только чтение)
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	ListByWorker(ctx context.Context, filter domain.WorkerAppointmentsFilter) ([]*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
