package create_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/internal/integrations/userservice"
	"github.com/david021dp/salon-booking/internal/service/catalog"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	ListByWorker(ctx context.Context, filter domain.WorkerAppointmentsFilter) ([]*domain.Appointment, error)
	CountCreatedByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)
}

// ServiceResolver сводит выбранные услуги в одно название и одну длительность
type ServiceResolver interface {
	Resolve(ctx context.Context, ids []uuid.UUID) (*catalog.Selection, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID uuid.UUID) (*userservice.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier доставка уведомлений мастеру
type Notifier interface {
	Notify(ctx context.Context, n *domain.Notification)
}

// ActivityLog журнал действий админов, пишется в транзакции use case
type ActivityLog interface {
	Create(ctx context.Context, entry *domain.AdminActivity) (*domain.AdminActivity, error)
}

// OutcomeRecorder счетчик исходов операции
type OutcomeRecorder interface {
	RecordOutcome(operation, outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
