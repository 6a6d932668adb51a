package edit_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/internal/integrations/userservice"
	"github.com/david021dp/salon-booking/internal/service/catalog"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	ListByWorker(ctx context.Context, filter domain.WorkerAppointmentsFilter) ([]*domain.Appointment, error)
	Update(ctx context.Context, id uuid.UUID, changes domain.AppointmentChanges) (*domain.Appointment, error)
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AdminNameFallback имя админа в уведомлении, когда UserService недоступен
const AdminNameFallback = "Admin"
