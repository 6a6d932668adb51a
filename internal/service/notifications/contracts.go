package notifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
)

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit uint64) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id, recipientID uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) (int64, error)
}

// EventPublisher внешний канал доставки (Kafka). Может отсутствовать.
type EventPublisher interface {
	Publish(ctx context.Context, n *domain.Notification) error
}

// FailureRecorder счетчик неудачных доставок
type FailureRecorder interface {
	RecordNotificationFailure(stage string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
