package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/david021dp/salon-booking/internal/domain"
)

var (
	// ErrMarshalEvent возвращается, если событие не удалось сериализовать
	ErrMarshalEvent = errors.New("events.publisher: failed to marshal event")

	// ErrWriteMessage возвращается при ошибке записи в Kafka
	ErrWriteMessage = errors.New("events.publisher: failed to write message")
)

// MessageWriter подмножество kafka.Writer, нужное публикатору
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NotificationEvent payload события для внешних каналов доставки
type NotificationEvent struct {
	EventID            uuid.UUID `json:"event_id"`
	NotificationID     uuid.UUID `json:"notification_id"`
	RecipientID        uuid.UUID `json:"recipient_id"`
	AppointmentID      uuid.UUID `json:"appointment_id"`
	Kind               string    `json:"kind"`
	Message            string    `json:"message"`
	CancellationReason *string   `json:"cancellation_reason,omitempty"`
	OccurredAt         time.Time `json:"occurred_at"`
}

// Publisher публикует уведомления мастеров в топик Kafka
type Publisher struct {
	writer MessageWriter
	topic  string
}

// Уведомления идут по одному, поэтому пакет отправляется без ожидания добора
const (
	batchTimeout = 10 * time.Millisecond
	writeTimeout = 3 * time.Second
)

// NewKafkaPublisher создает публикатор поверх kafka.Writer.
// Ключ сообщения = получатель, поэтому события одного мастера попадают в одну партицию.
func NewKafkaPublisher(brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchSize:              1,
		BatchTimeout:           batchTimeout,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}

	return NewPublisher(writer, topic)
}

// NewPublisher создает публикатор с произвольным writer
func NewPublisher(writer MessageWriter, topic string) *Publisher {
	return &Publisher{
		writer: writer,
		topic:  topic,
	}
}

// Publish отправляет событие об уведомлении
func (p *Publisher) Publish(ctx context.Context, n *domain.Notification) error {
	event := NotificationEvent{
		EventID:            uuid.New(),
		NotificationID:     n.ID,
		RecipientID:        n.RecipientID,
		AppointmentID:      n.AppointmentID,
		Kind:               string(n.Kind),
		Message:            n.Message,
		CancellationReason: n.CancellationReason,
		OccurredAt:         n.CreatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: Publish - marshal: %v", ErrMarshalEvent, err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(n.RecipientID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID.String())},
			{Key: "event_type", Value: []byte(event.Kind)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: Publish - topic=%s: %v", ErrWriteMessage, p.topic, err)
	}

	return nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}
