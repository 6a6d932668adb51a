package notifications

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
	notificationRepo "github.com/david021dp/salon-booking/internal/infra/storage/notification"
	"github.com/david021dp/salon-booking/internal/service/notifications/models"
)

const (
	defaultTimeout   = 5 * time.Second
	defaultQueueSize = 256
	listLimit        = 50

	stageQueue   = "queue"
	stageStore   = "store"
	stagePublish = "publish"
)

// Service сервис уведомлений мастеров.
// Notify только ставит уведомление в очередь, доставку выполняет фоновый воркер.
type Service struct {
	repo      NotificationRepository
	publisher EventPublisher
	failures  FailureRecorder
	timeout   time.Duration
	logger    Logger

	queue  chan *domain.Notification
	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewService создает сервис уведомлений и запускает воркер доставки.
// publisher и failures могут быть nil. Воркер останавливается через Close.
func NewService(
	repo NotificationRepository,
	publisher EventPublisher,
	failures FailureRecorder,
	timeout time.Duration,
	logger Logger,
) *Service {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	s := &Service{
		repo:      repo,
		publisher: publisher,
		failures:  failures,
		timeout:   timeout,
		logger:    logger,
		queue:     make(chan *domain.Notification, defaultQueueSize),
		done:      make(chan struct{}),
	}

	go s.run()

	return s
}

// Notify ставит уведомление в очередь и сразу возвращает управление.
// При переполненной очереди или после Close уведомление отбрасывается с записью в лог.
func (s *Service) Notify(_ context.Context, n *domain.Notification) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		s.recordFailure(stageQueue)
		s.logger.Warn("Notify: service closed, %s notification for recipient=%s dropped", n.Kind, n.RecipientID)
		return
	}

	select {
	case s.queue <- n:
	default:
		s.recordFailure(stageQueue)
		s.logger.Warn("Notify: queue is full, %s notification for recipient=%s, appointment=%s dropped",
			n.Kind, n.RecipientID, n.AppointmentID)
	}
}

// Close прекращает прием уведомлений и ждет доставки уже поставленных в очередь
func (s *Service) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.mu.Unlock()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: Close - %d notification(s) left undelivered: %v", ErrInternal, len(s.queue), ctx.Err())
	}
}

func (s *Service) run() {
	defer close(s.done)

	for n := range s.queue {
		s.deliver(n)
	}
}

// deliver сохраняет уведомление и публикует событие.
// Ошибки только логируются: запись к этому моменту уже зафиксирована.
func (s *Service) deliver(n *domain.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	stored, err := s.repo.Create(ctx, n)
	if err != nil {
		s.recordFailure(stageStore)
		s.logger.Error("deliver: failed to store %s notification for recipient=%s, appointment=%s: %v",
			n.Kind, n.RecipientID, n.AppointmentID, err)
		return
	}

	if s.publisher == nil {
		return
	}

	if err := s.publisher.Publish(ctx, stored); err != nil {
		s.recordFailure(stagePublish)
		s.logger.Warn("deliver: failed to publish notification id=%s: %v", stored.ID, err)
		return
	}

	s.logger.Info("deliver: %s notification id=%s delivered to recipient=%s", stored.Kind, stored.ID, stored.RecipientID)
}

// List уведомления текущего пользователя
func (s *Service) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) (*models.NotificationListResponse, error) {
	list, err := s.repo.ListByRecipient(ctx, recipientID, unreadOnly, listLimit)
	if err != nil {
		s.logger.Error("List: repository error for recipient=%s: %v", recipientID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainNotificationList(list), nil
}

// MarkRead отмечает одно уведомление прочитанным
func (s *Service) MarkRead(ctx context.Context, id, recipientID uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, id, recipientID); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			s.logger.Warn("MarkRead: notification id=%s not found for recipient=%s", id, recipientID)
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for notification id=%s: %v", id, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}

	return nil
}

// MarkAllRead отмечает прочитанными все уведомления пользователя
func (s *Service) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (*models.MarkAllReadResponse, error) {
	updated, err := s.repo.MarkAllRead(ctx, recipientID)
	if err != nil {
		s.logger.Error("MarkAllRead: repository error for recipient=%s: %v", recipientID, err)
		return nil, fmt.Errorf("%w: MarkAllRead - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkAllRead: %d notifications marked read for recipient=%s", updated, recipientID)
	return &models.MarkAllReadResponse{Updated: updated}, nil
}

func (s *Service) recordFailure(stage string) {
	if s.failures != nil {
		s.failures.RecordNotificationFailure(stage)
	}
}
