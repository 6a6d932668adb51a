package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
	appointmentRepo "github.com/david021dp/salon-booking/internal/infra/storage/appointment"
	userClient "github.com/david021dp/salon-booking/internal/integrations/userservice"
	"github.com/david021dp/salon-booking/internal/service/availability"
	"github.com/david021dp/salon-booking/internal/service/catalog"
	"github.com/david021dp/salon-booking/internal/service/notifications"
	"github.com/david021dp/salon-booking/pkg/metrics"
	"github.com/david021dp/salon-booking/pkg/txmanager"
)

const operation = "create"

// UseCase use case для создания записи клиента (самостоятельно или админом)
type UseCase struct {
	appointmentRepo AppointmentRepository
	services        ServiceResolver
	userClient      UserServiceClient
	txManager       TransactionManager
	notifier        Notifier
	activity        ActivityLog
	outcomes        OutcomeRecorder
	opts            Options
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	services ServiceResolver,
	userClient UserServiceClient,
	txManager TransactionManager,
	notifier Notifier,
	activity ActivityLog,
	outcomes OutcomeRecorder,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.DailyClientLimit <= 0 {
		opts.DailyClientLimit = domain.DefaultDailyClientLimit
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	return &UseCase{
		appointmentRepo: appointmentRepo,
		services:        services,
		userClient:      userClient,
		txManager:       txManager,
		notifier:        notifier,
		activity:        activity,
		outcomes:        outcomes,
		opts:            opts,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка конфликтов и вставка идут в одной сериализуемой транзакции,
// уникальный индекс по (worker, date, time) страхует от гонок.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("CreateAppointment: actor=%s (%s), worker=%s, date=%s, time=%s",
		req.Actor.ID, req.Actor.Role, req.WorkerID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация формы запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	now := uc.timeProvider.Now().In(uc.opts.Location)
	isAdmin := req.Actor.Role.IsAdmin()

	// 2. Клиент не может записаться в прошлое
	if !isAdmin {
		if err := validateNotInPast(date, req.StartTime, now); err != nil {
			uc.logger.Warn("CreateAppointment: %v", err)
			return nil, err
		}
	}

	// 3. Сводим услуги в одну запись
	selection, err := uc.services.Resolve(ctx, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) || errors.Is(err, catalog.ErrNoServices) {
			uc.logger.Warn("CreateAppointment: invalid service selection: %v", err)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to resolve services: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve services: %v", ErrInternal, err)
	}

	if err := validateWindow(req.StartTime, selection.DurationMinutes); err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}

	// 4. Мастер и (для админа) email, который попадет в запись
	workerName, err := uc.resolveWorker(ctx, req.WorkerID)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(req.Email)
	if isAdmin {
		email = uc.adminEmail(ctx, req.Actor.ID)
	}

	appointment := &domain.Appointment{
		UserID:          req.Actor.ID,
		WorkerID:        req.WorkerID,
		WorkerName:      workerName,
		Kind:            domain.KindAppointment,
		Date:            date,
		StartTime:       req.StartTime,
		DurationMinutes: selection.DurationMinutes,
		ServiceName:     selection.Name,
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		Phone:           normalizePhone(req.Phone),
		Email:           email,
		Notes:           normalizeNotes(req.Notes),
		Status:          domain.StatusScheduled,
	}

	// 5. Дневной лимит, повторная проверка слота и вставка в одной сериализуемой транзакции.
	// Лимит действует только на записи, созданные самим клиентом.
	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if !isAdmin {
			if err := uc.checkDailyLimit(txCtx, req.Actor.ID, now); err != nil {
				return err
			}
		}

		status := domain.StatusScheduled
		existing, err := uc.appointmentRepo.ListByWorker(txCtx, domain.WorkerAppointmentsFilter{
			WorkerID: req.WorkerID,
			Date:     &date,
			Status:   &status,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		proposal := availability.Proposal{
			StartTime:       req.StartTime,
			DurationMinutes: selection.DurationMinutes,
		}
		if err := availability.CheckConflicts(proposal, existing); err != nil {
			return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
			}
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		if isAdmin {
			entry := domain.NewAdminActivity(req.Actor.ID, domain.AdminActionCreateAppointment, created)
			if _, err := uc.activity.Create(txCtx, entry); err != nil {
				return fmt.Errorf("%w: failed to record admin activity: %w", ErrInternal, err)
			}
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable), errors.Is(err, txmanager.ErrSerialization):
			uc.outcomes.RecordOutcome(operation, metrics.OutcomeConflict)
			uc.logger.Warn("CreateAppointment: slot %s %s for worker=%s is not available: %v",
				date.Format(domain.DateFormat), req.StartTime, req.WorkerID, err)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, ErrDailyLimitExceeded):
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CreateAppointment: %v", err)
			return nil, err
		default:
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.outcomes.RecordOutcome(operation, metrics.OutcomeCreated)
	uc.logger.Info("CreateAppointment: created appointment id=%s for worker=%s at %s %s (%d min)",
		result.ID, result.WorkerID, date.Format(domain.DateFormat), result.StartTime, result.DurationMinutes)

	// 6. Уведомляем мастера; сбой доставки запись не откатывает
	uc.notifier.Notify(ctx, notifications.AppointmentCreated(result))

	return result, nil
}

// checkDailyLimit считает записи, созданные клиентом за текущие сутки салона
func (uc *UseCase) checkDailyLimit(ctx context.Context, userID uuid.UUID, now time.Time) error {
	from, to := domain.DayBounds(now, uc.opts.Location)

	count, err := uc.appointmentRepo.CountCreatedByUserBetween(ctx, userID, from, to)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to count today's appointments for user=%s: %v", userID, err)
		return fmt.Errorf("%w: failed to count appointments: %v", ErrInternal, err)
	}

	if count >= uc.opts.DailyClientLimit {
		uc.outcomes.RecordOutcome(operation, metrics.OutcomeLimitExceeded)
		uc.logger.Warn("CreateAppointment: user=%s reached daily limit %d/%d", userID, count, uc.opts.DailyClientLimit)
		return fmt.Errorf("%w: you can create up to %d appointments per day", ErrDailyLimitExceeded, uc.opts.DailyClientLimit)
	}

	return nil
}

// resolveWorker проверяет мастера и возвращает его имя.
// При недоступности UserService запись создается без имени мастера.
func (uc *UseCase) resolveWorker(ctx context.Context, workerID uuid.UUID) (string, error) {
	worker, err := uc.userClient.GetUserWithGracefulDegradation(ctx, workerID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("CreateAppointment: worker id=%s not found", workerID)
			return "", ErrWorkerNotFound
		}
		uc.logger.Warn("CreateAppointment: worker name unavailable for worker=%s: %v", workerID, err)
		return "", nil
	}

	if !domain.Role(worker.Role).IsAdmin() {
		uc.logger.Warn("CreateAppointment: user id=%s with role=%s is not a worker", workerID, worker.Role)
		return "", ErrWorkerNotFound
	}

	return worker.FullName(), nil
}

// adminEmail email админа для записи, созданной от его имени
func (uc *UseCase) adminEmail(ctx context.Context, adminID uuid.UUID) string {
	admin, err := uc.userClient.GetUserWithGracefulDegradation(ctx, adminID)
	if err != nil || admin.Email == "" {
		return domain.FallbackAdminEmail
	}

	return admin.Email
}

func normalizeNotes(notes *string) *string {
	if notes == nil || strings.TrimSpace(*notes) == "" {
		return nil
	}

	trimmed := strings.TrimSpace(*notes)
	return &trimmed
}
