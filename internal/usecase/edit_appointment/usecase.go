package edit_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
	appointmentRepo "github.com/david021dp/salon-booking/internal/infra/storage/appointment"
	"github.com/david021dp/salon-booking/internal/service/availability"
	"github.com/david021dp/salon-booking/internal/service/catalog"
	"github.com/david021dp/salon-booking/internal/service/notifications"
	"github.com/david021dp/salon-booking/pkg/metrics"
	"github.com/david021dp/salon-booking/pkg/txmanager"
)

const operation = "edit"

// UseCase use case для редактирования записи админом
type UseCase struct {
	appointmentRepo AppointmentRepository
	services        ServiceResolver
	userClient      UserServiceClient
	txManager       TransactionManager
	notifier        Notifier
	activity        ActivityLog
	outcomes        OutcomeRecorder
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
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		services:        services,
		userClient:      userClient,
		txManager:       txManager,
		notifier:        notifier,
		activity:        activity,
		outcomes:        outcomes,
		logger:          logger,
	}
}

// Execute выполняет use case редактирования.
// Итоговое окно (новое или старое время и длительность) проверяется заново
// по свежему списку записей мастера, сама запись из проверки исключается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Appointment, error) {
	uc.logger.Info("EditAppointment: actor=%s, appointment=%s", req.Actor.ID, req.AppointmentID)

	if !req.Actor.Role.IsAdmin() {
		uc.logger.Warn("EditAppointment: access denied for user=%s (%s)", req.Actor.ID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	// 1. Валидация формы запроса
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("EditAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Новый набор услуг, если передан
	var selection *catalog.Selection
	if req.ServiceIDs != nil {
		var err error
		selection, err = uc.services.Resolve(ctx, *req.ServiceIDs)
		if err != nil {
			if errors.Is(err, catalog.ErrServiceNotFound) || errors.Is(err, catalog.ErrNoServices) {
				uc.logger.Warn("EditAppointment: invalid service selection: %v", err)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("EditAppointment: failed to resolve services: %v", err)
			return nil, fmt.Errorf("%w: failed to resolve services: %v", ErrInternal, err)
		}
	}

	var (
		result      *domain.Appointment
		rescheduled bool
	)

	// 3. Чтение с блокировкой, проверка и обновление в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		current, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		if !current.IsScheduled() || current.IsBlocked() {
			return ErrNotEditable
		}

		changes, moved := buildChanges(current, req, selection)

		date := current.Date
		if changes.Date != nil {
			date = *changes.Date
		}
		start := current.StartTime
		if changes.StartTime != nil {
			start = *changes.StartTime
		}
		duration := current.DurationMinutes
		if changes.DurationMinutes != nil {
			duration = *changes.DurationMinutes
		}

		v := &domain.ValidationError{}
		domain.ValidateWindow(v, start, duration)
		if err := v.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}

		status := domain.StatusScheduled
		existing, err := uc.appointmentRepo.ListByWorker(txCtx, domain.WorkerAppointmentsFilter{
			WorkerID: current.WorkerID,
			Date:     &date,
			Status:   &status,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		proposal := availability.Proposal{
			StartTime:       start,
			DurationMinutes: duration,
			ExcludeID:       &current.ID,
		}
		if err := availability.CheckConflicts(proposal, existing); err != nil {
			return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}

		updated, err := uc.appointmentRepo.Update(txCtx, current.ID, changes)
		if err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrSlotTaken):
				return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
			case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
				return ErrAppointmentNotFound
			}
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		action := domain.AdminActionUpdateAppointment
		if moved {
			action = domain.AdminActionRescheduleAppointment
		}
		if _, err := uc.activity.Create(txCtx, domain.NewAdminActivity(req.Actor.ID, action, updated)); err != nil {
			return fmt.Errorf("%w: failed to record admin activity: %w", ErrInternal, err)
		}

		result = updated
		rescheduled = moved
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable), errors.Is(err, txmanager.ErrSerialization):
			uc.outcomes.RecordOutcome(operation, metrics.OutcomeConflict)
			uc.logger.Warn("EditAppointment: new window for appointment=%s is not available: %v", req.AppointmentID, err)
			return nil, ErrSlotNotAvailable
		case errors.Is(err, ErrAppointmentNotFound), errors.Is(err, ErrNotEditable), errors.Is(err, ErrInvalidInput):
			uc.logger.Warn("EditAppointment: appointment=%s: %v", req.AppointmentID, err)
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.logger.Error("EditAppointment: %v", err)
			return nil, err
		default:
			uc.logger.Error("EditAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	uc.outcomes.RecordOutcome(operation, metrics.OutcomeUpdated)
	uc.logger.Info("EditAppointment: updated appointment id=%s (rescheduled=%t)", result.ID, rescheduled)

	// 4. Мастеру сообщаем о переносе, если переносил не он сам
	if rescheduled && result.WorkerID != req.Actor.ID {
		uc.notifier.Notify(ctx, notifications.AppointmentRescheduled(result, uc.adminName(ctx, req.Actor.ID)))
	}

	return result, nil
}

// buildChanges собирает изменения относительно текущей записи.
// moved - фактически поменялись дата или время.
func buildChanges(current *domain.Appointment, req *Request, selection *catalog.Selection) (domain.AppointmentChanges, bool) {
	var changes domain.AppointmentChanges
	moved := false

	if selection != nil {
		name, duration := selection.Name, selection.DurationMinutes
		changes.ServiceName = &name
		changes.DurationMinutes = &duration
	}

	if req.Date != nil {
		date := domain.DateOnly(*req.Date)
		changes.Date = &date
		if !date.Equal(domain.DateOnly(current.Date)) {
			moved = true
		}
	}

	if req.StartTime != nil {
		start := *req.StartTime
		changes.StartTime = &start
		if start != current.StartTime {
			moved = true
		}
	}

	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		changes.Notes = &notes
	}

	changes.MarkRescheduled = moved

	return changes, moved
}

// adminName имя админа для текста уведомления
func (uc *UseCase) adminName(ctx context.Context, adminID uuid.UUID) string {
	admin, err := uc.userClient.GetUserWithGracefulDegradation(ctx, adminID)
	if err != nil || strings.TrimSpace(admin.FullName()) == "" {
		return AdminNameFallback
	}

	return admin.FullName()
}
