package cancel_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
	appointmentRepo "github.com/david021dp/salon-booking/internal/infra/storage/appointment"
	"github.com/david021dp/salon-booking/internal/service/notifications"
	"github.com/david021dp/salon-booking/pkg/metrics"
)

const operation = "cancel"

// UseCase use case для отмены записи клиентом или админом и снятия блокировки
type UseCase struct {
	appointmentRepo AppointmentRepository
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
	userClient UserServiceClient,
	txManager TransactionManager,
	notifier Notifier,
	activity ActivityLog,
	outcomes OutcomeRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		userClient:      userClient,
		txManager:       txManager,
		notifier:        notifier,
		activity:        activity,
		outcomes:        outcomes,
		logger:          logger,
	}
}

// Execute выполняет отмену. Повторная отмена и отмена несуществующей записи
// считаются успешными: клиент может безопасно повторять запрос.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelAppointment: actor=%s (%s), appointment=%s", req.Actor.ID, req.Actor.Role, req.AppointmentID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelAppointment: validation failed: %v", err)
		return nil, err
	}

	isAdmin := req.Actor.Role.IsAdmin()
	reason := normalizeReason(req.Reason)

	var (
		target *domain.Appointment
		result Result
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				result = ResultNotFound
				return nil
			}
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		if !isAdmin && current.UserID != req.Actor.ID {
			return ErrAccessDenied
		}

		if current.IsCancelled() {
			result = ResultAlreadyCancelled
			return nil
		}

		// Блокировка не отменяется, а удаляется
		if current.IsBlocked() {
			if err := uc.appointmentRepo.Delete(txCtx, current.ID); err != nil {
				if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
					result = ResultNotFound
					return nil
				}
				return fmt.Errorf("%w: failed to delete blocked time: %w", ErrInternal, err)
			}
			target, result = current, ResultDeleted
			return uc.recordActivity(txCtx, req.Actor, domain.AdminActionUnblockTime, current, nil)
		}

		cancelledBy := domain.CancelledByClient
		if isAdmin {
			cancelledBy = domain.CancelledByAdmin
		}

		if err := uc.appointmentRepo.Cancel(txCtx, current.ID, cancelledBy, reason); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				// Параллельная отмена успела раньше
				result = ResultAlreadyCancelled
				return nil
			}
			return fmt.Errorf("%w: failed to cancel appointment: %w", ErrInternal, err)
		}

		target, result = current, ResultCancelled
		return uc.recordActivity(txCtx, req.Actor, domain.AdminActionCancelAppointment, current, reason)
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrAccessDenied):
			uc.logger.Warn("CancelAppointment: user=%s does not own appointment=%s", req.Actor.ID, req.AppointmentID)
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.logger.Error("CancelAppointment: %v", err)
			return nil, err
		default:
			uc.logger.Error("CancelAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	response := &Response{AppointmentID: req.AppointmentID, Result: result}

	switch result {
	case ResultNotFound, ResultAlreadyCancelled:
		uc.logger.Info("CancelAppointment: appointment=%s %s, nothing to do", req.AppointmentID, result)
		return response, nil
	case ResultDeleted:
		uc.outcomes.RecordOutcome(operation, metrics.OutcomeDeleted)
	default:
		uc.outcomes.RecordOutcome(operation, metrics.OutcomeCancelled)
	}

	uc.logger.Info("CancelAppointment: appointment=%s %s by %s", req.AppointmentID, result, req.Actor.Role)

	uc.notify(ctx, req.Actor, target, reason)

	return response, nil
}

// recordActivity журнал пишется только для действий админа
func (uc *UseCase) recordActivity(
	ctx context.Context,
	actor domain.Actor,
	action domain.AdminAction,
	a *domain.Appointment,
	reason *string,
) error {
	if !actor.Role.IsAdmin() {
		return nil
	}

	entry := domain.NewAdminActivity(actor.ID, action, a)
	if reason != nil {
		entry.Details["cancellation_reason"] = *reason
	}

	if _, err := uc.activity.Create(ctx, entry); err != nil {
		return fmt.Errorf("%w: failed to record admin activity: %w", ErrInternal, err)
	}
	return nil
}

// notify клиентская отмена всегда уходит мастеру,
// админская - только если мастер не сам отменяющий
func (uc *UseCase) notify(ctx context.Context, actor domain.Actor, a *domain.Appointment, reason *string) {
	if !actor.Role.IsAdmin() {
		uc.notifier.Notify(ctx, notifications.AppointmentCancelledByClient(a, reason))
		return
	}

	if a.WorkerID == actor.ID {
		return
	}

	uc.notifier.Notify(ctx, notifications.AppointmentCancelledByAdmin(a, uc.adminName(ctx, actor.ID), reason))
}

// adminName имя админа для текста уведомления
func (uc *UseCase) adminName(ctx context.Context, adminID uuid.UUID) string {
	admin, err := uc.userClient.GetUserWithGracefulDegradation(ctx, adminID)
	if err != nil || strings.TrimSpace(admin.FullName()) == "" {
		return AdminNameFallback
	}

	return admin.FullName()
}
