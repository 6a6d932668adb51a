package block_time

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
	appointmentRepo "github.com/david021dp/salon-booking/internal/infra/storage/appointment"
	userClient "github.com/david021dp/salon-booking/internal/integrations/userservice"
	"github.com/david021dp/salon-booking/internal/service/availability"
	"github.com/david021dp/salon-booking/internal/service/notifications"
	"github.com/david021dp/salon-booking/pkg/metrics"
	"github.com/david021dp/salon-booking/pkg/txmanager"
)

const operation = "block"

// UseCase use case для блокировки времени мастера админом
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

// Execute создает блокировки. Каждый день - отдельная транзакция:
// на первом конфликте работа останавливается, созданные раньше дни остаются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BlockTime: actor=%s, worker=%s, mode=%s, date=%s",
		req.Actor.ID, req.WorkerID, req.Mode, req.Date.Format(domain.DateFormat))

	if !req.Actor.Role.IsAdmin() {
		uc.logger.Warn("BlockTime: access denied for user=%s (%s)", req.Actor.ID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	windows, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("BlockTime: validation failed: %v", err)
		return nil, err
	}

	workerName, err := uc.resolveWorker(ctx, req.WorkerID)
	if err != nil {
		return nil, err
	}

	admin := uc.lookupAdmin(ctx, req.Actor.ID)

	notes := domain.BlockedNotesSpecial
	if req.Mode == ModeFullDay {
		notes = domain.BlockedNotesFullDay
	}

	response := &Response{Blocks: make([]*domain.Appointment, 0, len(windows))}

	for _, w := range windows {
		block := &domain.Appointment{
			UserID:          req.Actor.ID,
			WorkerID:        req.WorkerID,
			WorkerName:      workerName,
			Kind:            domain.KindBlocked,
			Date:            w.date,
			StartTime:       w.start,
			DurationMinutes: w.duration,
			ServiceName:     domain.BlockedServiceName,
			FirstName:       domain.BlockedFirstName,
			LastName:        domain.BlockedLastName,
			Email:           admin.email,
			Notes:           &notes,
			Status:          domain.StatusScheduled,
		}

		created, err := uc.createBlock(ctx, block)
		if err != nil {
			if errors.Is(err, ErrSlotNotAvailable) {
				uc.outcomes.RecordOutcome(operation, metrics.OutcomeConflict)
				uc.logger.Warn("BlockTime: %s %s for worker=%s is not free, %d of %d blocks created: %v",
					w.date.Format(domain.DateFormat), w.start, req.WorkerID, len(response.Blocks), len(windows), err)

				failed := w.date
				response.FailedDate = &failed
				uc.notifyBlocks(ctx, req.Actor.ID, admin.name, response.Blocks)
				return response, ErrSlotNotAvailable
			}

			uc.logger.Error("BlockTime: %v", err)
			uc.notifyBlocks(ctx, req.Actor.ID, admin.name, response.Blocks)
			return response, err
		}

		uc.outcomes.RecordOutcome(operation, metrics.OutcomeBlocked)
		response.Blocks = append(response.Blocks, created)
	}

	uc.logger.Info("BlockTime: created %d block(s) for worker=%s", len(response.Blocks), req.WorkerID)

	uc.notifyBlocks(ctx, req.Actor.ID, admin.name, response.Blocks)

	return response, nil
}

// createBlock проверка конфликтов и вставка одной блокировки
func (uc *UseCase) createBlock(ctx context.Context, block *domain.Appointment) (*domain.Appointment, error) {
	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		status := domain.StatusScheduled
		existing, err := uc.appointmentRepo.ListByWorker(txCtx, domain.WorkerAppointmentsFilter{
			WorkerID: block.WorkerID,
			Date:     &block.Date,
			Status:   &status,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		proposal := availability.Proposal{StartTime: block.StartTime, DurationMinutes: block.DurationMinutes}
		if err := availability.CheckConflicts(proposal, existing); err != nil {
			return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}

		created, err := uc.appointmentRepo.Create(txCtx, block)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
			}
			return fmt.Errorf("%w: failed to create block: %w", ErrInternal, err)
		}

		// Блокировку создает админ, block.UserID = его ID
		entry := domain.NewAdminActivity(block.UserID, domain.AdminActionBlockTime, created)
		entry.Details["duration_minutes"] = created.DurationMinutes
		if _, err := uc.activity.Create(txCtx, entry); err != nil {
			return fmt.Errorf("%w: failed to record admin activity: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	switch {
	case err == nil:
		return result, nil
	case errors.Is(err, ErrSlotNotAvailable), errors.Is(err, txmanager.ErrSerialization):
		return nil, fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
	case errors.Is(err, ErrInternal):
		return nil, err
	default:
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}
}

// notifyBlocks мастеру, если блокирует не он сам
func (uc *UseCase) notifyBlocks(ctx context.Context, actorID uuid.UUID, adminName string, blocks []*domain.Appointment) {
	for _, b := range blocks {
		if b.WorkerID == actorID {
			return
		}
		uc.notifier.Notify(ctx, notifications.TimeBlocked(b, adminName))
	}
}

// resolveWorker проверяет мастера и возвращает его имя
func (uc *UseCase) resolveWorker(ctx context.Context, workerID uuid.UUID) (string, error) {
	worker, err := uc.userClient.GetUserWithGracefulDegradation(ctx, workerID)
	if err != nil {
		if errors.Is(err, userClient.ErrUserNotFound) {
			uc.logger.Warn("BlockTime: worker id=%s not found", workerID)
			return "", ErrWorkerNotFound
		}
		uc.logger.Warn("BlockTime: worker name unavailable for worker=%s: %v", workerID, err)
		return "", nil
	}

	if !domain.Role(worker.Role).IsAdmin() {
		uc.logger.Warn("BlockTime: user id=%s with role=%s is not a worker", workerID, worker.Role)
		return "", ErrWorkerNotFound
	}

	return worker.FullName(), nil
}

type adminInfo struct {
	name  string
	email string
}

// lookupAdmin имя и email админа; при недоступности UserService - значения по умолчанию
func (uc *UseCase) lookupAdmin(ctx context.Context, adminID uuid.UUID) adminInfo {
	info := adminInfo{name: AdminNameFallback, email: domain.FallbackAdminEmail}

	admin, err := uc.userClient.GetUserWithGracefulDegradation(ctx, adminID)
	if err != nil {
		return info
	}

	if name := strings.TrimSpace(admin.FullName()); name != "" {
		info.name = name
	}
	if admin.Email != "" {
		info.email = admin.Email
	}

	return info
}
