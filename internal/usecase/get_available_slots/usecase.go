package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/internal/service/availability"
	"github.com/david021dp/salon-booking/internal/service/catalog"
)

// UseCase use case для получения сетки слотов мастера на день
type UseCase struct {
	appointmentRepo AppointmentRepository
	services        ServiceResolver
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	services ServiceResolver,
	location *time.Location,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}

	return &UseCase{
		appointmentRepo: appointmentRepo,
		services:        services,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Результат только для отображения: окончательную проверку делает запись.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)

	// 2. Определяем длительность кандидата
	duration, err := uc.resolveDuration(ctx, req)
	if err != nil {
		return nil, err
	}

	// 3. Получаем актуальные записи мастера на день (включая блокировки)
	status := domain.StatusScheduled
	appointments, err := uc.appointmentRepo.ListByWorker(ctx, domain.WorkerAppointmentsFilter{
		WorkerID: req.WorkerID,
		Date:     &date,
		Status:   &status,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for worker=%s: %v", req.WorkerID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 4. Классифицируем сетку
	slots := availability.Classify(appointments, duration)

	// 5. Клиенту не показываем уже прошедшее время
	if !req.Actor.Role.IsAdmin() {
		slots = dropPastSlots(slots, date, uc.timeProvider.Now().In(uc.location))
	}

	available := availability.CountAvailable(slots)

	uc.logger.Info("GetAvailableSlots: worker=%s, date=%s, duration=%d, existing=%d, available=%d/%d",
		req.WorkerID, date.Format(domain.DateFormat), duration, len(appointments), available, len(slots))

	return &Response{
		Date:            date,
		WorkerID:        req.WorkerID,
		DurationMinutes: duration,
		Slots:           slots,
		AvailableCount:  available,
	}, nil
}

func (uc *UseCase) resolveDuration(ctx context.Context, req *Request) (int, error) {
	if req.DurationMinutes != nil {
		return *req.DurationMinutes, nil
	}

	selection, err := uc.services.Resolve(ctx, req.ServiceIDs)
	if err != nil {
		if errors.Is(err, catalog.ErrServiceNotFound) || errors.Is(err, catalog.ErrNoServices) {
			uc.logger.Warn("GetAvailableSlots: invalid service selection: %v", err)
			return 0, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to resolve services: %v", err)
		return 0, fmt.Errorf("%w: failed to resolve services: %v", ErrInternal, err)
	}

	return selection.DurationMinutes, nil
}
