package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
	appointmentRepo "github.com/david021dp/salon-booking/internal/infra/storage/appointment"
	"github.com/david021dp/salon-booking/internal/service/appointments/models"
)

// Service сервис чтения записей
type Service struct {
	repo   AppointmentRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(repo AppointmentRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetByID получает запись по ID.
// Клиент видит только свои записи, админ видит любые.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.AppointmentResponse, error) {
	appointment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !actor.Role.IsAdmin() && appointment.UserID != actor.ID {
		s.logger.Warn("GetByID: access denied for user=%s to appointment id=%s", actor.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetUserAppointments история записей клиента (без блокировок).
// Доступна самому клиенту и админам.
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	if !req.Actor.Role.IsAdmin() && req.Actor.ID != req.UserID {
		s.logger.Warn("GetUserAppointments: user=%s tried to read history of user=%s", req.Actor.ID, req.UserID)
		return nil, ErrAccessDenied
	}

	var status *domain.AppointmentStatus
	if req.Status != nil {
		st, err := models.ToDomainStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		status = &st
	}

	list, err := s.repo.ListByUser(ctx, req.UserID, status)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: fetched %d appointments for user=%s", len(list), req.UserID)
	return models.FromDomainAppointmentList(list), nil
}

// GetWorkerSchedule записи мастера (включая блокировки), только для админов
func (s *Service) GetWorkerSchedule(ctx context.Context, req *models.GetWorkerScheduleRequest) (*models.AppointmentListResponse, error) {
	if !req.Actor.Role.IsAdmin() {
		s.logger.Warn("GetWorkerSchedule: user=%s is not an admin", req.Actor.ID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	list, err := s.repo.ListByWorker(ctx, filter)
	if err != nil {
		s.logger.Error("GetWorkerSchedule: repository error for worker=%s: %v", req.WorkerID, err)
		return nil, fmt.Errorf("%w: GetWorkerSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointmentList(list), nil
}
