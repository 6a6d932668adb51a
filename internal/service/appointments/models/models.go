package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// GetUserAppointmentsRequest запрос истории записей клиента
type GetUserAppointmentsRequest struct {
	Actor  domain.Actor
	UserID uuid.UUID
	Status *string
}

// GetWorkerScheduleRequest запрос расписания мастера
type GetWorkerScheduleRequest struct {
	Actor    domain.Actor
	WorkerID uuid.UUID
	Date     *time.Time // конкретный день (опционально)
	Status   *string    // фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetWorkerScheduleRequest) ToDomainFilter() (domain.WorkerAppointmentsFilter, error) {
	filter := domain.WorkerAppointmentsFilter{
		WorkerID: r.WorkerID,
		Date:     r.Date,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"userId"`
	WorkerID        uuid.UUID `json:"workerId"`
	WorkerName      string    `json:"workerName"`
	Kind            string    `json:"kind"`
	Date            string    `json:"date"`      // "2025-10-15"
	StartTime       string    `json:"startTime"` // "10:00"
	DurationMinutes int       `json:"durationMinutes"`
	ServiceName     string    `json:"serviceName"`

	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     *string `json:"phone,omitempty"`
	Email     string  `json:"email"`
	Notes     *string `json:"notes,omitempty"`

	Status        string `json:"status"`
	IsRescheduled bool   `json:"isRescheduled"`

	CancelledBy        *string `json:"cancelledBy,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601
	CancellationReason *string `json:"cancellationReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		UserID:             a.UserID,
		WorkerID:           a.WorkerID,
		WorkerName:         a.WorkerName,
		Kind:               string(a.Kind),
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		DurationMinutes:    a.DurationMinutes,
		ServiceName:        a.ServiceName,
		FirstName:          a.FirstName,
		LastName:           a.LastName,
		Phone:              a.Phone,
		Email:              a.Email,
		Notes:              a.Notes,
		Status:             string(a.Status),
		IsRescheduled:      a.IsRescheduled,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if a.CancelledBy != nil {
		by := string(*a.CancelledBy)
		resp.CancelledBy = &by
	}
	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
	}

	for _, a := range list {
		if item := FromDomainAppointment(a); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}

	return resp
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainStatus(status string) (domain.AppointmentStatus, error) {
	switch s := domain.AppointmentStatus(status); s {
	case domain.StatusScheduled, domain.StatusCancelled:
		return s, nil
	}

	return "", ErrInvalidStatus
}
