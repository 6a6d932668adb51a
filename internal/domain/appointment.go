package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentKind distinguishes client appointments from admin time blocks
type AppointmentKind string

const (
	KindAppointment AppointmentKind = "appointment"
	KindBlocked     AppointmentKind = "blocked"
)

// CancelledBy records who cancelled an appointment
type CancelledBy string

const (
	CancelledByClient CancelledBy = "client"
	CancelledByAdmin  CancelledBy = "admin"
)

// Appointment represents a booked (or blocked) time window of a worker
type Appointment struct {
	ID         uuid.UUID
	UserID     uuid.UUID // клиент, либо админ для созданных админом и блокировок
	WorkerID   uuid.UUID
	WorkerName string
	Kind       AppointmentKind

	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	ServiceName     string

	// Данные клиента (для блокировок - отображаемые значения)
	FirstName string
	LastName  string
	Phone     *string
	Email     string
	Notes     *string

	Status        AppointmentStatus
	IsRescheduled bool

	CancelledBy        *CancelledBy
	CancelledAt        *time.Time
	CancellationReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsScheduled returns true if the appointment occupies its time window
func (a *Appointment) IsScheduled() bool {
	return a.Status == StatusScheduled
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// IsBlocked returns true for admin time blocks
func (a *Appointment) IsBlocked() bool {
	return a.Kind == KindBlocked
}

// StartMinutes returns the start as minutes since midnight
func (a *Appointment) StartMinutes() int {
	return a.StartTime.Minutes()
}

// EndMinutes returns the raw (not grid-rounded) end as minutes since midnight
func (a *Appointment) EndMinutes() int {
	return a.StartTime.Minutes() + a.DurationMinutes
}

// ClientName returns "First Last"
func (a *Appointment) ClientName() string {
	return a.FirstName + " " + a.LastName
}

// AppointmentChanges изменяемые при редактировании поля; nil - оставить как есть
type AppointmentChanges struct {
	ServiceName     *string
	DurationMinutes *int
	Date            *time.Time
	StartTime       *types.TimeString
	Notes           *string
	MarkRescheduled bool // только выставляет флаг, сброса нет
}

// IsEmpty returns true if nothing would be changed
func (c AppointmentChanges) IsEmpty() bool {
	return c.ServiceName == nil && c.DurationMinutes == nil && c.Date == nil &&
		c.StartTime == nil && c.Notes == nil && !c.MarkRescheduled
}

// WorkerAppointmentsFilter фильтр записей мастера
type WorkerAppointmentsFilter struct {
	WorkerID uuid.UUID          // Обязательный параметр
	Date     *time.Time         // Конкретный день (опционально)
	Status   *AppointmentStatus // Фильтр по статусу (опционально)
}
