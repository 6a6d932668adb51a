package notifications

import (
	"fmt"

	"github.com/david021dp/salon-booking/internal/domain"
)

// AppointmentCreated уведомление мастеру о новой записи
func AppointmentCreated(a *domain.Appointment) *domain.Notification {
	return &domain.Notification{
		RecipientID:   a.WorkerID,
		AppointmentID: a.ID,
		Kind:          domain.NotificationCreated,
		Message:       fmt.Sprintf("New appointment created: %s - %s", a.ClientName(), a.ServiceName),
	}
}

// AppointmentCancelledByClient уведомление мастеру об отмене клиентом
func AppointmentCancelledByClient(a *domain.Appointment, reason *string) *domain.Notification {
	return &domain.Notification{
		RecipientID:   a.WorkerID,
		AppointmentID: a.ID,
		Kind:          domain.NotificationCancelled,
		Message: fmt.Sprintf("%s cancelled their %s appointment on %s at %s",
			a.ClientName(), a.ServiceName, a.Date.Format(domain.DateFormat), a.StartTime),
		CancellationReason: reason,
	}
}

// AppointmentCancelledByAdmin уведомление мастеру об отмене админом.
// Для блокировки сообщение говорит о снятии блокировки.
func AppointmentCancelledByAdmin(a *domain.Appointment, adminName string, reason *string) *domain.Notification {
	date := a.Date.Format(domain.DateFormat)

	message := fmt.Sprintf("%s cancelled %s's %s appointment on %s at %s",
		adminName, a.ClientName(), a.ServiceName, date, a.StartTime)
	if a.IsBlocked() {
		message = fmt.Sprintf("%s unblocked time slot on %s at %s", adminName, date, a.StartTime)
	}

	return &domain.Notification{
		RecipientID:        a.WorkerID,
		AppointmentID:      a.ID,
		Kind:               domain.NotificationCancelled,
		Message:            message,
		CancellationReason: reason,
	}
}

// AppointmentRescheduled уведомление мастеру о переносе записи
func AppointmentRescheduled(a *domain.Appointment, adminName string) *domain.Notification {
	return &domain.Notification{
		RecipientID:   a.WorkerID,
		AppointmentID: a.ID,
		Kind:          domain.NotificationRescheduled,
		Message: fmt.Sprintf("%s moved %s's %s appointment to %s at %s",
			adminName, a.ClientName(), a.ServiceName, a.Date.Format(domain.DateFormat), a.StartTime),
	}
}

// TimeBlocked уведомление мастеру о блокировке его времени другим админом
func TimeBlocked(a *domain.Appointment, adminName string) *domain.Notification {
	return &domain.Notification{
		RecipientID:   a.WorkerID,
		AppointmentID: a.ID,
		Kind:          domain.NotificationCreated,
		Message: fmt.Sprintf("%s blocked time slot on %s at %s (%d min)",
			adminName, a.Date.Format(domain.DateFormat), a.StartTime, a.DurationMinutes),
	}
}
