package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind type of event a worker is notified about
type NotificationKind string

const (
	NotificationCreated     NotificationKind = "appointment_created"
	NotificationCancelled   NotificationKind = "appointment_cancelled"
	NotificationRescheduled NotificationKind = "appointment_rescheduled"
)

// Notification represents a message delivered to a worker's inbox
type Notification struct {
	ID                 uuid.UUID
	RecipientID        uuid.UUID
	AppointmentID      uuid.UUID
	Kind               NotificationKind
	Message            string
	CancellationReason *string
	IsRead             bool
	CreatedAt          time.Time
}
