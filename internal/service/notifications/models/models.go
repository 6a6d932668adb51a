package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
)

// NotificationResponse уведомление в ящике мастера
type NotificationResponse struct {
	ID                 uuid.UUID `json:"id"`
	AppointmentID      uuid.UUID `json:"appointmentId"`
	Kind               string    `json:"kind"`
	Message            string    `json:"message"`
	CancellationReason *string   `json:"cancellationReason,omitempty"`
	IsRead             bool      `json:"isRead"`
	CreatedAt          time.Time `json:"createdAt"`
}

// NotificationListResponse ответ со списком уведомлений
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount"`
}

// MarkAllReadResponse ответ на отметку всех уведомлений
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// FromDomainNotificationList конвертирует список domain моделей в DTO
func FromDomainNotificationList(list []*domain.Notification) *NotificationListResponse {
	resp := &NotificationListResponse{
		Notifications: make([]NotificationResponse, 0, len(list)),
	}

	for _, n := range list {
		if !n.IsRead {
			resp.UnreadCount++
		}
		resp.Notifications = append(resp.Notifications, NotificationResponse{
			ID:                 n.ID,
			AppointmentID:      n.AppointmentID,
			Kind:               string(n.Kind),
			Message:            n.Message,
			CancellationReason: n.CancellationReason,
			IsRead:             n.IsRead,
			CreatedAt:          n.CreatedAt,
		})
	}

	return resp
}
