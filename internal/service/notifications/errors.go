package notifications

import "errors"

var (
	// ErrNotificationNotFound возвращается, когда уведомление не найдено у текущего пользователя
	ErrNotificationNotFound = errors.New("notifications: notification not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("notifications: internal error")
)
