package notifications

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/david021dp/salon-booking/internal/api/handlers"
	"github.com/david021dp/salon-booking/internal/api/middleware"
	notificationsService "github.com/david021dp/salon-booking/internal/service/notifications"
)

const (
	msgMissingIdentity       = "отсутствуют данные пользователя"
	msgInvalidNotificationID = "некорректный ID уведомления"
	msgInvalidUnreadOnly     = "некорректное значение unreadOnly"
	msgNotFound              = "уведомление не найдено"
)

// Handler ящик уведомлений текущего пользователя
type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/notifications?unreadOnly=true
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	unreadOnly := false
	if raw := r.URL.Query().Get("unreadOnly"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /notifications - Invalid unreadOnly: %s", raw)
			handlers.RespondBadRequest(w, msgInvalidUnreadOnly)
			return
		}
		unreadOnly = parsed
	}

	list, err := h.service.List(r.Context(), userID, unreadOnly)
	if err != nil {
		h.logger.Error("GET /notifications - Failed to list notifications: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// MarkRead PATCH /api/v1/notifications/{notificationId}/read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	notificationID, err := handlers.PathUUID(r, "notificationId")
	if err != nil {
		h.logger.Warn("PATCH /notifications/{id}/read - Invalid notification ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNotificationID)
		return
	}

	if err := h.service.MarkRead(r.Context(), notificationID, userID); err != nil {
		if errors.Is(err, notificationsService.ErrNotificationNotFound) {
			h.logger.Warn("PATCH /notifications/{id}/read - Not found: notification_id=%s, user_id=%s",
				notificationID, userID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("PATCH /notifications/{id}/read - Failed to mark read: notification_id=%s, error=%v",
			notificationID, err)
		handlers.RespondInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkAllRead PATCH /api/v1/notifications/read-all
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	resp, err := h.service.MarkAllRead(r.Context(), userID)
	if err != nil {
		h.logger.Error("PATCH /notifications/read-all - Failed to mark all read: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /notifications/read-all - Marked %d notifications: user_id=%s", resp.Updated, userID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
