package notifications

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david021dp/salon-booking/internal/api/middleware"
	"github.com/david021dp/salon-booking/internal/domain"
	notificationsService "github.com/david021dp/salon-booking/internal/service/notifications"
	"github.com/david021dp/salon-booking/internal/service/notifications/models"
)

type stubService struct {
	unreadOnly bool
	marked     uuid.UUID
	markErr    error
	listErr    error
}

func (s *stubService) List(_ context.Context, _ uuid.UUID, unreadOnly bool) (*models.NotificationListResponse, error) {
	s.unreadOnly = unreadOnly
	if s.listErr != nil {
		return nil, s.listErr
	}
	return &models.NotificationListResponse{Notifications: []models.NotificationResponse{}, UnreadCount: 0}, nil
}

func (s *stubService) MarkRead(_ context.Context, id, _ uuid.UUID) error {
	s.marked = id
	return s.markErr
}

func (s *stubService) MarkAllRead(context.Context, uuid.UUID) (*models.MarkAllReadResponse, error) {
	return &models.MarkAllReadResponse{Updated: 3}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func withActor(r *http.Request) *http.Request {
	return r.WithContext(middleware.WithActor(r.Context(), domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin}))
}

func TestList(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, nopLogger{})

	rec := httptest.NewRecorder()
	h.List(rec, withActor(httptest.NewRequest(http.MethodGet, "/api/v1/notifications?unreadOnly=true", nil)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.unreadOnly)
	assert.JSONEq(t, `{"notifications":[],"unreadCount":0}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.List(rec, withActor(httptest.NewRequest(http.MethodGet, "/api/v1/notifications?unreadOnly=maybe", nil)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	NewHandler(&stubService{listErr: notificationsService.ErrInternal}, nopLogger{}).
		List(rec, withActor(httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMarkRead(t *testing.T) {
	markRead := func(svc *stubService, id string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPatch, "/api/v1/notifications/"+id+"/read", nil)
		r = mux.SetURLVars(withActor(r), map[string]string{"notificationId": id})
		rec := httptest.NewRecorder()
		NewHandler(svc, nopLogger{}).MarkRead(rec, r)
		return rec
	}

	svc := &stubService{}
	id := uuid.New()
	assert.Equal(t, http.StatusNoContent, markRead(svc, id.String()).Code)
	assert.Equal(t, id, svc.marked)

	assert.Equal(t, http.StatusBadRequest, markRead(&stubService{}, "1").Code)
	assert.Equal(t, http.StatusNotFound,
		markRead(&stubService{markErr: notificationsService.ErrNotificationNotFound}, uuid.NewString()).Code)
	assert.Equal(t, http.StatusInternalServerError,
		markRead(&stubService{markErr: notificationsService.ErrInternal}, uuid.NewString()).Code)
}

func TestMarkAllRead(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&stubService{}, nopLogger{}).
		MarkAllRead(rec, withActor(httptest.NewRequest(http.MethodPatch, "/api/v1/notifications/read-all", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"updated":3}`, rec.Body.String())
}
