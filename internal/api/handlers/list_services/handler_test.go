package list_services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david021dp/salon-booking/internal/service/catalog/models"
)

type stubService struct {
	list *models.ServiceListResponse
	err  error
}

func (s *stubService) List(context.Context) (*models.ServiceListResponse, error) {
	return s.list, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandle(t *testing.T) {
	id := uuid.New()
	svc := &stubService{list: &models.ServiceListResponse{Services: []models.ServiceResponse{
		{ID: id, Name: "Haircut", Price: 25, DurationMinutes: 30},
	}}}

	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"services":[{"id":"`+id.String()+`","name":"Haircut","price":25,"durationMinutes":30}]}`,
		rec.Body.String())
}

func TestHandle_Failure(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(&stubService{err: errors.New("db down")}, nopLogger{}).
		Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/services", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
