package create_appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david021dp/salon-booking/internal/api/handlers"
	"github.com/david021dp/salon-booking/internal/api/middleware"
	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/internal/service/appointments/models"
	createAppointment "github.com/david021dp/salon-booking/internal/usecase/create_appointment"
)

type stubUseCase struct {
	got    *createAppointment.Request
	result *domain.Appointment
	err    error
}

func (s *stubUseCase) Execute(_ context.Context, req *createAppointment.Request) (*domain.Appointment, error) {
	s.got = req
	return s.result, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var client = domain.Actor{ID: uuid.New(), Role: domain.RoleClient}

func post(h *Handler, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	r = r.WithContext(middleware.WithActor(r.Context(), client))

	rec := httptest.NewRecorder()
	h.Handle(rec, r)
	return rec
}

func validBody(worker, service uuid.UUID) string {
	return fmt.Sprintf(`{
		"workerId": %q,
		"serviceIds": [%q],
		"date": "2025-03-15",
		"startTime": "10:00",
		"firstName": "Ana",
		"lastName": "Petrovic",
		"phone": "+381641234567",
		"email": "ana@example.com"
	}`, worker, service)
}

func TestHandle_Created(t *testing.T) {
	worker, service := uuid.New(), uuid.New()
	uc := &stubUseCase{result: &domain.Appointment{
		ID:              uuid.New(),
		UserID:          client.ID,
		WorkerID:        worker,
		Kind:            domain.KindAppointment,
		Date:            time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 45,
		ServiceName:     "Haircut",
		Status:          domain.StatusScheduled,
	}}

	rec := post(NewHandler(uc, nopLogger{}), validBody(worker, service))
	require.Equal(t, http.StatusCreated, rec.Code)

	var body models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-03-15", body.Date)
	assert.Equal(t, "10:00", body.StartTime)
	assert.Equal(t, "scheduled", body.Status)

	assert.Equal(t, client, uc.got.Actor)
	assert.Equal(t, []uuid.UUID{service}, uc.got.ServiceIDs)
	assert.Equal(t, "10:00", uc.got.StartTime.String())
}

func TestHandle_ErrorMapping(t *testing.T) {
	v := &domain.ValidationError{}
	v.Add("phone", "invalid phone number format")

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "validation", err: fmt.Errorf("%w: %w", createAppointment.ErrInvalidInput, v), wantStatus: http.StatusBadRequest},
		{name: "service", err: createAppointment.ErrServiceNotFound, wantStatus: http.StatusBadRequest},
		{name: "worker", err: createAppointment.ErrWorkerNotFound, wantStatus: http.StatusNotFound},
		{name: "conflict", err: createAppointment.ErrSlotNotAvailable, wantStatus: http.StatusConflict},
		{name: "limit", err: createAppointment.ErrDailyLimitExceeded, wantStatus: http.StatusTooManyRequests},
		{name: "internal", err: createAppointment.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(NewHandler(&stubUseCase{err: tt.err}, nopLogger{}), validBody(uuid.New(), uuid.New()))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandle_ValidationDetails(t *testing.T) {
	v := &domain.ValidationError{}
	v.Add("firstName", "is required")

	rec := post(NewHandler(&stubUseCase{err: fmt.Errorf("%w: %w", createAppointment.ErrInvalidInput, v)}, nopLogger{}),
		validBody(uuid.New(), uuid.New()))

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Details, 1)
	assert.Equal(t, "firstName", body.Details[0].Field)
}

func TestHandle_ConflictMessage(t *testing.T) {
	rec := post(NewHandler(&stubUseCase{err: createAppointment.ErrSlotNotAvailable}, nopLogger{}), validBody(uuid.New(), uuid.New()))
	assert.JSONEq(t, `{"error":"this time slot is already booked, please select another"}`, rec.Body.String())
}

func TestHandle_BadRequests(t *testing.T) {
	h := NewHandler(&stubUseCase{}, nopLogger{})

	assert.Equal(t, http.StatusBadRequest, post(h, `{"workerId":`).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, `{"date":"15/03/2025","startTime":"10:00"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(h, `{"date":"2025-03-15","startTime":"ten"}`).Code)
}

func TestHandle_NonCanonicalStartTime(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, nopLogger{})

	body := strings.Replace(validBody(uuid.New(), uuid.New()), `"10:00"`, `"9:00"`, 1)
	rec := post(h, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInvalidDateTime)
	assert.Nil(t, uc.got)
}
