package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david021dp/salon-booking/internal/domain"
	appointmentRepo "github.com/david021dp/salon-booking/internal/infra/storage/appointment"
	"github.com/david021dp/salon-booking/internal/service/appointments/models"
	"github.com/david021dp/salon-booking/pkg/ptr"
)

type fakeRepo struct {
	items      []*domain.Appointment
	err        error
	lastFilter domain.WorkerAppointmentsFilter
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Appointment, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, a := range r.items {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, appointmentRepo.ErrAppointmentNotFound
}

func (r *fakeRepo) ListByUser(_ context.Context, userID uuid.UUID, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*domain.Appointment
	for _, a := range r.items {
		if a.UserID == userID && a.Kind == domain.KindAppointment && (status == nil || a.Status == *status) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByWorker(_ context.Context, filter domain.WorkerAppointmentsFilter) ([]*domain.Appointment, error) {
	r.lastFilter = filter
	var out []*domain.Appointment
	for _, a := range r.items {
		if a.WorkerID == filter.WorkerID {
			out = append(out, a)
		}
	}
	return out, r.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func fixture() (*fakeRepo, *domain.Appointment) {
	cancelledBy := domain.CancelledByClient
	cancelledAt := time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)

	a := &domain.Appointment{
		ID:                 uuid.New(),
		UserID:             uuid.New(),
		WorkerID:           uuid.New(),
		Kind:               domain.KindAppointment,
		Date:               time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime:          "10:00",
		DurationMinutes:    45,
		Status:             domain.StatusCancelled,
		CancelledBy:        &cancelledBy,
		CancelledAt:        &cancelledAt,
		CancellationReason: ptr.Ptr("sick"),
	}
	return &fakeRepo{items: []*domain.Appointment{a}}, a
}

func TestService_GetByID(t *testing.T) {
	repo, a := fixture()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetByID(context.Background(), a.ID, domain.Actor{ID: a.UserID, Role: domain.RoleClient})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-15", resp.Date)
	assert.Equal(t, "10:00", resp.StartTime)
	require.NotNil(t, resp.CancelledBy)
	assert.Equal(t, "client", *resp.CancelledBy)
	assert.Equal(t, "2025-03-14T18:30:00Z", *resp.CancelledAt)

	_, err = svc.GetByID(context.Background(), a.ID, domain.Actor{ID: uuid.New(), Role: domain.RoleClient})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), a.ID, domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin})
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), uuid.New(), domain.Actor{ID: a.UserID, Role: domain.RoleClient})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_GetByID_RepositoryError(t *testing.T) {
	svc := NewService(&fakeRepo{err: errors.New("db down")}, nopLogger{})

	_, err := svc.GetByID(context.Background(), uuid.New(), domain.Actor{Role: domain.RoleAdmin})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_GetUserAppointments(t *testing.T) {
	repo, a := fixture()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		Actor:  domain.Actor{ID: a.UserID, Role: domain.RoleClient},
		UserID: a.UserID,
		Status: ptr.Ptr("cancelled"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)

	_, err = svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		Actor:  domain.Actor{ID: uuid.New(), Role: domain.RoleClient},
		UserID: a.UserID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		Actor:  domain.Actor{ID: a.UserID, Role: domain.RoleClient},
		UserID: a.UserID,
		Status: ptr.Ptr("completed"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_GetWorkerSchedule(t *testing.T) {
	repo, a := fixture()
	svc := NewService(repo, nopLogger{})
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	_, err := svc.GetWorkerSchedule(context.Background(), &models.GetWorkerScheduleRequest{
		Actor:    domain.Actor{ID: a.UserID, Role: domain.RoleClient},
		WorkerID: a.WorkerID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.GetWorkerSchedule(context.Background(), &models.GetWorkerScheduleRequest{
		Actor:    domain.Actor{ID: uuid.New(), Role: domain.RoleHeadAdmin},
		WorkerID: a.WorkerID,
		Date:     &date,
		Status:   ptr.Ptr("scheduled"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Appointments, 1)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, domain.StatusScheduled, *repo.lastFilter.Status)
	assert.Equal(t, &date, repo.lastFilter.Date)
}
