package cancel_appointment

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/internal/usecase/usecasetest"
	"github.com/david021dp/salon-booking/pkg/metrics"
	"github.com/david021dp/salon-booking/pkg/ptr"
)

type testEnv struct {
	store    *usecasetest.Store
	users    *usecasetest.Users
	notifier *usecasetest.Notifier
	activity *usecasetest.ActivityLog
	outcomes *usecasetest.Outcomes
	uc       *UseCase

	worker domain.Actor
	admin  domain.Actor
	client domain.Actor
	date   time.Time
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:    usecasetest.NewStore(),
		users:    usecasetest.NewUsers(),
		notifier: &usecasetest.Notifier{},
		activity: &usecasetest.ActivityLog{},
		outcomes: &usecasetest.Outcomes{},
		client:   domain.Actor{ID: uuid.New(), Role: domain.RoleClient},
		date:     time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	env.worker = env.users.AddAdmin("Jelena", "Markovic", "jelena@salon.rs")
	env.admin = env.users.AddAdmin("Marko", "Ilic", "marko@salon.rs")

	env.uc = NewUseCase(env.store, env.users, usecasetest.TxManager{}, env.notifier, env.activity, env.outcomes, usecasetest.Logger{})

	return env
}

func (e *testEnv) seedFor(owner uuid.UUID) *domain.Appointment {
	return e.store.Seed(&domain.Appointment{
		UserID:          owner,
		WorkerID:        e.worker.ID,
		Date:            e.date,
		StartTime:       "10:00",
		DurationMinutes: 45,
		ServiceName:     "Haircut",
		FirstName:       "Ana",
		LastName:        "Petrovic",
	})
}

func TestExecute_ClientCancelsOwnAppointment(t *testing.T) {
	env := newEnv(t)
	a := env.seedFor(env.client.ID)

	resp, err := env.uc.Execute(context.Background(), &Request{
		Actor:         env.client,
		AppointmentID: a.ID,
		Reason:        ptr.Ptr("  feeling sick "),
	})
	require.NoError(t, err)
	assert.Equal(t, ResultCancelled, resp.Result)

	stored := env.store.Get(a.ID)
	assert.True(t, stored.IsCancelled())
	assert.Equal(t, domain.CancelledByClient, *stored.CancelledBy)
	assert.Equal(t, "feeling sick", *stored.CancellationReason)
	assert.NotNil(t, stored.CancelledAt)

	require.Equal(t, 1, env.notifier.Count())
	n := env.notifier.Sent[0]
	assert.Equal(t, env.worker.ID, n.RecipientID)
	assert.Equal(t, domain.NotificationCancelled, n.Kind)
	assert.Equal(t, "Ana Petrovic cancelled their Haircut appointment on 2025-03-15 at 10:00", n.Message)
	assert.Equal(t, "feeling sick", *n.CancellationReason)
	assert.Equal(t, 1, env.outcomes.Get(operation, metrics.OutcomeCancelled))

	// клиентская отмена в журнал админов не попадает
	assert.Empty(t, env.activity.Actions())
}

func TestExecute_CancelTwiceIsIdempotent(t *testing.T) {
	env := newEnv(t)
	a := env.seedFor(env.client.ID)

	req := &Request{Actor: env.client, AppointmentID: a.ID, Reason: ptr.Ptr("plans changed")}

	first, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, ResultCancelled, first.Result)

	second, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, ResultAlreadyCancelled, second.Result)

	assert.Equal(t, 1, env.notifier.Count())
	assert.Equal(t, 1, env.outcomes.Get(operation, metrics.OutcomeCancelled))
}

func TestExecute_MissingAppointmentIsSuccess(t *testing.T) {
	env := newEnv(t)

	resp, err := env.uc.Execute(context.Background(), &Request{
		Actor:         env.client,
		AppointmentID: uuid.New(),
		Reason:        ptr.Ptr("whatever"),
	})
	require.NoError(t, err)
	assert.Equal(t, ResultNotFound, resp.Result)
	assert.Zero(t, env.notifier.Count())
}

func TestExecute_ClientCannotCancelForeignAppointment(t *testing.T) {
	env := newEnv(t)
	a := env.seedFor(uuid.New())

	_, err := env.uc.Execute(context.Background(), &Request{
		Actor:         env.client,
		AppointmentID: a.ID,
		Reason:        ptr.Ptr("not mine"),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.True(t, env.store.Get(a.ID).IsScheduled())
}

func TestExecute_ClientReasonValidation(t *testing.T) {
	tests := []struct {
		name   string
		reason *string
	}{
		{name: "missing", reason: nil},
		{name: "blank", reason: ptr.Ptr("   ")},
		{name: "too long", reason: ptr.Ptr(strings.Repeat("a", domain.MaxCancellationReasonLength+1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t)
			a := env.seedFor(env.client.ID)

			_, err := env.uc.Execute(context.Background(), &Request{Actor: env.client, AppointmentID: a.ID, Reason: tt.reason})
			require.ErrorIs(t, err, ErrInvalidInput)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "reason", verr.Violations[0].Field)
		})
	}
}

func TestExecute_AdminCancelsWithoutReason(t *testing.T) {
	env := newEnv(t)
	a := env.seedFor(env.client.ID)

	resp, err := env.uc.Execute(context.Background(), &Request{Actor: env.admin, AppointmentID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, ResultCancelled, resp.Result)

	stored := env.store.Get(a.ID)
	assert.Equal(t, domain.CancelledByAdmin, *stored.CancelledBy)
	assert.Nil(t, stored.CancellationReason)

	require.Equal(t, 1, env.notifier.Count())
	assert.Equal(t, "Marko Ilic cancelled Ana Petrovic's Haircut appointment on 2025-03-15 at 10:00", env.notifier.Sent[0].Message)

	require.Equal(t, []domain.AdminAction{domain.AdminActionCancelAppointment}, env.activity.Actions())
	entry := env.activity.Entries[0]
	assert.Equal(t, env.admin.ID, entry.AdminID)
	assert.Equal(t, a.ID.String(), entry.Details["appointment_id"])
	assert.Equal(t, "Ana Petrovic", entry.Details["client_name"])
	assert.NotContains(t, entry.Details, "cancellation_reason")
}

func TestExecute_AdminCancelRecordsReason(t *testing.T) {
	env := newEnv(t)
	a := env.seedFor(env.client.ID)

	_, err := env.uc.Execute(context.Background(), &Request{
		Actor:         env.admin,
		AppointmentID: a.ID,
		Reason:        ptr.Ptr("worker is sick"),
	})
	require.NoError(t, err)

	require.Len(t, env.activity.Entries, 1)
	assert.Equal(t, "worker is sick", env.activity.Entries[0].Details["cancellation_reason"])
}

func TestExecute_ActivityLogFailure(t *testing.T) {
	env := newEnv(t)
	a := env.seedFor(env.client.ID)
	env.activity.Err = errors.New("insert failed")

	_, err := env.uc.Execute(context.Background(), &Request{Actor: env.admin, AppointmentID: a.ID})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, env.notifier.Count())
}

func TestExecute_WorkerCancelsOwnScheduleSilently(t *testing.T) {
	env := newEnv(t)
	a := env.seedFor(env.client.ID)

	_, err := env.uc.Execute(context.Background(), &Request{Actor: env.worker, AppointmentID: a.ID})
	require.NoError(t, err)
	assert.Zero(t, env.notifier.Count())
}

func TestExecute_UnblockDeletesRow(t *testing.T) {
	env := newEnv(t)
	blocked := env.store.Seed(&domain.Appointment{
		UserID:          env.admin.ID,
		WorkerID:        env.worker.ID,
		Kind:            domain.KindBlocked,
		Date:            env.date,
		StartTime:       "13:00",
		DurationMinutes: 60,
		ServiceName:     domain.BlockedServiceName,
		FirstName:       domain.BlockedFirstName,
		LastName:        domain.BlockedLastName,
	})

	resp, err := env.uc.Execute(context.Background(), &Request{Actor: env.admin, AppointmentID: blocked.ID})
	require.NoError(t, err)
	assert.Equal(t, ResultDeleted, resp.Result)
	assert.Nil(t, env.store.Get(blocked.ID))
	assert.Equal(t, 1, env.outcomes.Get(operation, metrics.OutcomeDeleted))

	require.Equal(t, 1, env.notifier.Count())
	assert.Equal(t, "Marko Ilic unblocked time slot on 2025-03-15 at 13:00", env.notifier.Sent[0].Message)

	// Повторное снятие - успех без побочных эффектов
	again, err := env.uc.Execute(context.Background(), &Request{Actor: env.admin, AppointmentID: blocked.ID})
	require.NoError(t, err)
	assert.Equal(t, ResultNotFound, again.Result)
	assert.Equal(t, 1, env.notifier.Count())

	require.Equal(t, []domain.AdminAction{domain.AdminActionUnblockTime}, env.activity.Actions())
	assert.NotContains(t, env.activity.Entries[0].Details, "client_name")
}

func TestExecute_AdminNameFallback(t *testing.T) {
	env := newEnv(t)
	a := env.seedFor(env.client.ID)
	env.users.Down = true

	_, err := env.uc.Execute(context.Background(), &Request{Actor: env.admin, AppointmentID: a.ID})
	require.NoError(t, err)

	require.Equal(t, 1, env.notifier.Count())
	assert.True(t, strings.HasPrefix(env.notifier.Sent[0].Message, "Admin cancelled"))
}

func TestExecute_RepositoryFailure(t *testing.T) {
	env := newEnv(t)
	a := env.seedFor(env.client.ID)
	env.store.FailNext = errors.New("connection reset")

	_, err := env.uc.Execute(context.Background(), &Request{Actor: env.admin, AppointmentID: a.ID})
	assert.ErrorIs(t, err, ErrInternal)
}
