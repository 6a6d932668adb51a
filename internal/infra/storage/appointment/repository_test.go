package appointment

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/pkg/dbmetrics"
	"github.com/david021dp/salon-booking/pkg/ptr"
)

func newRepo(t *testing.T) (*Repository, *sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), db, mock
}

func appointmentRow(id, worker uuid.UUID, start string, duration int, status domain.AppointmentStatus) []driver.Value {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	return []driver.Value{
		id.String(),
		uuid.New().String(),
		worker.String(),
		"Jelena",
		string(domain.KindAppointment),
		time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		start,
		duration,
		"Haircut",
		"Ana",
		"Petrovic",
		nil,
		"ana@example.com",
		nil,
		string(status),
		false,
		nil,
		nil,
		nil,
		now,
		now,
	}
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newRepo(t)
	created := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointments")).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, created))

	a, err := repo.Create(context.Background(), &domain.Appointment{
		UserID:          uuid.New(),
		WorkerID:        uuid.New(),
		Kind:            domain.KindAppointment,
		Date:            time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 30,
		Status:          domain.StatusScheduled,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, created, a.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_UniqueViolation(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointments")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "unique_appointment_slot"})

	_, err := repo.Create(context.Background(), &domain.Appointment{
		WorkerID:  uuid.New(),
		Date:      time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
	})

	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_OtherError(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO appointments")).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Create(context.Background(), &domain.Appointment{Date: time.Now()})

	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrSlotTaken)
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, mock := newRepo(t)
	id, worker := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, worker_id")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(appointmentRow(id, worker, "10:00:00", 45, domain.StatusScheduled)...))

	a, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, a.ID)
	assert.Equal(t, worker, a.WorkerID)
	assert.Equal(t, "10:00", a.StartTime.String())
	assert.Equal(t, 45, a.DurationMinutes)
	assert.True(t, a.IsScheduled())
	assert.Nil(t, a.Phone)
	assert.Nil(t, a.CancelledBy)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id")).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRepository_ListByWorker_LocksRowsInsideTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)
	worker := uuid.New()
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM appointments WHERE worker_id = \$1 AND appointment_date = \$2 AND status = \$3 ORDER BY appointment_time ASC FOR UPDATE`).
		WithArgs(worker, "2025-03-15", domain.StatusScheduled).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(appointmentRow(uuid.New(), worker, "09:00:00", 30, domain.StatusScheduled)...).
			AddRow(appointmentRow(uuid.New(), worker, "11:00:00", 60, domain.StatusScheduled)...))
	mock.ExpectCommit()

	tx, err := dbmetrics.Wrap(db, nil).BeginTx(context.Background(), nil)
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	status := domain.StatusScheduled
	list, err := repo.ListByWorker(ctx, domain.WorkerAppointmentsFilter{WorkerID: worker, Date: &date, Status: &status})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.Len(t, list, 2)
	assert.Equal(t, "11:00", list[1].StartTime.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListByWorker_NoLockOutsideTransaction(t *testing.T) {
	repo, _, mock := newRepo(t)
	worker := uuid.New()
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`ORDER BY appointment_time ASC$`).
		WillReturnRows(sqlmock.NewRows(columns))

	list, err := repo.ListByWorker(context.Background(), domain.WorkerAppointmentsFilter{WorkerID: worker, Date: &date})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountCreatedByUserBetween(t *testing.T) {
	repo, _, mock := newRepo(t)
	user := uuid.New()
	from := time.Date(2025, 3, 14, 23, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM appointments")).
		WithArgs(user, domain.KindAppointment, domain.StatusScheduled, from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountCreatedByUserBetween(context.Background(), user, from, to)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepository_Update(t *testing.T) {
	repo, _, mock := newRepo(t)
	id, worker := uuid.New(), uuid.New()

	row := appointmentRow(id, worker, "12:00:00", 90, domain.StatusScheduled)
	row[15] = true

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE appointments SET updated_at = NOW()")).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(row...))

	a, err := repo.Update(context.Background(), id, domain.AppointmentChanges{
		DurationMinutes: ptr.Ptr(90),
		MarkRescheduled: true,
	})
	require.NoError(t, err)
	assert.True(t, a.IsRescheduled)
	assert.Equal(t, 90, a.DurationMinutes)
}

func TestRepository_Update_UniqueViolation(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE appointments")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "unique_appointment_slot"})

	_, err := repo.Update(context.Background(), uuid.New(), domain.AppointmentChanges{StartTime: nil, Notes: ptr.Ptr("x")})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestRepository_Cancel(t *testing.T) {
	repo, _, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE appointments SET status = $1, cancelled_by = $2")).
		WithArgs(domain.StatusCancelled, domain.CancelledByClient, ptr.Ptr("sick"), id, domain.StatusScheduled).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Cancel(context.Background(), id, domain.CancelledByClient, ptr.Ptr("sick")))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE appointments")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Cancel(context.Background(), id, domain.CancelledByAdmin, nil), ErrAppointmentNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, _, mock := newRepo(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM appointments WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), id))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM appointments")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrAppointmentNotFound)
}
