package adminlog

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david021dp/salon-booking/internal/domain"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	admin := uuid.New()
	created := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO admin_activity_logs (id,admin_id,action_type,details) VALUES ($1,$2,$3,$4) RETURNING created_at")).
		WithArgs(sqlmock.AnyArg(), admin, domain.AdminActionCancelAppointment, []byte(`{"appointment_id":"a-1"}`)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(created))

	entry, err := NewRepository(db).Create(context.Background(), &domain.AdminActivity{
		AdminID: admin,
		Action:  domain.AdminActionCancelAppointment,
		Details: map[string]any{"appointment_id": "a-1"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.Equal(t, created, entry.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO admin_activity_logs").WillReturnError(errors.New("check constraint"))

	_, err = NewRepository(db).Create(context.Background(), &domain.AdminActivity{
		AdminID: uuid.New(),
		Action:  domain.AdminActionBlockTime,
	})
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestRepository_ListByAdmin(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	admin := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, admin_id, action_type, details, created_at FROM admin_activity_logs WHERE admin_id = $1 ORDER BY created_at DESC LIMIT 50")).
		WithArgs(admin).
		WillReturnRows(sqlmock.NewRows([]string{"id", "admin_id", "action_type", "details", "created_at"}).
			AddRow(uuid.New().String(), admin.String(), "block_time", []byte(`{"appointment_time":"13:00"}`), time.Now()).
			AddRow(uuid.New().String(), admin.String(), "create_appointment", nil, time.Now()))

	entries, err := NewRepository(db).ListByAdmin(context.Background(), admin, 50)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.AdminActionBlockTime, entries[0].Action)
	assert.Equal(t, "13:00", entries[0].Details["appointment_time"])
	assert.Nil(t, entries[1].Details)
	assert.NoError(t, mock.ExpectationsWereMet())
}
