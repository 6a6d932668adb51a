package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/pkg/dbmetrics"
	"github.com/david021dp/salon-booking/pkg/psqlbuilder"
)

const (
	tableName = "appointments"

	// uniqueSlotConstraint частичный уникальный индекс (worker_id, appointment_date, appointment_time) WHERE status = 'scheduled'
	uniqueSlotConstraint = "unique_appointment_slot"
	pgUniqueViolation    = "23505"
)

var columns = []string{
	"id",
	"user_id",
	"worker_id",
	"worker_name",
	"kind",
	"appointment_date",
	"appointment_time",
	"duration",
	"service",
	"first_name",
	"last_name",
	"phone",
	"email",
	"notes",
	"status",
	"is_rescheduled",
	"cancelled_by",
	"cancelled_at",
	"cancellation_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей к мастерам
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись.
// Если в контексте есть транзакция (txmanager), запрос выполняется в ней.
// Нарушение уникального индекса слота возвращается как ErrSlotTaken:
// это последний рубеж против гонки двух одновременных записей.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"user_id",
			"worker_id",
			"worker_name",
			"kind",
			"appointment_date",
			"appointment_time",
			"duration",
			"service",
			"first_name",
			"last_name",
			"phone",
			"email",
			"notes",
			"status",
			"is_rescheduled",
		).
		Values(
			a.ID,
			a.UserID,
			a.WorkerID,
			a.WorkerName,
			a.Kind,
			a.Date.Format(domain.DateFormat),
			a.StartTime,
			a.DurationMinutes,
			a.ServiceName,
			a.FirstName,
			a.LastName,
			a.Phone,
			a.Email,
			a.Notes,
			a.Status,
			a.IsRescheduled,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if isSlotTaken(err) {
			return nil, fmt.Errorf("%w: worker=%s date=%s time=%s",
				ErrSlotTaken, a.WorkerID, a.Date.Format(domain.DateFormat), a.StartTime)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return a, nil
}

// ListByWorker получает записи мастера.
// Внутри транзакции для конкретного дня строки блокируются (FOR UPDATE),
// чтобы проверка конфликтов и вставка видели один и тот же набор записей.
func (r *Repository) ListByWorker(ctx context.Context, filter domain.WorkerAppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"worker_id": filter.WorkerID})

	if filter.Date != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"appointment_date": filter.Date.Format(domain.DateFormat)}).
			OrderBy("appointment_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("appointment_date DESC", "appointment_time ASC")
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByWorker - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByWorker - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListByUser получает записи клиента (новые сверху), опционально по статусу
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"kind": domain.KindAppointment}).
		OrderBy("appointment_date DESC", "appointment_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// CountCreatedByUserBetween считает активные записи клиента, созданные в [from, to)
func (r *Repository) CountCreatedByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableName).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"kind": domain.KindAppointment}).
		Where(squirrel.Eq{"status": domain.StatusScheduled}).
		Where(squirrel.GtOrEq{"created_at": from}).
		Where(squirrel.Lt{"created_at": to}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountCreatedByUserBetween - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountCreatedByUserBetween - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// Update применяет изменения и возвращает обновленную запись
func (r *Repository) Update(ctx context.Context, id uuid.UUID, changes domain.AppointmentChanges) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(tableName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if changes.ServiceName != nil {
		updateBuilder = updateBuilder.Set("service", *changes.ServiceName)
	}
	if changes.DurationMinutes != nil {
		updateBuilder = updateBuilder.Set("duration", *changes.DurationMinutes)
	}
	if changes.Date != nil {
		updateBuilder = updateBuilder.Set("appointment_date", changes.Date.Format(domain.DateFormat))
	}
	if changes.StartTime != nil {
		updateBuilder = updateBuilder.Set("appointment_time", *changes.StartTime)
	}
	if changes.Notes != nil {
		// пустая строка очищает заметки
		var notes interface{}
		if *changes.Notes != "" {
			notes = *changes.Notes
		}
		updateBuilder = updateBuilder.Set("notes", notes)
	}
	if changes.MarkRescheduled {
		updateBuilder = updateBuilder.Set("is_rescheduled", true)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		if isSlotTaken(err) {
			return nil, fmt.Errorf("%w: Update - appointment=%s", ErrSlotTaken, id)
		}
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return a, nil
}

// Cancel переводит активную запись в cancelled
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, by domain.CancelledBy, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", domain.StatusCancelled).
		Set("cancelled_by", by).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusScheduled}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Delete физически удаляет запись. Используется для снятия блокировок времени.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a                    domain.Appointment
		createdAt, updatedAt sql.NullTime
		cancelledAt          sql.NullTime
		cancelledBy          sql.NullString
	)

	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.WorkerID,
		&a.WorkerName,
		&a.Kind,
		&a.Date,
		&a.StartTime,
		&a.DurationMinutes,
		&a.ServiceName,
		&a.FirstName,
		&a.LastName,
		&a.Phone,
		&a.Email,
		&a.Notes,
		&a.Status,
		&a.IsRescheduled,
		&cancelledBy,
		&cancelledAt,
		&a.CancellationReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledBy.Valid {
		by := domain.CancelledBy(cancelledBy.String)
		a.CancelledBy = &by
	}
	if cancelledAt.Valid {
		at := cancelledAt.Time
		a.CancelledAt = &at
	}
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

// scanAppointments сканирует результаты запроса в слайс записей
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

func isSlotTaken(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pgUniqueViolation && (pqErr.Constraint == uniqueSlotConstraint || pqErr.Constraint == "")
}
