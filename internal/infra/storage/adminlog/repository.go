package adminlog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/pkg/dbmetrics"
	"github.com/david021dp/salon-booking/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository журнал действий админов.
// Create берет транзакцию из контекста, поэтому запись журнала фиксируется вместе с самим действием.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в журнал
func (r *Repository) Create(ctx context.Context, entry *domain.AdminActivity) (*domain.AdminActivity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	var details []byte
	if len(entry.Details) > 0 {
		var err error
		details, err = json.Marshal(entry.Details)
		if err != nil {
			return nil, fmt.Errorf("%w: Create - marshal details: %v", ErrDetails, err)
		}
	}

	query, args, err := psqlbuilder.Insert("admin_activity_logs").
		Columns("id", "admin_id", "action_type", "details").
		Values(entry.ID, entry.AdminID, entry.Action, details).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return entry, nil
}

// ListByAdmin последние записи админа, новые сверху
func (r *Repository) ListByAdmin(ctx context.Context, adminID uuid.UUID, limit uint64) ([]*domain.AdminActivity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "admin_id", "action_type", "details", "created_at").
		From("admin_activity_logs").
		Where(squirrel.Eq{"admin_id": adminID}).
		OrderBy("created_at DESC")
	if limit > 0 {
		selectBuilder = selectBuilder.Limit(limit)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByAdmin - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByAdmin - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.AdminActivity, 0)
	for rows.Next() {
		var (
			entry   domain.AdminActivity
			details []byte
		)

		if err := rows.Scan(&entry.ID, &entry.AdminID, &entry.Action, &details, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByAdmin - scan row: %v", ErrScanRow, err)
		}

		if len(details) > 0 {
			if err := json.Unmarshal(details, &entry.Details); err != nil {
				return nil, fmt.Errorf("%w: ListByAdmin - entry id=%s: %v", ErrDetails, entry.ID, err)
			}
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByAdmin - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
