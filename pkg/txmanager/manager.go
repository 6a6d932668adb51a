package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/lib/pq"

	"github.com/david021dp/salon-booking/pkg/dbmetrics"
)

// pgSerializationFailure SQLSTATE 40001
const pgSerializationFailure = "40001"

const (
	defaultSerializableAttempts = 3
	defaultRetryBackoff         = 20 * time.Millisecond
)

var (
	// ErrBeginTx возвращается, когда не удалось открыть транзакцию
	ErrBeginTx = errors.New("txmanager: failed to begin transaction")

	// ErrCommit возвращается при ошибке фиксации
	ErrCommit = errors.New("txmanager: failed to commit transaction")

	// ErrSerialization конкурентная транзакция изменила те же данные (SQLSTATE 40001)
	ErrSerialization = errors.New("txmanager: serialization failure")
)

// TransactionManager выполняет функции в транзакции, переданной через контекст
type TransactionManager struct {
	db          dbmetrics.TxBeginner
	maxAttempts int
	backoff     time.Duration
}

// Option настройка менеджера транзакций
type Option func(*TransactionManager)

// WithSerializableRetries число попыток SERIALIZABLE транзакции и базовая пауза между ними
func WithSerializableRetries(attempts int, backoff time.Duration) Option {
	return func(m *TransactionManager) {
		if attempts > 0 {
			m.maxAttempts = attempts
		}
		if backoff >= 0 {
			m.backoff = backoff
		}
	}
}

// NewTransactionManager создает менеджер транзакций
func NewTransactionManager(db dbmetrics.TxBeginner, opts ...Option) *TransactionManager {
	m := &TransactionManager{
		db:          db,
		maxAttempts: defaultSerializableAttempts,
		backoff:     defaultRetryBackoff,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, nil, fn)
}

// DoSerializable выполняет fn в SERIALIZABLE транзакции.
// При SQLSTATE 40001 транзакция повторяется целиком, fn должна быть идемпотентной.
// ErrSerialization возвращается, только когда попытки исчерпаны.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	// Повторять можно только собственную транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return m.run(ctx, opts, fn)
	}

	var err error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		err = m.run(ctx, opts, fn)
		if !errors.Is(err, ErrSerialization) || attempt == m.maxAttempts {
			return err
		}
		if waitErr := m.wait(ctx, attempt); waitErr != nil {
			return err
		}
	}

	return err
}

// wait линейная пауза со случайным джиттером, чтобы конкурирующие транзакции разошлись
func (m *TransactionManager) wait(ctx context.Context, attempt int) error {
	if m.backoff <= 0 {
		return ctx.Err()
	}

	delay := m.backoff*time.Duration(attempt) + rand.N(m.backoff)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBeginTx, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", ErrSerialization, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w: %v", ErrSerialization, err)
		}
		return fmt.Errorf("%w: %v", ErrCommit, err)
	}

	return nil
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgSerializationFailure
	}
	return false
}
