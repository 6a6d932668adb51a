// Package usecasetest содержит in-memory реализации зависимостей usecase-ов для тестов
package usecasetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
	appointmentRepo "github.com/david021dp/salon-booking/internal/infra/storage/appointment"
	"github.com/david021dp/salon-booking/pkg/types"
)

type slotKey struct {
	worker uuid.UUID
	date   string
	time   types.TimeString
}

// Store in-memory хранилище записей с частичным уникальным индексом
// (worker, date, time) для scheduled, как unique_appointment_slot в БД
type Store struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]*domain.Appointment
	index map[slotKey]uuid.UUID
	now   func() time.Time

	// FailNext ошибка, которую вернет следующий вызов любого метода
	FailNext error
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		rows:  make(map[uuid.UUID]*domain.Appointment),
		index: make(map[slotKey]uuid.UUID),
		now:   time.Now,
	}
}

// SetNow подменяет часы, которыми проставляется created_at
func (s *Store) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func key(a *domain.Appointment) slotKey {
	return slotKey{worker: a.WorkerID, date: a.Date.Format(domain.DateFormat), time: a.StartTime}
}

func (s *Store) takeFailure() error {
	err := s.FailNext
	s.FailNext = nil
	return err
}

// Seed кладет запись напрямую, минуя проверки
func (s *Store) Seed(a *domain.Appointment) *domain.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Kind == "" {
		a.Kind = domain.KindAppointment
	}
	if a.Status == "" {
		a.Status = domain.StatusScheduled
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now()
	}

	stored := *a
	s.rows[a.ID] = &stored
	if stored.IsScheduled() {
		s.index[key(&stored)] = stored.ID
	}

	out := stored
	return &out
}

// Get возвращает копию записи или nil
func (s *Store) Get(id uuid.UUID) *domain.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.rows[id]
	if !ok {
		return nil
	}
	out := *a
	return &out
}

// Len количество строк
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// Create вставляет запись; занятый слот дает appointment.ErrSlotTaken
func (s *Store) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return nil, err
	}

	if _, taken := s.index[key(a)]; taken && a.Status == domain.StatusScheduled {
		return nil, appointmentRepo.ErrSlotTaken
	}

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = s.now()
	a.UpdatedAt = a.CreatedAt

	stored := *a
	s.rows[a.ID] = &stored
	if stored.IsScheduled() {
		s.index[key(&stored)] = stored.ID
	}

	out := stored
	return &out, nil
}

// GetByID возвращает запись или appointment.ErrAppointmentNotFound
func (s *Store) GetByID(_ context.Context, id uuid.UUID) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return nil, err
	}

	a, ok := s.rows[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	out := *a
	return &out, nil
}

// ListByWorker снимок записей мастера по фильтру, по времени начала
func (s *Store) ListByWorker(_ context.Context, filter domain.WorkerAppointmentsFilter) ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return nil, err
	}

	out := make([]*domain.Appointment, 0)
	for _, a := range s.rows {
		if a.WorkerID != filter.WorkerID {
			continue
		}
		if filter.Date != nil && !a.Date.Equal(*filter.Date) {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartMinutes() < out[j].StartMinutes()
	})

	return out, nil
}

// CountCreatedByUserBetween считает scheduled записи клиента с created_at в [from, to)
func (s *Store) CountCreatedByUserBetween(_ context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return 0, err
	}

	count := 0
	for _, a := range s.rows {
		if a.UserID == userID && a.Kind == domain.KindAppointment && a.IsScheduled() &&
			!a.CreatedAt.Before(from) && a.CreatedAt.Before(to) {
			count++
		}
	}

	return count, nil
}

// Update применяет изменения; занятый слот дает appointment.ErrSlotTaken
func (s *Store) Update(_ context.Context, id uuid.UUID, changes domain.AppointmentChanges) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return nil, err
	}

	a, ok := s.rows[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}

	next := *a
	if changes.ServiceName != nil {
		next.ServiceName = *changes.ServiceName
	}
	if changes.DurationMinutes != nil {
		next.DurationMinutes = *changes.DurationMinutes
	}
	if changes.Date != nil {
		next.Date = *changes.Date
	}
	if changes.StartTime != nil {
		next.StartTime = *changes.StartTime
	}
	if changes.Notes != nil {
		next.Notes = changes.Notes
		if *changes.Notes == "" {
			next.Notes = nil
		}
	}
	if changes.MarkRescheduled {
		next.IsRescheduled = true
	}
	next.UpdatedAt = s.now()

	if next.IsScheduled() {
		if owner, taken := s.index[key(&next)]; taken && owner != id {
			return nil, appointmentRepo.ErrSlotTaken
		}
		delete(s.index, key(a))
		s.index[key(&next)] = id
	}

	s.rows[id] = &next
	out := next
	return &out, nil
}

// Cancel переводит scheduled запись в cancelled
func (s *Store) Cancel(_ context.Context, id uuid.UUID, by domain.CancelledBy, reason *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return err
	}

	a, ok := s.rows[id]
	if !ok || !a.IsScheduled() {
		return appointmentRepo.ErrAppointmentNotFound
	}

	now := s.now()
	a.Status = domain.StatusCancelled
	a.CancelledBy = &by
	a.CancelledAt = &now
	a.CancellationReason = reason
	delete(s.index, key(a))

	return nil
}

// Delete удаляет запись
func (s *Store) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return err
	}

	a, ok := s.rows[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}

	if a.IsScheduled() {
		delete(s.index, key(a))
	}
	delete(s.rows, id)

	return nil
}
