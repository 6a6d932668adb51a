package create_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/pkg/types"
)

// validateRequest проверяет форму запроса и собирает все нарушения разом
func validateRequest(req *Request) error {
	v := &domain.ValidationError{}

	if req.WorkerID == uuid.Nil {
		v.Add("workerId", "is required")
	}

	if len(req.ServiceIDs) == 0 {
		v.Add("serviceIds", "at least one service must be selected")
	}

	if req.Date.IsZero() {
		v.Add("date", "is required")
	}

	switch {
	case req.StartTime.IsZero():
		v.Add("startTime", "is required")
	case !domain.IsGridAligned(req.StartTime):
		v.Add("startTime", "must be a 15-minute slot between 09:00 and 20:45")
	}

	domain.ValidatePersonName(v, "firstName", strings.TrimSpace(req.FirstName))
	domain.ValidatePersonName(v, "lastName", strings.TrimSpace(req.LastName))
	domain.ValidatePhone(v, "phone", req.Phone)
	domain.ValidateNotes(v, "notes", req.Notes)

	if !req.Actor.Role.IsAdmin() {
		domain.ValidateEmail(v, "email", strings.TrimSpace(req.Email))
	}

	if err := v.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return nil
}

// validateWindow проверяет суммарную длительность и то, что запись укладывается в рабочий день
func validateWindow(start types.TimeString, duration int) error {
	v := &domain.ValidationError{}
	domain.ValidateWindow(v, start, duration)

	if err := v.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return nil
}

// validateNotInPast клиент не может записаться на прошедшие дату и время (по времени салона)
func validateNotInPast(date time.Time, start types.TimeString, now time.Time) error {
	v := &domain.ValidationError{}

	today := domain.DateOnly(now)
	day := domain.DateOnly(date)

	switch {
	case day.Before(today):
		v.Add("date", "cannot be in the past")
	case day.Equal(today) && start.IsBefore(types.NewTimeString(now)):
		v.Add("startTime", "has already passed")
	}

	if err := v.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return nil
}

// normalizePhone пустой телефон хранится как NULL
func normalizePhone(phone *string) *string {
	if phone == nil {
		return nil
	}

	normalized := domain.NormalizePhone(strings.TrimSpace(*phone))
	if normalized == "" {
		return nil
	}

	return &normalized
}
