package get_available_slots

import (
	"time"

	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/pkg/types"
)

// dropPastSlots убирает слоты, которые уже начались по бизнес-времени.
// Прошедшая дата дает пустой список, будущая возвращается без изменений.
func dropPastSlots(slots []domain.SlotAvailability, date time.Time, now time.Time) []domain.SlotAvailability {
	today := domain.DateOnly(now)
	day := domain.DateOnly(date)

	switch {
	case day.Before(today):
		return []domain.SlotAvailability{}
	case day.After(today):
		return slots
	}

	current := types.NewTimeString(now)

	result := make([]domain.SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		if !slot.StartTime.IsBefore(current) {
			result = append(result, slot)
		}
	}

	return result
}
