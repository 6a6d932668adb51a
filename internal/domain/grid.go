package domain

import (
	"iter"
	"time"

	"github.com/david021dp/salon-booking/pkg/types"
)

// Business day grid: 09:00 inclusive to 21:00 exclusive in 15 minute steps
const (
	SlotStepMinutes = 15
	OpeningMinutes  = 9 * 60
	ClosingMinutes  = 21 * 60
)

const (
	OpeningTime types.TimeString = "09:00"
	ClosingTime types.TimeString = "21:00"
)

// GridSlots yields slot starts 09:00, 09:15, ..., 20:45.
// The sequence is finite and can be ranged over any number of times.
func GridSlots() iter.Seq[types.TimeString] {
	return func(yield func(types.TimeString) bool) {
		for m := OpeningMinutes; m < ClosingMinutes; m += SlotStepMinutes {
			ts, err := types.FromMinutes(m)
			if err != nil {
				return
			}
			if !yield(ts) {
				return
			}
		}
	}
}

// SlotsNeeded number of grid slots a duration occupies (rounded up)
func SlotsNeeded(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 0
	}
	return (durationMinutes + SlotStepMinutes - 1) / SlotStepMinutes
}

// IsGridAligned reports whether t is a slot start inside business hours
func IsGridAligned(t types.TimeString) bool {
	if t.Validate() != nil {
		return false
	}
	m := t.Minutes()
	return m >= OpeningMinutes && m < ClosingMinutes && (m-OpeningMinutes)%SlotStepMinutes == 0
}

// FitsBusinessDay reports whether [start, start+duration) ends no later than closing time
func FitsBusinessDay(start types.TimeString, durationMinutes int) bool {
	return IsGridAligned(start) && start.Minutes()+durationMinutes <= ClosingMinutes
}

// DayBounds returns [start of day, start of next day) for the calendar date of t in loc
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// DateOnly drops the time component, keeping the calendar date as UTC midnight
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
