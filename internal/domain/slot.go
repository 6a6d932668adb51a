package domain

import "github.com/david021dp/salon-booking/pkg/types"

// SlotStatus classification of a grid slot for a requested duration
type SlotStatus string

const (
	SlotAvailable    SlotStatus = "available"
	SlotBooked       SlotStatus = "booked"       // slot lies inside an existing appointment
	SlotInsufficient SlotStatus = "insufficient" // free, but the requested duration runs into the next appointment or closing time
)

// SlotAvailability represents one grid slot of a worker's day
type SlotAvailability struct {
	StartTime types.TimeString
	Status    SlotStatus
}

// IsAvailable returns true if the slot can be booked for the requested duration
func (s SlotAvailability) IsAvailable() bool {
	return s.Status == SlotAvailable
}
