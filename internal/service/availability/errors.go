package availability

import "errors"

var (
	// ErrSlotBooked на это же время у мастера уже есть запись
	ErrSlotBooked = errors.New("availability: time slot already booked")

	// ErrSlotOverlaps окно записи пересекается с существующей записью
	ErrSlotOverlaps = errors.New("availability: time slot overlaps an existing appointment")
)

// IsConflict true для обеих причин отказа
func IsConflict(err error) bool {
	return errors.Is(err, ErrSlotBooked) || errors.Is(err, ErrSlotOverlaps)
}
