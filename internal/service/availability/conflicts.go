package availability

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/pkg/types"
)

// Proposal окно, которое собираются записать
type Proposal struct {
	StartTime       types.TimeString
	DurationMinutes int
	// ExcludeID запись, которую редактируют: сама с собой она не конфликтует
	ExcludeID *uuid.UUID
}

// CheckConflicts проверяет предложенное окно по актуальному списку записей мастера на день.
// Сначала ищется совпадение времени начала, затем пересечение полуоткрытых интервалов
// [start, start+duration) по фактическим длительностям. Касание границ конфликтом не считается.
func CheckConflicts(p Proposal, existing []*domain.Appointment) error {
	start := p.StartTime.Minutes()
	end := start + p.DurationMinutes

	candidates := make([]*domain.Appointment, 0, len(existing))
	for _, a := range existing {
		if a == nil || !a.IsScheduled() {
			continue
		}
		if p.ExcludeID != nil && a.ID == *p.ExcludeID {
			continue
		}
		candidates = append(candidates, a)
	}

	for _, a := range candidates {
		if a.StartMinutes() == start {
			return fmt.Errorf("%w: %s is taken by appointment %s", ErrSlotBooked, p.StartTime, a.ID)
		}
	}

	for _, a := range candidates {
		if start < a.EndMinutes() && end > a.StartMinutes() {
			return fmt.Errorf("%w: %s-%d min intersects appointment %s at %s",
				ErrSlotOverlaps, p.StartTime, p.DurationMinutes, a.ID, a.StartTime)
		}
	}

	return nil
}
