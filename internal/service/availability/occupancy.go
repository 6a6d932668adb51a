package availability

import (
	"github.com/david021dp/salon-booking/internal/domain"
)

// Classify размечает каждый слот сетки дня для запрошенной длительности.
//
// Слот s занят (booked), если он попадает внутрь существующей записи,
// длительность которой округляется вверх до целых слотов.
// Иначе слот insufficient, если окно [s, s+duration) упирается в начало
// следующей записи или выходит за время закрытия.
// Остальные слоты available. Отмененные записи не учитываются.
//
// Блокировки времени хранятся как обычные записи и учитываются так же.
// Результат носит справочный характер: окончательное решение принимает CheckConflicts.
func Classify(appointments []*domain.Appointment, durationMinutes int) []domain.SlotAvailability {
	occupied := scheduledWindows(appointments)
	result := make([]domain.SlotAvailability, 0, (domain.ClosingMinutes-domain.OpeningMinutes)/domain.SlotStepMinutes)

	for slot := range domain.GridSlots() {
		result = append(result, domain.SlotAvailability{
			StartTime: slot,
			Status:    classifySlot(slot.Minutes(), durationMinutes, occupied),
		})
	}

	return result
}

// CountAvailable количество слотов со статусом available
func CountAvailable(slots []domain.SlotAvailability) int {
	n := 0
	for _, s := range slots {
		if s.IsAvailable() {
			n++
		}
	}
	return n
}

type window struct {
	start      int
	roundedEnd int // конец по сетке: start + SlotsNeeded(duration)*15
}

func scheduledWindows(appointments []*domain.Appointment) []window {
	windows := make([]window, 0, len(appointments))
	for _, a := range appointments {
		if a == nil || !a.IsScheduled() {
			continue
		}
		start := a.StartMinutes()
		windows = append(windows, window{
			start:      start,
			roundedEnd: start + domain.SlotsNeeded(a.DurationMinutes)*domain.SlotStepMinutes,
		})
	}
	return windows
}

func classifySlot(slot, duration int, occupied []window) domain.SlotStatus {
	for _, w := range occupied {
		if w.start <= slot && slot < w.roundedEnd {
			return domain.SlotBooked
		}
	}

	if duration <= 0 {
		return domain.SlotAvailable
	}

	end := slot + duration
	if end > domain.ClosingMinutes {
		return domain.SlotInsufficient
	}

	for _, w := range occupied {
		if w.start > slot && end > w.start {
			return domain.SlotInsufficient
		}
	}

	return domain.SlotAvailable
}
