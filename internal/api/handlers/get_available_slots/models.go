package get_available_slots

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/api/handlers"
	"github.com/david021dp/salon-booking/internal/domain"
	getAvailableSlots "github.com/david021dp/salon-booking/internal/usecase/get_available_slots"
)

// SlotResponse один слот сетки
type SlotResponse struct {
	StartTime string `json:"startTime"`
	Status    string `json:"status"` // available | booked | insufficient
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string         `json:"date"`
	WorkerID        uuid.UUID      `json:"workerId"`
	DurationMinutes int            `json:"durationMinutes"`
	AvailableCount  int            `json:"availableCount"`
	Slots           []SlotResponse `json:"slots"`
}

// ToUseCaseRequest собирает запрос из параметров: date обязателен,
// далее либо duration, либо serviceIds через запятую
func ToUseCaseRequest(actor domain.Actor, workerID uuid.UUID, date, duration, serviceIDs string) (*getAvailableSlots.Request, error) {
	parsedDate, err := handlers.ParseDate(date)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		Actor:    actor,
		WorkerID: workerID,
		Date:     parsedDate,
	}

	if duration != "" {
		minutes, err := strconv.Atoi(duration)
		if err != nil {
			return nil, err
		}
		req.DurationMinutes = &minutes
	}

	if serviceIDs != "" {
		ids, err := handlers.ParseUUIDs(strings.Split(serviceIDs, ","))
		if err != nil {
			return nil, err
		}
		req.ServiceIDs = ids
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{StartTime: s.StartTime.String(), Status: string(s.Status)})
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		WorkerID:        resp.WorkerID,
		DurationMinutes: resp.DurationMinutes,
		AvailableCount:  resp.AvailableCount,
		Slots:           slots,
	}
}
