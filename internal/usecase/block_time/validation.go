package block_time

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
)

// validateRequest проверяет запрос и раскладывает его на окна по дням
func validateRequest(req *Request) ([]window, error) {
	v := &domain.ValidationError{}

	if req.WorkerID == uuid.Nil {
		v.Add("workerId", "is required")
	}
	if req.Date.IsZero() {
		v.Add("date", "is required")
	}

	date := domain.DateOnly(req.Date)
	var windows []window

	switch req.Mode {
	case ModeSpecific:
		switch {
		case req.StartTime == nil:
			v.Add("startTime", "is required")
		case !domain.IsGridAligned(*req.StartTime):
			v.Add("startTime", "must be a 15-minute slot between 09:00 and 20:45")
		}

		if req.DurationMinutes == nil || !domain.IsBlockPreset(*req.DurationMinutes) {
			v.Add("durationMinutes", fmt.Sprintf("must be one of %v", domain.BlockPresetMinutes))
		}

		if req.StartTime != nil && req.DurationMinutes != nil &&
			domain.IsGridAligned(*req.StartTime) && domain.IsBlockPreset(*req.DurationMinutes) &&
			!domain.FitsBusinessDay(*req.StartTime, *req.DurationMinutes) {
			v.Add("startTime", fmt.Sprintf("blocked time must end by %s", domain.ClosingTime))
		}

		if req.StartTime != nil && req.DurationMinutes != nil {
			windows = []window{{date: date, start: *req.StartTime, duration: *req.DurationMinutes}}
		}

	case ModeFullDay:
		if req.Days == nil || *req.Days < 1 || *req.Days > domain.MaxBlockDays {
			v.Add("days", fmt.Sprintf("must be between 1 and %d", domain.MaxBlockDays))
			break
		}

		windows = make([]window, 0, *req.Days)
		for i := 0; i < *req.Days; i++ {
			windows = append(windows, window{
				date:     date.AddDate(0, 0, i),
				start:    FullDayStart,
				duration: domain.FullDayBlockMinutes,
			})
		}

	default:
		v.Add("mode", fmt.Sprintf("must be %q or %q", ModeSpecific, ModeFullDay))
	}

	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return windows, nil
}
