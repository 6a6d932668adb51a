package block_time

import (
	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/api/handlers"
	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/internal/service/appointments/models"
	blockTime "github.com/david021dp/salon-booking/internal/usecase/block_time"
	"github.com/david021dp/salon-booking/pkg/types"
)

// BlockTimeRequest HTTP request model
type BlockTimeRequest struct {
	Mode            string  `json:"mode"` // specific | fullday
	Date            string  `json:"date"`
	StartTime       *string `json:"startTime,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Days            *int    `json:"days,omitempty"`
}

// BlockTimeResponse созданные блокировки; failedDate только при частичном успехе
type BlockTimeResponse struct {
	Error      string                       `json:"error,omitempty"`
	Blocks     []models.AppointmentResponse `json:"blocks"`
	FailedDate *string                      `json:"failedDate,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BlockTimeRequest) ToUseCaseRequest(actor domain.Actor, workerID uuid.UUID) (*blockTime.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	req := &blockTime.Request{
		Actor:           actor,
		WorkerID:        workerID,
		Mode:            blockTime.Mode(r.Mode),
		Date:            date,
		DurationMinutes: r.DurationMinutes,
		Days:            r.Days,
	}

	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &start
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *blockTime.Response) *BlockTimeResponse {
	out := &BlockTimeResponse{
		Blocks: models.FromDomainAppointmentList(resp.Blocks).Appointments,
	}
	if resp.FailedDate != nil {
		failed := resp.FailedDate.Format(domain.DateFormat)
		out.FailedDate = &failed
	}
	return out
}
