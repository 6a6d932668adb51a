package get_worker_appointments

import (
	"context"

	"github.com/david021dp/salon-booking/internal/service/appointments/models"
)

type AppointmentService interface {
	GetWorkerSchedule(ctx context.Context, req *models.GetWorkerScheduleRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
