package edit_appointment

import (
	"context"

	"github.com/david021dp/salon-booking/internal/domain"
	editAppointment "github.com/david021dp/salon-booking/internal/usecase/edit_appointment"
)

type EditAppointmentUseCase interface {
	Execute(ctx context.Context, req *editAppointment.Request) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
