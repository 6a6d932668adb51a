package get_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByID(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
