package admin_activity

import (
	"context"

	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/internal/service/audit/models"
)

type AuditService interface {
	ListOwn(ctx context.Context, actor domain.Actor) (*models.ActivityListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
