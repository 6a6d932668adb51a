package audit

import (
	"context"
	"fmt"

	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/internal/service/audit/models"
)

const listLimit = 50

// Service чтение журнала действий админов.
// Записи создают сами use case в своих транзакциях.
type Service struct {
	repo   ActivityRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса журнала
func NewService(repo ActivityRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListOwn последние действия текущего админа
func (s *Service) ListOwn(ctx context.Context, actor domain.Actor) (*models.ActivityListResponse, error) {
	if !actor.Role.IsAdmin() {
		s.logger.Warn("ListOwn: access denied for user=%s (%s)", actor.ID, actor.Role)
		return nil, ErrAccessDenied
	}

	entries, err := s.repo.ListByAdmin(ctx, actor.ID, listLimit)
	if err != nil {
		s.logger.Error("ListOwn: repository error for admin=%s: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: ListOwn - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainActivityList(entries), nil
}
