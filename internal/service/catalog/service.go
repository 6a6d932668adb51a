package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/internal/service/catalog/models"
)

// Selection выбранные услуги, сведенные в одну запись
type Selection struct {
	Services        []*domain.Service
	Name            string // названия через запятую, в порядке каталога
	DurationMinutes int    // суммарная длительность
}

// Service сервис каталога услуг
type Service struct {
	repo   ServiceRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo ServiceRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List возвращает все услуги салона
func (s *Service) List(ctx context.Context) (*models.ServiceListResponse, error) {
	services, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// Resolve находит выбранные услуги и сводит их в одно название и одну длительность.
// Повтор одного ID считается ошибкой так же, как неизвестный ID.
func (s *Service) Resolve(ctx context.Context, ids []uuid.UUID) (*Selection, error) {
	if len(ids) == 0 {
		return nil, ErrNoServices
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			s.logger.Warn("Resolve: duplicate service id=%s", id)
			return nil, ErrServiceNotFound
		}
		seen[id] = struct{}{}
	}

	services, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Resolve: repository error: %v", err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	if len(services) != len(ids) {
		s.logger.Warn("Resolve: requested %d services, found %d", len(ids), len(services))
		return nil, ErrServiceNotFound
	}

	name, duration := domain.CombineServices(services)

	return &Selection{
		Services:        services,
		Name:            name,
		DurationMinutes: duration,
	}, nil
}
