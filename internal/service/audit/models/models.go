package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
)

// ActivityResponse запись журнала админа
type ActivityResponse struct {
	ID        uuid.UUID      `json:"id"`
	Action    string         `json:"actionType"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ActivityListResponse ответ со списком записей журнала
type ActivityListResponse struct {
	Activity []ActivityResponse `json:"activity"`
}

// FromDomainActivityList конвертирует список domain моделей в DTO
func FromDomainActivityList(list []*domain.AdminActivity) *ActivityListResponse {
	resp := &ActivityListResponse{Activity: make([]ActivityResponse, 0, len(list))}

	for _, e := range list {
		resp.Activity = append(resp.Activity, ActivityResponse{
			ID:        e.ID,
			Action:    string(e.Action),
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		})
	}

	return resp
}
