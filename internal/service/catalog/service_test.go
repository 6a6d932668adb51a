package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david021dp/salon-booking/internal/domain"
)

type fakeRepo struct {
	services []*domain.Service
	err      error
}

func (r *fakeRepo) List(context.Context) ([]*domain.Service, error) {
	return r.services, r.err
}

func (r *fakeRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]*domain.Service, error) {
	if r.err != nil {
		return nil, r.err
	}
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var out []*domain.Service
	for _, s := range r.services {
		if wanted[s.ID] {
			out = append(out, s)
		}
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func catalog() []*domain.Service {
	return []*domain.Service{
		{ID: uuid.New(), Name: "Brow shaping", DurationMinutes: 15},
		{ID: uuid.New(), Name: "Haircut", DurationMinutes: 45},
		{ID: uuid.New(), Name: "Coloring", DurationMinutes: 90},
	}
}

func TestService_Resolve(t *testing.T) {
	services := catalog()
	svc := NewService(&fakeRepo{services: services}, nopLogger{})

	sel, err := svc.Resolve(context.Background(), []uuid.UUID{services[2].ID, services[0].ID})
	require.NoError(t, err)
	assert.Equal(t, "Brow shaping, Coloring", sel.Name)
	assert.Equal(t, 105, sel.DurationMinutes)
	assert.Len(t, sel.Services, 2)
}

func TestService_Resolve_Errors(t *testing.T) {
	services := catalog()

	tests := []struct {
		name    string
		repo    *fakeRepo
		ids     []uuid.UUID
		wantErr error
	}{
		{
			name:    "empty selection",
			repo:    &fakeRepo{services: services},
			ids:     nil,
			wantErr: ErrNoServices,
		},
		{
			name:    "unknown id",
			repo:    &fakeRepo{services: services},
			ids:     []uuid.UUID{services[0].ID, uuid.New()},
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "duplicate id",
			repo:    &fakeRepo{services: services},
			ids:     []uuid.UUID{services[1].ID, services[1].ID},
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "repository failure",
			repo:    &fakeRepo{err: errors.New("db down")},
			ids:     []uuid.UUID{services[0].ID},
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewService(tt.repo, nopLogger{}).Resolve(context.Background(), tt.ids)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_List(t *testing.T) {
	svc := NewService(&fakeRepo{services: catalog()}, nopLogger{})

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Services, 3)
	assert.Equal(t, 45, resp.Services[1].DurationMinutes)
}
