package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BearBump/LogiCalc/internal/models"
)

type Service struct {
	mock.Mock
}

func (m *Service) Calculate(ctx context.Context, stops []models.Stop, returnToStart, optimize bool) (*models.RouteCalculationResult, error) {
	args := m.Called(ctx, stops, returnToStart, optimize)
	var res *models.RouteCalculationResult
	if v := args.Get(0); v != nil {
		res = v.(*models.RouteCalculationResult)
	}
	return res, args.Error(1)
}

func (m *Service) Quote(ctx context.Context, in models.QuoteInput) (*models.DeliveryRequest, error) {
	args := m.Called(ctx, in)
	var r *models.DeliveryRequest
	if v := args.Get(0); v != nil {
		r = v.(*models.DeliveryRequest)
	}
	return r, args.Error(1)
}

func (m *Service) Enqueue(ctx context.Context, in models.QuoteInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *Service) History(ctx context.Context, limit, offset int) ([]*models.DeliveryRequest, error) {
	args := m.Called(ctx, limit, offset)
	var out []*models.DeliveryRequest
	if v := args.Get(0); v != nil {
		out = v.([]*models.DeliveryRequest)
	}
	return out, args.Error(1)
}

func (m *Service) Get(ctx context.Context, id string) (*models.DeliveryRequest, error) {
	args := m.Called(ctx, id)
	var r *models.DeliveryRequest
	if v := args.Get(0); v != nil {
		r = v.(*models.DeliveryRequest)
	}
	return r, args.Error(1)
}

func (m *Service) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
