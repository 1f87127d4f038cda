package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BearBump/LogiCalc/internal/models"
)

type MockCalculator struct {
	mock.Mock
}

func (m *MockCalculator) Calculate(ctx context.Context, stops []models.Stop, returnToStart, optimize bool) (*models.RouteCalculationResult, error) {
	args := m.Called(ctx, stops, returnToStart, optimize)
	var res *models.RouteCalculationResult
	if v := args.Get(0); v != nil {
		res = v.(*models.RouteCalculationResult)
	}
	return res, args.Error(1)
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) InsertRequest(ctx context.Context, req *models.DeliveryRequest) (bool, error) {
	args := m.Called(ctx, req)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ListRequests(ctx context.Context, limit, offset int) ([]*models.DeliveryRequest, error) {
	args := m.Called(ctx, limit, offset)
	var out []*models.DeliveryRequest
	if v := args.Get(0); v != nil {
		out = v.([]*models.DeliveryRequest)
	}
	return out, args.Error(1)
}

func (m *MockRepository) GetRequest(ctx context.Context, id string) (*models.DeliveryRequest, error) {
	args := m.Called(ctx, id)
	var r *models.DeliveryRequest
	if v := args.Get(0); v != nil {
		r = v.(*models.DeliveryRequest)
	}
	return r, args.Error(1)
}

func (m *MockRepository) DeleteRequest(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic string, key, value []byte) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}
