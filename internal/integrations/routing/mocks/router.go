package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BearBump/LogiCalc/internal/integrations/routing"
)

type MockRouter struct {
	mock.Mock
}

func (m *MockRouter) Route(ctx context.Context, waypoints []routing.Waypoint) (routing.Summary, error) {
	args := m.Called(ctx, waypoints)
	return args.Get(0).(routing.Summary), args.Error(1)
}
