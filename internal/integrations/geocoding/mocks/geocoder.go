package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BearBump/LogiCalc/internal/integrations/geocoding"
)

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Search(ctx context.Context, address string) ([]geocoding.Candidate, error) {
	args := m.Called(ctx, address)
	var out []geocoding.Candidate
	if v := args.Get(0); v != nil {
		out = v.([]geocoding.Candidate)
	}
	return out, args.Error(1)
}
