package calculator

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BearBump/LogiCalc/internal/integrations/geocoding"
	geomocks "github.com/BearBump/LogiCalc/internal/integrations/geocoding/mocks"
	"github.com/BearBump/LogiCalc/internal/models"
)

func TestResolve_TopCandidate(t *testing.T) {
	g := &geomocks.MockGeocoder{}
	g.On("Search", mock.Anything, "Rua A, 1").Return([]geocoding.Candidate{
		{Lat: -3.7, Lon: -38.5},
		{Lat: -23.5, Lon: -46.6},
	}, nil).Once()

	p, err := NewResolver(g).Resolve(context.Background(), models.Stop{ID: "s1", Address: "  Rua A, 1 "})
	require.NoError(t, err)
	require.Equal(t, models.GeoPoint{ID: "s1", Address: "  Rua A, 1 ", Latitude: -3.7, Longitude: -38.5}, p)
	g.AssertExpectations(t)
}

func TestResolve_NotFound(t *testing.T) {
	g := &geomocks.MockGeocoder{}
	g.On("Search", mock.Anything, "Nowhere").Return(nil, nil).Once()

	_, err := NewResolver(g).Resolve(context.Background(), models.Stop{ID: "s2", Address: "Nowhere"})
	require.ErrorIs(t, err, ErrAddressNotFound)

	var nf *AddressNotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, "s2", nf.StopID)
	require.Equal(t, "Nowhere", nf.Address)
	require.Contains(t, err.Error(), "Nowhere")
	require.True(t, IsUserError(err))
}

func TestResolve_ServiceError(t *testing.T) {
	cause := errors.New("nominatim http 503")
	g := &geomocks.MockGeocoder{}
	g.On("Search", mock.Anything, "x").Return(nil, cause).Once()

	_, err := NewResolver(g).Resolve(context.Background(), models.Stop{ID: "s", Address: "x"})
	require.ErrorIs(t, err, ErrServiceUnavailable)
	require.ErrorIs(t, err, cause)
	require.False(t, errors.Is(err, ErrAddressNotFound))
}

func TestResolve_InvalidCoordinates(t *testing.T) {
	for _, c := range []geocoding.Candidate{{Lat: 91, Lon: 0}, {Lat: 0, Lon: -181}, {Lat: math.NaN(), Lon: 0}} {
		g := &geomocks.MockGeocoder{}
		g.On("Search", mock.Anything, "x").Return([]geocoding.Candidate{c}, nil).Once()

		_, err := NewResolver(g).Resolve(context.Background(), models.Stop{ID: "s", Address: "x"})
		require.ErrorIs(t, err, ErrServiceUnavailable)
	}
}

func TestResolve_CanceledContextIsNotServiceUnavailable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	g := &geomocks.MockGeocoder{}
	g.On("Search", mock.Anything, "x").Run(func(mock.Arguments) { cancel() }).
		Return(nil, errors.New("do request: context canceled")).Once()

	_, err := NewResolver(g).Resolve(ctx, models.Stop{ID: "s", Address: "x"})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, IsUnavailable(err))
	require.False(t, IsUserError(err))
}
