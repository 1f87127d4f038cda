package calculator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BearBump/LogiCalc/internal/integrations/geocoding"
	geofake "github.com/BearBump/LogiCalc/internal/integrations/geocoding/fake"
	geomocks "github.com/BearBump/LogiCalc/internal/integrations/geocoding/mocks"
	"github.com/BearBump/LogiCalc/internal/integrations/routing"
	routingmocks "github.com/BearBump/LogiCalc/internal/integrations/routing/mocks"
	"github.com/BearBump/LogiCalc/internal/models"
)

type recordingSleeper struct {
	mu    sync.Mutex
	calls []time.Duration
}

func (s *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.calls = append(s.calls, d)
	s.mu.Unlock()
	return ctx.Err()
}

func stops(addrs ...string) []models.Stop {
	out := make([]models.Stop, 0, len(addrs))
	for i, a := range addrs {
		out = append(out, models.Stop{ID: string(rune('a' + i)), Address: a})
	}
	return out
}

func newTestCalculator(g geocoding.Geocoder, r routing.Router) (*Calculator, *recordingSleeper) {
	sl := &recordingSleeper{}
	return New(g, r).WithGeocodeDelay(DefaultGeocodeDelay, sl.Sleep), sl
}

func TestCalculate_Sequential(t *testing.T) {
	g := geofake.New().
		WithAddress("Pickup", -3.70, -38.50).
		WithAddress("Dropoff", -3.75, -38.55).
		WithAddress("Extra", -3.72, -38.52)

	r := &routingmocks.MockRouter{}
	r.On("Route", mock.Anything, []routing.Waypoint{
		{Lat: -3.70, Lon: -38.50}, {Lat: -3.75, Lon: -38.55}, {Lat: -3.72, Lon: -38.52},
	}).Return(routing.Summary{DistanceMeters: 20000, DurationSeconds: 1830}, nil).Once()

	c, sl := newTestCalculator(g, r)
	res, err := c.Calculate(context.Background(), stops("Pickup", "Dropoff", "Extra"), false, false)
	require.NoError(t, err)

	require.Equal(t, 20.0, res.TotalDistanceKm)
	require.Equal(t, 31, res.TotalDurationMin)
	// (12 + 10) * 1.4 + 1 доп. точка * 2.00
	require.Equal(t, 32.80, res.EstimatedPrice)
	require.Equal(t, "https://www.google.com/maps/dir/-3.7,-38.5/-3.75,-38.55/-3.72,-38.52", res.MapURL)
	require.Nil(t, res.OptimizedOrder)

	// пауза только между вызовами: 3 адреса -> 2 паузы
	require.Equal(t, []time.Duration{DefaultGeocodeDelay, DefaultGeocodeDelay}, sl.calls)
	r.AssertExpectations(t)
}

func TestCalculate_OptimizeAndReturnToStart(t *testing.T) {
	g := geofake.New().
		WithAddress("A", 0, 0).
		WithAddress("B", 0, 0.01).
		WithAddress("C", 0, 0.03).
		WithAddress("D", 0, 0.02)

	r := &routingmocks.MockRouter{}
	r.On("Route", mock.Anything, []routing.Waypoint{
		{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0.01}, {Lat: 0, Lon: 0.02}, {Lat: 0, Lon: 0.03}, {Lat: 0, Lon: 0},
	}).Return(routing.Summary{DistanceMeters: 7000, DurationSeconds: 600}, nil).Once()

	c, _ := newTestCalculator(g, r)
	res, err := c.Calculate(context.Background(), stops("A", "B", "C", "D"), true, true)
	require.NoError(t, err)

	require.Equal(t, []string{"a", "b", "d", "c"}, res.OptimizedOrder)
	require.Equal(t, "https://www.google.com/maps/dir/0,0/0,0.01/0,0.02/0,0.03/0,0", res.MapURL)
	// 7 км * 1.2 * 1.4 = 11.76 + 2 доп. точки * 2.00
	require.Equal(t, 15.76, res.EstimatedPrice)
	require.Equal(t, 10, res.TotalDurationMin)
}

func TestCalculate_OptimizeWithTwoStopsStillReportsOrder(t *testing.T) {
	g := geofake.New().WithAddress("A", 0, 0).WithAddress("B", 0, 0.01)
	r := &routingmocks.MockRouter{}
	r.On("Route", mock.Anything, mock.Anything).Return(routing.Summary{DistanceMeters: 1000, DurationSeconds: 60}, nil).Once()

	c, _ := newTestCalculator(g, r)
	res, err := c.Calculate(context.Background(), stops("A", "B"), false, true)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, res.OptimizedOrder)
	require.Equal(t, 7.00, res.EstimatedPrice)
}

func TestCalculate_NoOptimizedOrderWithoutOptimize(t *testing.T) {
	g := geofake.New()
	r := &routingmocks.MockRouter{}
	r.On("Route", mock.Anything, mock.Anything).Return(routing.Summary{DistanceMeters: 5000, DurationSeconds: 300}, nil)

	c, _ := newTestCalculator(g, r)
	for n := 2; n <= 6; n++ {
		addrs := make([]string, 0, n)
		for i := 0; i < n; i++ {
			addrs = append(addrs, "Rua "+string(rune('A'+i)))
		}
		res, err := c.Calculate(context.Background(), stops(addrs...), false, false)
		require.NoError(t, err)
		require.Nil(t, res.OptimizedOrder)
	}
}

func TestCalculate_InsufficientStops(t *testing.T) {
	g := &geomocks.MockGeocoder{}
	r := &routingmocks.MockRouter{}
	c, _ := newTestCalculator(g, r)

	for _, in := range [][]models.Stop{
		nil,
		stops("Rua A"),
		stops("Rua A", "   ", ""),
	} {
		_, err := c.Calculate(context.Background(), in, false, false)
		require.ErrorIs(t, err, ErrInsufficientStops)
	}
	g.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestCalculate_BlankStopsAreSkipped(t *testing.T) {
	g := geofake.New().WithAddress("A", 0, 0).WithAddress("B", 0, 0.01)
	r := &routingmocks.MockRouter{}
	r.On("Route", mock.Anything, []routing.Waypoint{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0.01}}).
		Return(routing.Summary{DistanceMeters: 1000, DurationSeconds: 60}, nil).Once()

	c, sl := newTestCalculator(g, r)
	res, err := c.Calculate(context.Background(), stops("A", " ", "B", ""), false, false)
	require.NoError(t, err)
	// пустые точки не считаются доп. остановками
	require.Equal(t, 7.00, res.EstimatedPrice)
	require.Len(t, sl.calls, 1)
}

func TestCalculate_AddressNotFoundFailsFast(t *testing.T) {
	g := &geomocks.MockGeocoder{}
	g.On("Search", mock.Anything, "Rua A").Return([]geocoding.Candidate{{Lat: 0, Lon: 0}}, nil).Once()
	g.On("Search", mock.Anything, "Rua Perdida").Return([]geocoding.Candidate{}, nil).Once()

	r := &routingmocks.MockRouter{}
	c, _ := newTestCalculator(g, r)

	res, err := c.Calculate(context.Background(), stops("Rua A", "Rua Perdida", "Rua C"), false, false)
	require.Nil(t, res)
	require.ErrorIs(t, err, ErrAddressNotFound)

	var nf *AddressNotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, "Rua Perdida", nf.Address)
	require.Equal(t, "b", nf.StopID)

	g.AssertNotCalled(t, "Search", mock.Anything, "Rua C")
	r.AssertNotCalled(t, "Route", mock.Anything, mock.Anything)
	g.AssertExpectations(t)
}

func TestCalculate_GeocoderErrorIsServiceUnavailable(t *testing.T) {
	g := &geomocks.MockGeocoder{}
	g.On("Search", mock.Anything, mock.Anything).Return(nil, context.DeadlineExceeded).Once()

	c, _ := newTestCalculator(g, &routingmocks.MockRouter{})
	_, err := c.Calculate(context.Background(), stops("A", "B"), false, false)
	require.ErrorIs(t, err, ErrServiceUnavailable)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCalculate_RouteUnavailable(t *testing.T) {
	r := &routingmocks.MockRouter{}
	r.On("Route", mock.Anything, mock.Anything).Return(routing.Summary{}, routing.ErrNoRoute).Once()

	c, _ := newTestCalculator(geofake.New(), r)
	res, err := c.Calculate(context.Background(), stops("A", "B"), false, false)
	require.Nil(t, res)
	require.ErrorIs(t, err, ErrRouteUnavailable)
}

func TestCalculate_CanceledDuringDelay(t *testing.T) {
	g := &geomocks.MockGeocoder{}
	g.On("Search", mock.Anything, "A").Return([]geocoding.Candidate{{Lat: 0, Lon: 0}}, nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	c := New(g, &routingmocks.MockRouter{}).WithGeocodeDelay(time.Hour, func(ctx context.Context, d time.Duration) error {
		cancel()
		return SleepContext(ctx, d)
	})

	_, err := c.Calculate(ctx, stops("A", "B"), false, false)
	require.ErrorIs(t, err, context.Canceled)
	g.AssertNotCalled(t, "Search", mock.Anything, "B")
}

func TestCalculate_WithPricingAndMapBase(t *testing.T) {
	r := &routingmocks.MockRouter{}
	r.On("Route", mock.Anything, mock.Anything).Return(routing.Summary{DistanceMeters: 10000, DurationSeconds: 600}, nil).Once()

	p := DefaultPricing()
	p.MinimumPrice = 20
	c := New(geofake.New().WithAddress("A", 1, 2).WithAddress("B", 3, 4), r).
		WithGeocodeDelay(0, nil).
		WithPricing(p).
		WithMapBaseURL("https://maps.example/dir/")

	res, err := c.Calculate(context.Background(), stops("A", "B"), false, false)
	require.NoError(t, err)
	require.Equal(t, 20.0, res.EstimatedPrice)
	require.Equal(t, "https://maps.example/dir/1,2/3,4", res.MapURL)
}

func TestSleepContext(t *testing.T) {
	require.NoError(t, SleepContext(context.Background(), time.Millisecond))
	require.NoError(t, SleepContext(context.Background(), 0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, SleepContext(ctx, time.Hour), context.Canceled)
}
