package calculator

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"github.com/BearBump/LogiCalc/internal/integrations/routing"
	"github.com/BearBump/LogiCalc/internal/models"
)

type RouteMetrics struct {
	DistanceKm  float64
	DurationMin int
}

type MetricsProvider struct {
	router routing.Router
}

func NewMetricsProvider(r routing.Router) *MetricsProvider {
	return &MetricsProvider{router: r}
}

// Metrics — один запрос к маршрутизатору, без ретраев и без запасной оценки расстояния.
func (p *MetricsProvider) Metrics(ctx context.Context, ordered []models.GeoPoint, returnToStart bool) (RouteMetrics, error) {
	path := TravelPath(ordered, returnToStart)
	if len(path) < 2 {
		return RouteMetrics{}, &ProviderError{Kind: ErrRouteUnavailable, Op: "route", Err: routing.ErrNoRoute}
	}

	wps := make([]routing.Waypoint, 0, len(path))
	for _, pt := range path {
		wps = append(wps, routing.Waypoint{Lat: pt.Latitude, Lon: pt.Longitude})
	}

	sum, err := p.router.Route(ctx, wps)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return RouteMetrics{}, ctxErr
		}
		return RouteMetrics{}, &ProviderError{Kind: ErrRouteUnavailable, Op: "route", Err: err}
	}
	if !validMeasure(sum.DistanceMeters) || !validMeasure(sum.DurationSeconds) {
		return RouteMetrics{}, &ProviderError{
			Kind: ErrRouteUnavailable,
			Op:   "route",
			Err:  errors.Errorf("malformed route summary %+v", sum),
		}
	}

	return RouteMetrics{
		DistanceKm:  round2(sum.DistanceMeters / 1000),
		DurationMin: int(math.Ceil(sum.DurationSeconds / 60)),
	}, nil
}

func validMeasure(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
