package fake

import (
	"context"

	"github.com/BearBump/LogiCalc/internal/geo"
	"github.com/BearBump/LogiCalc/internal/integrations/routing"
)

const (
	// дороги длиннее прямой примерно на треть
	defaultDetourFactor = 1.3
	defaultSpeedKmh     = 30.0
)

// Router — локальная заглушка маршрутизатора: прямые отрезки с поправкой на объезд
// и постоянная средняя скорость по городу.
type Router struct {
	detourFactor float64
	speedKmh     float64
}

func New() *Router {
	return &Router{detourFactor: defaultDetourFactor, speedKmh: defaultSpeedKmh}
}

func (r *Router) WithProfile(detourFactor, speedKmh float64) *Router {
	if detourFactor > 0 {
		r.detourFactor = detourFactor
	}
	if speedKmh > 0 {
		r.speedKmh = speedKmh
	}
	return r
}

func (r *Router) Route(ctx context.Context, waypoints []routing.Waypoint) (routing.Summary, error) {
	if err := ctx.Err(); err != nil {
		return routing.Summary{}, err
	}
	if len(waypoints) < 2 {
		return routing.Summary{}, routing.ErrNoRoute
	}

	km := 0.0
	for i := 1; i < len(waypoints); i++ {
		a, b := waypoints[i-1], waypoints[i]
		km += geo.HaversineKm(a.Lat, a.Lon, b.Lat, b.Lon)
	}
	km *= r.detourFactor

	return routing.Summary{
		DistanceMeters:  km * 1000,
		DurationSeconds: km / r.speedKmh * 3600,
	}, nil
}
