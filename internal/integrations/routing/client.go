package routing

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNoRoute — провайдер ответил, но маршрута между точками нет.
var ErrNoRoute = errors.New("no route")

type Waypoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Summary struct {
	DistanceMeters  float64 `json:"distanceMeters"`
	DurationSeconds float64 `json:"durationSeconds"`
}

// Router считает один маршрут через все точки в заданном порядке.
type Router interface {
	Route(ctx context.Context, waypoints []Waypoint) (Summary, error)
}
