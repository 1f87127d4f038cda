package routing

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/mmcloughlin/geohash"

	"github.com/BearBump/LogiCalc/internal/cache"
)

// 9 символов geohash — ячейка ~5x5 м: повторный расчёт того же маршрута попадает в кэш,
// а соседние дома — нет.
const geohashChars = 9

// Cached кэширует успешные маршруты по geohash каждой точки (порядок точек важен).
type Cached struct {
	next      Router
	cache     cache.BytesCache
	ttl       time.Duration
	namespace string
}

func NewCached(next Router, c cache.BytesCache, ttl time.Duration, namespace string) *Cached {
	return &Cached{next: next, cache: c, ttl: ttl, namespace: namespace}
}

func (r *Cached) Route(ctx context.Context, waypoints []Waypoint) (Summary, error) {
	if r.cache == nil || r.ttl <= 0 {
		return r.next.Route(ctx, waypoints)
	}

	key := r.key(waypoints)
	if b, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		var s Summary
		if json.Unmarshal(b, &s) == nil {
			return s, nil
		}
	} else if err != nil {
		slog.Warn("route cache get", "error", err.Error())
	}

	s, err := r.next.Route(ctx, waypoints)
	if err != nil {
		return Summary{}, err
	}
	if b, err := json.Marshal(s); err == nil {
		if err := r.cache.Set(ctx, key, b, r.ttl); err != nil {
			slog.Warn("route cache set", "error", err.Error())
		}
	}
	return s, nil
}

func (r *Cached) key(waypoints []Waypoint) string {
	parts := make([]string, 0, len(waypoints))
	for _, w := range waypoints {
		parts = append(parts, geohash.EncodeWithPrecision(w.Lat, w.Lon, geohashChars))
	}
	return "route:" + r.namespace + ":" + strings.Join(parts, ";")
}
