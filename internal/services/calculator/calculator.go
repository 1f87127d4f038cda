package calculator

import (
	"context"
	"log/slog"
	"time"

	"github.com/BearBump/LogiCalc/internal/integrations/geocoding"
	"github.com/BearBump/LogiCalc/internal/integrations/routing"
	"github.com/BearBump/LogiCalc/internal/models"
)

// Пауза между запросами геокодинга: политика публичного Nominatim.
const DefaultGeocodeDelay = 700 * time.Millisecond

// Sleeper ждёт d или отмены ctx.
type Sleeper func(ctx context.Context, d time.Duration) error

func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Calculator собирает расчёт: геокодинг -> порядок -> метрики -> цена -> ссылка на карту.
// Состояния между вызовами нет, один экземпляр можно звать конкурентно.
type Calculator struct {
	resolver     *Resolver
	metrics      *MetricsProvider
	pricing      PricingPolicy
	mapBaseURL   string
	geocodeDelay time.Duration
	sleep        Sleeper
}

func New(g geocoding.Geocoder, r routing.Router) *Calculator {
	return &Calculator{
		resolver:     NewResolver(g),
		metrics:      NewMetricsProvider(r),
		pricing:      DefaultPricing(),
		mapBaseURL:   DefaultMapBaseURL,
		geocodeDelay: DefaultGeocodeDelay,
		sleep:        SleepContext,
	}
}

func (c *Calculator) WithGeocodeDelay(d time.Duration, sleep Sleeper) *Calculator {
	if d >= 0 {
		c.geocodeDelay = d
	}
	if sleep != nil {
		c.sleep = sleep
	}
	return c
}

func (c *Calculator) WithPricing(p PricingPolicy) *Calculator {
	c.pricing = p
	return c
}

func (c *Calculator) WithMapBaseURL(u string) *Calculator {
	if u != "" {
		c.mapBaseURL = u
	}
	return c
}

func (c *Calculator) Calculate(ctx context.Context, stops []models.Stop, returnToStart, optimize bool) (*models.RouteCalculationResult, error) {
	valid := ValidStops(stops)
	if len(valid) < 2 {
		return nil, ErrInsufficientStops
	}

	// Строго последовательно и с паузой между запросами, без параллельных вызовов.
	points := make([]models.GeoPoint, 0, len(valid))
	for i, s := range valid {
		if i > 0 {
			if err := c.sleep(ctx, c.geocodeDelay); err != nil {
				return nil, err
			}
		}
		p, err := c.resolver.Resolve(ctx, s)
		if err != nil {
			slog.Warn("resolve stop", "stop_id", s.ID, "error", err.Error())
			return nil, err
		}
		points = append(points, p)
	}

	ordered := Order(points, optimize)

	m, err := c.metrics.Metrics(ctx, ordered, returnToStart)
	if err != nil {
		slog.Warn("route metrics", "points", len(ordered), "error", err.Error())
		return nil, err
	}

	res := &models.RouteCalculationResult{
		TotalDistanceKm:  m.DistanceKm,
		TotalDurationMin: m.DurationMin,
		EstimatedPrice:   c.pricing.Price(m.DistanceKm, len(valid)),
		MapURL:           MapURL(c.mapBaseURL, TravelPath(ordered, returnToStart)),
	}
	if optimize {
		res.OptimizedOrder = make([]string, 0, len(ordered))
		for _, p := range ordered {
			res.OptimizedOrder = append(res.OptimizedOrder, p.ID)
		}
	}

	slog.Debug("route calculated",
		"stops", len(valid),
		"distance_km", res.TotalDistanceKm,
		"duration_min", res.TotalDurationMin,
		"price", res.EstimatedPrice,
	)
	return res, nil
}
