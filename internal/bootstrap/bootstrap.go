package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/BearBump/LogiCalc/config"
	"github.com/BearBump/LogiCalc/internal/cache"
	"github.com/BearBump/LogiCalc/internal/integrations/geocoding"
	geofake "github.com/BearBump/LogiCalc/internal/integrations/geocoding/fake"
	"github.com/BearBump/LogiCalc/internal/integrations/geocoding/nominatim"
	"github.com/BearBump/LogiCalc/internal/integrations/routing"
	routefake "github.com/BearBump/LogiCalc/internal/integrations/routing/fake"
	"github.com/BearBump/LogiCalc/internal/integrations/routing/osrm"
	"github.com/BearBump/LogiCalc/internal/services/calculator"
	"github.com/BearBump/LogiCalc/internal/services/quotes"
	"github.com/BearBump/LogiCalc/internal/storage/pgquotes"
	"github.com/BearBump/LogiCalc/internal/storage/sqlitequotes"
)

// History — хранилище истории вместе с методами жизненного цикла.
type History interface {
	quotes.Repository
	Ping(ctx context.Context) error
	Close()
}

// NewGeocoder: провайдер -> общий лимит в минуту -> кэш. Попадания в кэш лимит не тратят.
// c и rl могут быть nil (запуск без Redis).
func NewGeocoder(cfg *config.Config, c cache.BytesCache, rl geocoding.MinuteLimiter) (geocoding.Geocoder, error) {
	lc := cfg.LogiCalc

	var g geocoding.Geocoder
	switch lc.Geocoder {
	case "fake":
		g = geofake.New()
	case "nominatim", "":
		g = nominatim.New(lc.NominatimBaseURL, lc.NominatimUserAgent, lc.NominatimCountryCodes).
			WithTimeout(seconds(lc.ProviderTimeoutSeconds))
	default:
		return nil, fmt.Errorf("unknown geocoder %q", lc.Geocoder)
	}

	if rl != nil && lc.GeocodeRateLimitPerMinute > 0 {
		g = geocoding.NewThrottled(g, rl, lc.Geocoder, int64(lc.GeocodeRateLimitPerMinute))
	}
	if c != nil && lc.GeocodeCacheTTLSeconds > 0 {
		g = geocoding.NewCached(g, c, seconds(lc.GeocodeCacheTTLSeconds))
	}
	return g, nil
}

func NewRouter(cfg *config.Config, c cache.BytesCache) (routing.Router, error) {
	lc := cfg.LogiCalc

	var r routing.Router
	namespace := lc.Router
	switch lc.Router {
	case "fake":
		r = routefake.New()
	case "osrm", "":
		r = osrm.New(lc.OSRMBaseURL, lc.OSRMProfile).WithTimeout(seconds(lc.ProviderTimeoutSeconds))
		namespace = "osrm:" + lc.OSRMProfile
	default:
		return nil, fmt.Errorf("unknown router %q", lc.Router)
	}

	if c != nil && lc.RouteCacheTTLSeconds > 0 {
		r = routing.NewCached(r, c, seconds(lc.RouteCacheTTLSeconds), namespace)
	}
	return r, nil
}

func NewCalculator(cfg *config.Config, g geocoding.Geocoder, r routing.Router) *calculator.Calculator {
	return calculator.New(g, r).
		WithGeocodeDelay(GeocodeDelay(cfg.LogiCalc), nil).
		WithMapBaseURL(cfg.LogiCalc.MapBaseURL)
}

func OpenHistory(cfg *config.Config) (History, error) {
	switch cfg.LogiCalc.HistoryDriver {
	case "postgres", "":
		st, err := pgquotes.New(cfg.Database.DSN())
		if err != nil {
			return nil, err
		}
		return st, nil
	case "sqlite":
		st, err := sqlitequotes.New(cfg.LogiCalc.SQLitePath)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, fmt.Errorf("unknown history driver %q", cfg.LogiCalc.HistoryDriver)
	}
}

// OpenHistoryWithRetry ждёт, пока поднимется база (docker compose стартует всё разом).
func OpenHistoryWithRetry(ctx context.Context, cfg *config.Config, wait time.Duration) (History, error) {
	deadline := time.Now().Add(wait)
	for {
		h, err := OpenHistory(cfg)
		if err == nil {
			return h, nil
		}
		if time.Now().After(deadline) {
			return nil, errors.Wrapf(err, "history store is not ready after %s", wait)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}
}
