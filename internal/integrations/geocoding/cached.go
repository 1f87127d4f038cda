package geocoding

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/BearBump/LogiCalc/internal/cache"
)

// Cached кэширует непустые ответы геокодера. Ошибки кэша не ломают поиск.
type Cached struct {
	next  Geocoder
	cache cache.BytesCache
	ttl   time.Duration
}

func NewCached(next Geocoder, c cache.BytesCache, ttl time.Duration) *Cached {
	return &Cached{next: next, cache: c, ttl: ttl}
}

func (g *Cached) Search(ctx context.Context, address string) ([]Candidate, error) {
	if g.cache == nil || g.ttl <= 0 {
		return g.next.Search(ctx, address)
	}

	key := cacheKey(address)
	if b, ok, err := g.cache.Get(ctx, key); err == nil && ok {
		var out []Candidate
		if json.Unmarshal(b, &out) == nil && len(out) > 0 {
			return out, nil
		}
	} else if err != nil {
		slog.Warn("geocode cache get", "error", err.Error())
	}

	out, err := g.next.Search(ctx, address)
	if err != nil {
		return nil, err
	}
	// "не найдено" не кэшируем: адрес могли исправить в справочнике провайдера.
	if len(out) == 0 {
		return out, nil
	}
	if b, err := json.Marshal(out); err == nil {
		if err := g.cache.Set(ctx, key, b, g.ttl); err != nil {
			slog.Warn("geocode cache set", "error", err.Error())
		}
	}
	return out, nil
}

func cacheKey(address string) string {
	return "geocode:" + normalize(address)
}

func normalize(address string) string {
	return strings.Join(strings.Fields(strings.ToLower(address)), " ")
}
