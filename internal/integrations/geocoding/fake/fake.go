package fake

import (
	"context"
	"hash/fnv"
	"strings"

	"github.com/BearBump/LogiCalc/internal/integrations/geocoding"
)

// Центр и полуразмер области, в которую "попадают" неизвестные адреса (Форталеза).
const (
	centerLat = -3.7319
	centerLon = -38.5267
	spanDeg   = 0.15
)

// Geocoder — локальная заглушка без сети: координаты детерминированно выводятся из
// хэша адреса. Конкретные адреса можно переопределить или пометить ненаходимыми.
type Geocoder struct {
	overrides map[string]geocoding.Candidate
	unknown   map[string]struct{}
}

func New() *Geocoder {
	return &Geocoder{
		overrides: map[string]geocoding.Candidate{},
		unknown:   map[string]struct{}{},
	}
}

func (g *Geocoder) WithAddress(address string, lat, lon float64) *Geocoder {
	g.overrides[key(address)] = geocoding.Candidate{Lat: lat, Lon: lon, DisplayName: address}
	return g
}

func (g *Geocoder) WithUnknown(address string) *Geocoder {
	g.unknown[key(address)] = struct{}{}
	return g
}

func (g *Geocoder) Search(ctx context.Context, address string) ([]geocoding.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	k := key(address)
	if k == "" {
		return nil, nil
	}
	if _, ok := g.unknown[k]; ok {
		return nil, nil
	}
	if c, ok := g.overrides[k]; ok {
		return []geocoding.Candidate{c}, nil
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(k))
	v := h.Sum64()

	// две независимые "доли" из одного хэша: [-1, 1)
	fLat := float64(v&0xffffffff)/float64(1<<31) - 1
	fLon := float64(v>>32)/float64(1<<31) - 1

	return []geocoding.Candidate{{
		Lat:         centerLat + fLat*spanDeg,
		Lon:         centerLon + fLon*spanDeg,
		DisplayName: address,
	}}, nil
}

func key(address string) string {
	return strings.Join(strings.Fields(strings.ToLower(address)), " ")
}
