package calculator

import (
	"context"
	"math"
	"strings"

	"github.com/pkg/errors"

	"github.com/BearBump/LogiCalc/internal/integrations/geocoding"
	"github.com/BearBump/LogiCalc/internal/models"
)

type Resolver struct {
	geocoder geocoding.Geocoder
}

func NewResolver(g geocoding.Geocoder) *Resolver {
	return &Resolver{geocoder: g}
}

// Resolve берёт первого (лучшего) кандидата. Ретраев нет: ошибка прерывает весь расчёт.
func (r *Resolver) Resolve(ctx context.Context, stop models.Stop) (models.GeoPoint, error) {
	cands, err := r.geocoder.Search(ctx, strings.TrimSpace(stop.Address))
	if err != nil {
		// отмена вызывающим — не сбой провайдера
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.GeoPoint{}, ctxErr
		}
		return models.GeoPoint{}, &ProviderError{Kind: ErrServiceUnavailable, Op: "geocode " + stop.ID, Err: err}
	}
	if len(cands) == 0 {
		return models.GeoPoint{}, &AddressNotFoundError{StopID: stop.ID, Address: stop.Address}
	}

	top := cands[0]
	if !validCoord(top.Lat, 90) || !validCoord(top.Lon, 180) {
		return models.GeoPoint{}, &ProviderError{
			Kind: ErrServiceUnavailable,
			Op:   "geocode " + stop.ID,
			Err:  errors.Errorf("invalid coordinates %v,%v", top.Lat, top.Lon),
		}
	}

	return models.GeoPoint{
		ID:        stop.ID,
		Address:   stop.Address,
		Latitude:  top.Lat,
		Longitude: top.Lon,
	}, nil
}

func validCoord(v, limit float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= -limit && v <= limit
}
