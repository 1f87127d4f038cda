package calculator

import (
	"strconv"
	"strings"

	"github.com/BearBump/LogiCalc/internal/models"
)

const DefaultMapBaseURL = "https://www.google.com/maps/dir/"

// MapURL склеивает base и сегменты "lat,lon" через "/".
func MapURL(base string, path []models.GeoPoint) string {
	segs := make([]string, 0, len(path))
	for _, p := range path {
		segs = append(segs, strconv.FormatFloat(p.Latitude, 'f', -1, 64)+","+strconv.FormatFloat(p.Longitude, 'f', -1, 64))
	}
	return base + strings.Join(segs, "/")
}
