package calculator

import (
	"github.com/BearBump/LogiCalc/internal/geo"
	"github.com/BearBump/LogiCalc/internal/models"
)

// Order возвращает порядок объезда; points[0] — старт и всегда остаётся первым.
// Без optimize или при <3 точках порядок ввода не меняется.
//
// Оптимизация — жадный "ближайший сосед" по haversine, O(n²). Это не точный TSP:
// цена считается именно по жадному маршруту, менять алгоритм нельзя без пересмотра тарифа.
func Order(points []models.GeoPoint, optimize bool) []models.GeoPoint {
	out := make([]models.GeoPoint, 0, len(points))
	if !optimize || len(points) < 3 {
		return append(out, points...)
	}

	remaining := append([]models.GeoPoint(nil), points[1:]...)
	current := points[0]
	out = append(out, current)

	for len(remaining) > 0 {
		best := 0
		bestDist := distanceKm(current, remaining[0])
		for i := 1; i < len(remaining); i++ {
			// строго меньше: при равенстве побеждает точка, найденная раньше
			if d := distanceKm(current, remaining[i]); d < bestDist {
				best, bestDist = i, d
			}
		}
		current = remaining[best]
		out = append(out, current)
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return out
}

func distanceKm(a, b models.GeoPoint) float64 {
	return geo.HaversineKm(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// TravelPath — точки в порядке проезда; при returnToStart старт дублируется в конце.
func TravelPath(ordered []models.GeoPoint, returnToStart bool) []models.GeoPoint {
	out := append([]models.GeoPoint(nil), ordered...)
	if returnToStart && len(ordered) > 0 {
		out = append(out, ordered[0])
	}
	return out
}
