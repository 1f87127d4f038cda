package calculator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BearBump/LogiCalc/internal/models"
)

func pt(id string, lat, lon float64) models.GeoPoint {
	return models.GeoPoint{ID: id, Address: id, Latitude: lat, Longitude: lon}
}

func ids(points []models.GeoPoint) []string {
	out := make([]string, 0, len(points))
	for _, p := range points {
		out = append(out, p.ID)
	}
	return out
}

func TestOrder_NearestNeighbourChain(t *testing.T) {
	a := pt("A", 0, 0)
	b := pt("B", 0, 0.01)
	c := pt("C", 0, 0.03)
	d := pt("D", 0, 0.02)

	out := Order([]models.GeoPoint{a, b, c, d}, true)
	require.Equal(t, []string{"A", "B", "D", "C"}, ids(out))
}

func TestOrder_Identity(t *testing.T) {
	a := pt("A", 0, 0)
	b := pt("B", 0, 0.03)
	c := pt("C", 0, 0.01)

	require.Equal(t, []string{"A", "B", "C"}, ids(Order([]models.GeoPoint{a, b, c}, false)))
	// меньше трёх точек — порядок не меняется даже с optimize
	require.Equal(t, []string{"A", "B"}, ids(Order([]models.GeoPoint{a, b}, true)))
	require.Equal(t, []string{"A"}, ids(Order([]models.GeoPoint{a}, true)))
}

func TestOrder_TieKeepsScanOrder(t *testing.T) {
	a := pt("A", 0, 0)
	b := pt("B", 0, 0.01)
	c := pt("C", 0, -0.01)

	require.Equal(t, []string{"A", "B", "C"}, ids(Order([]models.GeoPoint{a, b, c}, true)))
	require.Equal(t, []string{"A", "C", "B"}, ids(Order([]models.GeoPoint{a, c, b}, true)))
}

func TestOrder_StartFixedAndPermutation(t *testing.T) {
	in := []models.GeoPoint{
		pt("S", -3.80, -38.60),
		pt("1", -3.70, -38.50),
		pt("2", -3.79, -38.59),
		pt("3", -3.75, -38.55),
		pt("4", -3.71, -38.51),
	}
	out := Order(in, true)
	require.Len(t, out, len(in))
	require.Equal(t, "S", out[0].ID)
	require.ElementsMatch(t, ids(in), ids(out))
	require.Equal(t, []string{"S", "2", "3", "4", "1"}, ids(out))
}

func TestOrder_DoesNotMutateInput(t *testing.T) {
	in := []models.GeoPoint{pt("A", 0, 0), pt("B", 0, 0.03), pt("C", 0, 0.01)}
	_ = Order(in, true)
	require.Equal(t, []string{"A", "B", "C"}, ids(in))
}

func TestTravelPath(t *testing.T) {
	in := []models.GeoPoint{pt("A", 0, 0), pt("B", 0, 1)}
	require.Equal(t, []string{"A", "B"}, ids(TravelPath(in, false)))
	require.Equal(t, []string{"A", "B", "A"}, ids(TravelPath(in, true)))
	require.Equal(t, []string{"A", "B"}, ids(in))
}

func TestMapURL(t *testing.T) {
	path := []models.GeoPoint{pt("A", -3.7319, -38.5267), pt("B", -3.75, -38.5), pt("A", -3.7319, -38.5267)}
	require.Equal(t,
		"https://www.google.com/maps/dir/-3.7319,-38.5267/-3.75,-38.5/-3.7319,-38.5267",
		MapURL(DefaultMapBaseURL, path),
	)
}
