package osrm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BearBump/LogiCalc/internal/integrations/routing"
)

func TestClient_Route_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/route/v1/driving/-38.52,-3.73;-38.5,-3.75;-38.52,-3.73", r.URL.Path)
		require.Equal(t, "false", r.URL.Query().Get("overview"))

		_, _ = w.Write([]byte(`{"code":"Ok","routes":[{"distance":8123.4,"duration":1260.5},{"distance":9000,"duration":1500}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	s, err := c.Route(context.Background(), []routing.Waypoint{
		{Lat: -3.73, Lon: -38.52},
		{Lat: -3.75, Lon: -38.50},
		{Lat: -3.73, Lon: -38.52},
	})
	require.NoError(t, err)
	require.Equal(t, 8123.4, s.DistanceMeters)
	require.Equal(t, 1260.5, s.DurationSeconds)
}

func TestClient_Route_NoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"NoRoute","message":"Impossible route between points"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "driving").Route(context.Background(), []routing.Waypoint{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}})
	require.True(t, errors.Is(err, routing.ErrNoRoute))
	require.Contains(t, err.Error(), "NoRoute")
}

func TestClient_Route_EmptyRoutes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"Ok","routes":[]}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "driving").Route(context.Background(), []routing.Waypoint{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}})
	require.True(t, errors.Is(err, routing.ErrNoRoute))
}

func TestClient_Route_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "driving").Route(context.Background(), []routing.Waypoint{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}})
	require.Error(t, err)
	require.False(t, errors.Is(err, routing.ErrNoRoute))
	require.Contains(t, err.Error(), "502")
}

func TestClient_Route_Malformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "driving").Route(context.Background(), []routing.Waypoint{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}})
	require.Error(t, err)
}

func TestClient_Route_TooFewWaypoints(t *testing.T) {
	_, err := New("http://127.0.0.1:0", "driving").Route(context.Background(), []routing.Waypoint{{Lat: 0, Lon: 0}})
	require.True(t, errors.Is(err, routing.ErrNoRoute))
}
