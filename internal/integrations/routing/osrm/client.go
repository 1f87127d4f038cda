package osrm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/BearBump/LogiCalc/internal/integrations/routing"
	"github.com/pkg/errors"
)

const (
	DefaultBaseURL = "https://router.project-osrm.org"
	DefaultProfile = "driving"
)

type Client struct {
	baseURL string
	profile string
	httpc   *http.Client
}

func New(baseURL, profile string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if profile == "" {
		profile = DefaultProfile
	}
	return &Client{
		baseURL: baseURL,
		profile: profile,
		httpc: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) WithTimeout(d time.Duration) *Client {
	if d > 0 {
		c.httpc.Timeout = d
	}
	return c
}

type routeResp struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// Route запрашивает маршрут без геометрии (overview=false), нужны только суммы.
func (c *Client) Route(ctx context.Context, waypoints []routing.Waypoint) (routing.Summary, error) {
	if len(waypoints) < 2 {
		return routing.Summary{}, errors.Wrapf(routing.ErrNoRoute, "need at least 2 waypoints, got %d", len(waypoints))
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return routing.Summary{}, errors.Wrap(err, "parse base url")
	}
	coords := make([]string, 0, len(waypoints))
	for _, w := range waypoints {
		// OSRM ждёт lon,lat
		coords = append(coords, strconv.FormatFloat(w.Lon, 'f', -1, 64)+","+strconv.FormatFloat(w.Lat, 'f', -1, 64))
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/route/v1/" + c.profile + "/" + strings.Join(coords, ";")

	q := u.Query()
	q.Set("overview", "false")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return routing.Summary{}, errors.Wrap(err, "new request")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return routing.Summary{}, errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return routing.Summary{}, errors.Wrap(err, "read body")
	}

	// На NoRoute/InvalidQuery OSRM отвечает 400 с JSON, его разбираем ниже.
	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return routing.Summary{}, errors.Errorf("osrm http %d", resp.StatusCode)
	}

	var r routeResp
	if err := json.Unmarshal(body, &r); err != nil {
		return routing.Summary{}, errors.Wrapf(err, "decode (http %d)", resp.StatusCode)
	}
	if r.Code != "Ok" || len(r.Routes) == 0 {
		return routing.Summary{}, errors.Wrapf(routing.ErrNoRoute, "osrm code=%s %s", r.Code, r.Message)
	}

	return routing.Summary{
		DistanceMeters:  r.Routes[0].Distance,
		DurationSeconds: r.Routes[0].Duration,
	}, nil
}
