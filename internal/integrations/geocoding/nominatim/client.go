package nominatim

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/BearBump/LogiCalc/internal/integrations/geocoding"
	"github.com/pkg/errors"
)

const DefaultBaseURL = "https://nominatim.openstreetmap.org"

type Client struct {
	baseURL      string
	userAgent    string
	countryCodes string
	httpc        *http.Client
}

func New(baseURL, userAgent, countryCodes string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if userAgent == "" {
		userAgent = "LogiCalc/1.0"
	}
	return &Client{
		baseURL:      baseURL,
		userAgent:    userAgent,
		countryCodes: countryCodes,
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

type searchItem struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Search запрашивает только лучший кандидат (limit=1).
func (c *Client) Search(ctx context.Context, address string) ([]geocoding.Candidate, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse base url")
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/search"

	q := u.Query()
	q.Set("format", "json")
	q.Set("q", address)
	q.Set("limit", "1")
	if c.countryCodes != "" {
		q.Set("countrycodes", c.countryCodes)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}
	// Без User-Agent публичный Nominatim отвечает 403.
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, errors.Errorf("nominatim http %d", resp.StatusCode)
	}

	var items []searchItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, errors.Wrap(err, "decode")
	}

	out := make([]geocoding.Candidate, 0, len(items))
	for _, it := range items {
		lat, err := strconv.ParseFloat(it.Lat, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse lat %q", it.Lat)
		}
		lon, err := strconv.ParseFloat(it.Lon, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parse lon %q", it.Lon)
		}
		out = append(out, geocoding.Candidate{Lat: lat, Lon: lon, DisplayName: it.DisplayName})
	}
	return out, nil
}
