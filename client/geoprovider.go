package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPGeoProvider resolves the device coordinate from a JSON geolocation
// endpoint. The bounded wait lives in the GeoLocator; this provider only
// performs the single lookup.
type HTTPGeoProvider struct {
	endpoint string
	httpc    *http.Client
}

// NewHTTPGeoProvider builds a provider against the given endpoint
func NewHTTPGeoProvider(endpoint string) *HTTPGeoProvider {
	return &HTTPGeoProvider{
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Coordinates performs one lookup and returns the reported coordinate pair
func (p *HTTPGeoProvider) Coordinates(ctx context.Context) (float64, float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return 0, 0, err
	}

	resp, err := p.httpc.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, 0, fmt.Errorf("geolocation lookup failed: %d %s", resp.StatusCode, body)
	}

	var payload struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, 0, err
	}
	if payload.Latitude == nil || payload.Longitude == nil {
		return 0, 0, fmt.Errorf("geolocation response missing coordinates")
	}
	return *payload.Latitude, *payload.Longitude, nil
}
