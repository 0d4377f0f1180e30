package issues

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/streetsight/streetsight/models"
)

// CoordinateProvider obtains device-reported coordinates. Implementations
// may prompt for permission; the prompt state is expected to be idempotent
// across calls.
type CoordinateProvider interface {
	Coordinates(ctx context.Context) (lat, lng float64, err error)
}

// GeoLocator resolves the current coordinate with a single provider attempt
// and a deterministic fallback. It never returns an error: permission
// denial, provider failure and timeout all resolve to the configured
// fallback coordinate.
type GeoLocator struct {
	provider CoordinateProvider
	fallback models.Location
	timeout  time.Duration
}

// NewGeoLocator wires a provider with the configured fallback coordinate and
// bounded wait
func NewGeoLocator(provider CoordinateProvider, fallbackLat, fallbackLng float64, timeout time.Duration) *GeoLocator {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &GeoLocator{
		provider: provider,
		fallback: models.Location{Latitude: fallbackLat, Longitude: fallbackLng, Source: models.SourceDefault},
		timeout:  timeout,
	}
}

type coordResult struct {
	lat, lng float64
	err      error
}

// Resolve attempts one device lookup within the bounded wait. The provider
// call may outlive the wait; its late result is discarded.
func (g *GeoLocator) Resolve(ctx context.Context) models.Location {
	if g.provider == nil {
		return g.fallback
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	done := make(chan coordResult, 1)
	go func() {
		lat, lng, err := g.provider.Coordinates(ctx)
		done <- coordResult{lat: lat, lng: lng, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			zap.S().Warnw("device location unavailable, using fallback", "error", res.err)
			return g.fallback
		}
		return models.Location{Latitude: res.lat, Longitude: res.lng, Source: models.SourceDevice}
	case <-ctx.Done():
		zap.S().Warnw("device location timed out, using fallback", "timeout", g.timeout)
		return g.fallback
	}
}
