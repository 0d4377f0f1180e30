package issues

import (
	"fmt"
	"math"
	"time"

	"github.com/streetsight/streetsight/config"
	"github.com/streetsight/streetsight/models"
)

// StatusFilter selects which issues a derived view shows
type StatusFilter string

// FilterAll shows every issue regardless of status
const FilterAll StatusFilter = "all"

const (
	// viewportPadding expands the fitted box by a tenth of the marker span
	// on every side
	viewportPadding = 0.1
	// maxFitZoom caps how far a fitted viewport may zoom in, so a
	// single-marker set does not over-zoom
	maxFitZoom = 15
)

// Projector derives a bounded, styled marker set from an issue sequence.
// It is a pure read-derivation; it never touches the network.
type Projector struct {
	defaultView config.DefaultViewport
}

// NewProjector builds a projector with the configured empty-set viewport
func NewProjector(defaultView config.DefaultViewport) *Projector {
	return &Projector{defaultView: defaultView}
}

// Project maps the issues matching filter to styled markers plus a viewport
// that fits them. An empty marker set yields the configured default view,
// a policy choice rather than a derived value.
func (p *Projector) Project(issues []models.Issue, filter StatusFilter) models.Projection {
	markers := []models.Marker{}
	for _, issue := range issues {
		if filter != FilterAll && issue.Status != models.IssueStatus(filter) {
			continue
		}
		markers = append(markers, models.Marker{
			ID:          issue.ID,
			Latitude:    issue.Latitude,
			Longitude:   issue.Longitude,
			Status:      issue.Status,
			IconClass:   models.IconClassFor(issue.Status),
			Category:    issue.Category.Label(),
			Reporter:    issue.Reporter(),
			Date:        DisplayDate(issue.CreatedAt),
			Coordinates: CoordinateLabel(issue.Latitude, issue.Longitude),
			MapLink:     models.MapsLink(issue.Latitude, issue.Longitude),
		})
	}

	return models.Projection{
		Markers:  markers,
		Viewport: p.viewportFor(markers),
	}
}

func (p *Projector) viewportFor(markers []models.Marker) models.Viewport {
	if len(markers) == 0 {
		return models.Viewport{
			CenterLat: p.defaultView.Lat,
			CenterLng: p.defaultView.Lng,
			Zoom:      p.defaultView.Zoom,
		}
	}

	minLat, maxLat := markers[0].Latitude, markers[0].Latitude
	minLng, maxLng := markers[0].Longitude, markers[0].Longitude
	for _, m := range markers[1:] {
		minLat = math.Min(minLat, m.Latitude)
		maxLat = math.Max(maxLat, m.Latitude)
		minLng = math.Min(minLng, m.Longitude)
		maxLng = math.Max(maxLng, m.Longitude)
	}

	latPad := (maxLat - minLat) * viewportPadding
	lngPad := (maxLng - minLng) * viewportPadding
	bounds := models.BoundingBox{
		MinLat: math.Max(minLat-latPad, -90),
		MaxLat: math.Min(maxLat+latPad, 90),
		MinLng: math.Max(minLng-lngPad, -180),
		MaxLng: math.Min(maxLng+lngPad, 180),
	}

	return models.Viewport{
		Bounds:    &bounds,
		CenterLat: (bounds.MinLat + bounds.MaxLat) / 2,
		CenterLng: (bounds.MinLng + bounds.MaxLng) / 2,
		Zoom:      fitZoom(bounds),
	}
}

// fitZoom picks the largest zoom level whose tile span still covers the
// bounds, capped so tight clusters stay readable
func fitZoom(b models.BoundingBox) int {
	latSpan := b.MaxLat - b.MinLat
	lngSpan := b.MaxLng - b.MinLng

	zoom := float64(maxFitZoom)
	if lngSpan > 0 {
		zoom = math.Min(zoom, math.Floor(math.Log2(360/lngSpan)))
	}
	if latSpan > 0 {
		zoom = math.Min(zoom, math.Floor(math.Log2(180/latSpan)))
	}
	if zoom < 1 {
		zoom = 1
	}
	return int(zoom)
}

// DisplayDate formats a timestamp the way the report views show it
func DisplayDate(t time.Time) string {
	return t.Format("Jan 2, 2006, 3:04 PM")
}

// CoordinateLabel renders a coordinate pair to four decimal places
func CoordinateLabel(lat, lng float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lng)
}
