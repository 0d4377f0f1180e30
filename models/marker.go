package models

import "fmt"

// Icon classes per status. The mapping is fixed, not configurable.
const (
	IconPending    = "red"
	IconInProgress = "orange"
	IconCompleted  = "green"
)

// Marker is a map-displayable projection of an Issue
type Marker struct {
	ID          string      `json:"id"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	Status      IssueStatus `json:"status"`
	IconClass   string      `json:"iconClass"`
	Category    string      `json:"category"`
	Reporter    string      `json:"reporter"`
	Date        string      `json:"date"`
	Coordinates string      `json:"coordinates"`
	MapLink     string      `json:"mapLink"`
}

// BoundingBox is a lat/lng rectangle
type BoundingBox struct {
	MinLat float64 `json:"minLat"`
	MinLng float64 `json:"minLng"`
	MaxLat float64 `json:"maxLat"`
	MaxLng float64 `json:"maxLng"`
}

// Viewport is the computed map view: either a box fitted around the visible
// markers or the configured default center
type Viewport struct {
	Bounds    *BoundingBox `json:"bounds,omitempty"`
	CenterLat float64      `json:"centerLat"`
	CenterLng float64      `json:"centerLng"`
	Zoom      int          `json:"zoom"`
}

// Projection is the derived map view for a status filter
type Projection struct {
	Markers  []Marker `json:"markers"`
	Viewport Viewport `json:"viewport"`
}

// MapsLink builds the external map URL for a coordinate pair
func MapsLink(lat, lng float64) string {
	return fmt.Sprintf("https://www.google.com/maps?q=%v,%v", lat, lng)
}

// IconClassFor returns the marker icon class for a status
func IconClassFor(status IssueStatus) string {
	switch status {
	case StatusInProgress:
		return IconInProgress
	case StatusCompleted:
		return IconCompleted
	default:
		return IconPending
	}
}
