package models

// LocationSource tells where a resolved coordinate came from
type LocationSource string

// Location sources
const (
	SourceDevice  LocationSource = "device"
	SourceDefault LocationSource = "default"
)

// Location is a resolved coordinate pair tagged with its origin
type Location struct {
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Source    LocationSource `json:"source"`
}
