package models

import "time"

// IssueStatus is the resolution state of a reported issue
type IssueStatus string

// Issue statuses, in lifecycle order
const (
	StatusPending    IssueStatus = "pending"
	StatusInProgress IssueStatus = "in_progress"
	StatusCompleted  IssueStatus = "completed"
)

// statusRank orders statuses so that transitions can only move forward.
// Skipping in_progress is allowed, moving backward is not.
var statusRank = map[IssueStatus]int{
	StatusPending:    0,
	StatusInProgress: 1,
	StatusCompleted:  2,
}

// Valid reports whether s is one of the known statuses
func (s IssueStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is a legal
// forward-only transition
func (s IssueStatus) CanTransitionTo(next IssueStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// Issue represents a single reported street defect
type Issue struct {
	ID           string        `json:"id"`
	Category     IssueCategory `json:"category"`
	Status       IssueStatus   `json:"status"`
	Latitude     float64       `json:"latitude"`
	Longitude    float64       `json:"longitude"`
	ImagePath    string        `json:"imageUrl"`
	ReporterName string        `json:"userName,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	Confidence   *float64      `json:"confidence,omitempty"`
}

// Reporter returns the display name for the issue's reporter
func (i Issue) Reporter() string {
	if i.ReporterName == "" {
		return "Anonymous"
	}
	return i.ReporterName
}
