package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RawIssue is the wire shape of an issue record as returned by the reports
// API. Category is the provider's untrusted label; it is normalized before
// an Issue is built from it.
type RawIssue struct {
	ID         string    `json:"id" validate:"required"`
	Category   string    `json:"category"`
	Status     string    `json:"status"`
	Latitude   *float64  `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude  *float64  `json:"longitude" validate:"required,gte=-180,lte=180"`
	ImageURL   string    `json:"imageUrl"`
	UserName   string    `json:"userName"`
	CreatedAt  time.Time `json:"createdAt"`
	Confidence *float64  `json:"confidence,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// Validate checks the record against the Issue shape constraints. Both
// coordinates must be present; an issue without a location cannot exist.
func (r RawIssue) Validate() error {
	return validate.Struct(r)
}

// ToIssue converts a validated wire record into a domain Issue with the
// category normalized and an unknown status coerced to pending
func (r RawIssue) ToIssue() Issue {
	status := IssueStatus(r.Status)
	if !status.Valid() {
		status = StatusPending
	}
	issue := Issue{
		ID:           r.ID,
		Category:     CategoryFromRaw(r.Category),
		Status:       status,
		ImagePath:    r.ImageURL,
		ReporterName: r.UserName,
		CreatedAt:    r.CreatedAt,
		Confidence:   r.Confidence,
	}
	if r.Latitude != nil {
		issue.Latitude = *r.Latitude
	}
	if r.Longitude != nil {
		issue.Longitude = *r.Longitude
	}
	return issue
}

// SubmitResponse is what the reports API returns for a successful submission
type SubmitResponse struct {
	IssueID    string   `json:"issueId"`
	Category   string   `json:"category"`
	Confidence *float64 `json:"confidence,omitempty"`
}

// HealthCheckResponse is the health check response struct
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
