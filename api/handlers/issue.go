package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/streetsight/streetsight/api"
	"github.com/streetsight/streetsight/config"
	"github.com/streetsight/streetsight/issues"
	"github.com/streetsight/streetsight/models"
	"github.com/streetsight/streetsight/store"
)

// multipartMemoryLimit caps the in-memory part of a report upload
const multipartMemoryLimit = 10 << 20

// Issue handles report submission and the read endpoints backing the map
// and list views
type Issue struct {
	Collection *issues.Collection
	Uploads    *store.Uploads
	Validator  *issues.MediaValidator
	Classifier Classifier
	Hub        *Hub
}

// SubmitReportHandler accepts a multipart report (image + coordinates),
// classifies it and stores the resulting issue as pending
func (i Issue) SubmitReportHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		config.ErrorStatus("failed to parse multipart form", http.StatusBadRequest, w, err)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		config.ErrorStatus("missing image field", http.StatusBadRequest, w, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		config.ErrorStatus("failed to read image", http.StatusBadRequest, w, err)
		return
	}

	image, err := i.Validator.Validate(header.Filename, data)
	if err != nil {
		config.ErrorStatus("rejected image", http.StatusUnprocessableEntity, w, err)
		return
	}

	lat, latErr := strconv.ParseFloat(r.FormValue("latitude"), 64)
	lng, lngErr := strconv.ParseFloat(r.FormValue("longitude"), 64)
	if latErr != nil || lngErr != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		config.ErrorStatus("invalid coordinates", http.StatusBadRequest, w, errors.New("latitude and longitude are required"))
		return
	}

	label, confidence, err := i.Classifier.Classify(r.Context(), image.Name, data)
	if err != nil {
		config.ErrorStatus("classification failed", http.StatusBadGateway, w, err)
		return
	}

	imagePath, err := i.Uploads.Save(image.Name, image.Reader())
	if err != nil {
		config.ErrorStatus("failed to store image", http.StatusInternalServerError, w, err)
		return
	}

	reporter := ""
	if info, ok := api.AuthInfoFrom(r); ok {
		reporter = info.UserName()
	}

	issue := models.Issue{
		ID:           uuid.New().String(),
		Category:     models.CategoryFromRaw(label),
		Status:       models.StatusPending,
		Latitude:     lat,
		Longitude:    lng,
		ImagePath:    imagePath,
		ReporterName: reporter,
		CreatedAt:    time.Now(),
		Confidence:   &confidence,
	}
	if err := i.Collection.Insert(issue); err != nil {
		config.ErrorStatus("failed to store issue", http.StatusInternalServerError, w, err)
		return
	}

	i.Hub.Broadcast(LiveEvent{Type: EventIssueCreated, Issue: rawFromIssue(issue)})
	zap.S().Infow("report received",
		"issueId", issue.ID,
		"label", label,
		"reporter", issue.Reporter(),
	)

	b, err := json.Marshal(models.SubmitResponse{
		IssueID:    issue.ID,
		Category:   label,
		Confidence: &confidence,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// ListReportsHandler returns every known issue record, newest last
// (insertion order)
func (i Issue) ListReportsHandler(w http.ResponseWriter, r *http.Request) {
	i.writeRawIssues(w, i.Collection.All())
}

// MapDataHandler returns issue records for map display, optionally filtered
// by status
func (i Issue) MapDataHandler(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" || status == "all" {
		i.writeRawIssues(w, i.Collection.All())
		return
	}
	if !models.IssueStatus(status).Valid() {
		config.ErrorStatus("invalid status filter", http.StatusBadRequest, w, errors.New(status))
		return
	}
	i.writeRawIssues(w, i.Collection.ByStatus(models.IssueStatus(status)))
}

// NearbyHandler returns the issues within radius meters of a coordinate
func (i Issue) NearbyHandler(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("latitude"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("longitude"), 64)
	if latErr != nil || lngErr != nil {
		config.ErrorStatus("invalid coordinates", http.StatusBadRequest, w, errors.New("latitude and longitude are required"))
		return
	}
	radius, err := strconv.ParseFloat(r.URL.Query().Get("radius"), 64)
	if err != nil || radius <= 0 {
		radius = 5000
	}

	nearby := []models.Issue{}
	for _, issue := range i.Collection.All() {
		if haversineMeters(lat, lng, issue.Latitude, issue.Longitude) <= radius {
			nearby = append(nearby, issue)
		}
	}
	i.writeRawIssues(w, nearby)
}

// UpdateStatusHandler moves an issue forward through its lifecycle
func (i Issue) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	issueID := mux.Vars(r)["issue_id"]

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	next := models.IssueStatus(body.Status)
	if !next.Valid() {
		config.ErrorStatus("invalid status", http.StatusBadRequest, w, errors.New(body.Status))
		return
	}

	err := i.Collection.UpdateStatus(issueID, next)
	switch {
	case errors.Is(err, models.ErrNotFound):
		config.ErrorStatus("issue not found", http.StatusNotFound, w, err)
		return
	case errors.Is(err, models.ErrInvalidTransition):
		config.ErrorStatus("invalid status transition", http.StatusConflict, w, err)
		return
	case err != nil:
		config.ErrorStatus("failed to update status", http.StatusInternalServerError, w, err)
		return
	}

	issue, _ := i.Collection.Get(issueID)
	i.Hub.Broadcast(LiveEvent{Type: EventIssueStatus, Issue: rawFromIssue(issue)})

	b, err := json.Marshal(rawFromIssue(issue))
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func (i Issue) writeRawIssues(w http.ResponseWriter, list []models.Issue) {
	w.Header().Set("Content-Type", "application/json")

	raws := make([]models.RawIssue, 0, len(list))
	for _, issue := range list {
		raws = append(raws, rawFromIssue(issue))
	}
	b, err := json.Marshal(raws)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func rawFromIssue(issue models.Issue) models.RawIssue {
	lat, lng := issue.Latitude, issue.Longitude
	return models.RawIssue{
		ID:         issue.ID,
		Category:   string(issue.Category),
		Status:     string(issue.Status),
		Latitude:   &lat,
		Longitude:  &lng,
		ImageURL:   issue.ImagePath,
		UserName:   issue.ReporterName,
		CreatedAt:  issue.CreatedAt,
		Confidence: issue.Confidence,
	}
}

const earthRadiusMeters = 6371000

func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLng := (lng2 - lng1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}
