package issues

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/streetsight/streetsight/models"
)

// State is the lifecycle state of the active submission attempt
type State string

// Pipeline states
const (
	StateIdle             State = "idle"
	StateValidating       State = "validating"
	StateAwaitingLocation State = "awaiting_location"
	StateSubmitting       State = "submitting"
	StateSucceeded        State = "succeeded"
	StateFailed           State = "failed"
)

// ErrSubmitInFlight rejects starting a new attempt while the current one is
// on the wire
var ErrSubmitInFlight = errors.New("submission already in flight")

// Submitter is the transport collaborator the pipeline submits through
type Submitter interface {
	SubmitReport(ctx context.Context, image *ValidatedImage, lat, lng float64) (models.SubmitResponse, error)
}

// AuthContext reports whether the current session may submit
type AuthContext interface {
	IsAuthenticated() bool
}

// Attempt is a read-only snapshot of the active submission attempt
type Attempt struct {
	State     State
	ImageName string
	Location  *models.Location
	Err       error
}

// Pipeline orchestrates validate, locate, submit and reconcile for a single
// report attempt. Exactly one attempt is active at a time; selecting a new
// image discards the prior one.
type Pipeline struct {
	validator  *MediaValidator
	locator    *GeoLocator
	transport  Submitter
	auth       AuthContext
	collection *Collection
	resetDelay time.Duration
	now        func() time.Time

	mu         sync.Mutex
	state      State
	reason     error
	image      *ValidatedImage
	location   *models.Location
	generation int
	resetTimer *time.Timer
}

// NewPipeline wires the submission pipeline. resetDelay is the cosmetic
// pause before a succeeded attempt returns to idle.
func NewPipeline(validator *MediaValidator, locator *GeoLocator, transport Submitter, auth AuthContext, collection *Collection, resetDelay time.Duration) *Pipeline {
	if resetDelay <= 0 {
		resetDelay = 3 * time.Second
	}
	return &Pipeline{
		validator:  validator,
		locator:    locator,
		transport:  transport,
		auth:       auth,
		collection: collection,
		resetDelay: resetDelay,
		now:        time.Now,
		state:      StateIdle,
	}
}

// State returns the current pipeline state
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Snapshot returns the current attempt for UI display
func (p *Pipeline) Snapshot() Attempt {
	p.mu.Lock()
	defer p.mu.Unlock()
	a := Attempt{State: p.state, Err: p.reason}
	if p.image != nil {
		a.ImageName = p.image.Name
	}
	if p.location != nil {
		loc := *p.location
		a.Location = &loc
	}
	return a
}

// SelectImage starts a fresh attempt: it validates the upload synchronously
// and, only on success, resolves the device location within its bounded
// wait. The attempt then holds in AwaitingLocation until Submit.
func (p *Pipeline) SelectImage(ctx context.Context, name string, data []byte) error {
	p.mu.Lock()
	if p.state == StateSubmitting {
		p.mu.Unlock()
		return ErrSubmitInFlight
	}
	p.discardLocked()
	p.generation++
	gen := p.generation
	p.state = StateValidating

	image, err := p.validator.Validate(name, data)
	if err != nil {
		p.state = StateFailed
		p.reason = err
		p.mu.Unlock()
		return err
	}
	p.image = image
	p.state = StateAwaitingLocation
	p.mu.Unlock()

	// suspend point: single-shot, bounded, never fails
	loc := p.locator.Resolve(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.generation != gen {
		// a newer attempt replaced this one while locating
		return nil
	}
	p.location = &loc
	return nil
}

// Submit sends the current attempt to the reports API. A second call while
// the first is on the wire is a guarded no-op. The collection reflects the
// new issue before Succeeded is observable.
func (p *Pipeline) Submit(ctx context.Context) error {
	p.mu.Lock()
	if p.state == StateSubmitting {
		p.mu.Unlock()
		zap.S().Debug("submit ignored, attempt already submitting")
		return nil
	}
	if !p.auth.IsAuthenticated() {
		p.state = StateFailed
		p.reason = models.ErrNotAuthenticated
		p.mu.Unlock()
		return models.ErrNotAuthenticated
	}
	if p.image == nil || p.location == nil {
		// unreachable through normal UI gating, log as invariant violation
		zap.S().Errorw("submit without image or location",
			"hasImage", p.image != nil,
			"hasLocation", p.location != nil,
		)
		p.state = StateFailed
		p.reason = models.ErrPreconditionNotMet
		p.mu.Unlock()
		return models.ErrPreconditionNotMet
	}
	image, location := p.image, *p.location
	gen := p.generation
	p.state = StateSubmitting
	p.reason = nil
	p.mu.Unlock()

	// suspend point: timeout is owned by the transport
	resp, err := p.transport.SubmitReport(ctx, image, location.Latitude, location.Longitude)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.generation != gen {
		return nil
	}
	if err != nil {
		// transport errors surface verbatim; the collection stays untouched
		p.state = StateFailed
		p.reason = err
		return err
	}

	issue := models.Issue{
		ID:         resp.IssueID,
		Category:   models.CategoryFromRaw(resp.Category),
		Status:     models.StatusPending,
		Latitude:   location.Latitude,
		Longitude:  location.Longitude,
		CreatedAt:  p.now(),
		Confidence: resp.Confidence,
	}
	if err := p.collection.Insert(issue); err != nil {
		p.state = StateFailed
		p.reason = err
		return fmt.Errorf("reconcile submitted issue: %w", err)
	}

	p.state = StateSucceeded
	zap.S().Infow("report submitted",
		"issueId", issue.ID,
		"category", issue.Category,
		"source", location.Source,
	)
	p.resetTimer = time.AfterFunc(p.resetDelay, func() { p.autoReset(gen) })
	return nil
}

// Reset discards the active attempt and returns to Idle. This is the
// "upload different photo" action.
func (p *Pipeline) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.discardLocked()
	p.generation++
	p.state = StateIdle
}

func (p *Pipeline) autoReset(gen int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.generation != gen || p.state != StateSucceeded {
		return
	}
	p.discardLocked()
	p.generation++
	p.state = StateIdle
}

func (p *Pipeline) discardLocked() {
	if p.resetTimer != nil {
		p.resetTimer.Stop()
		p.resetTimer = nil
	}
	p.image = nil
	p.location = nil
	p.reason = nil
}
