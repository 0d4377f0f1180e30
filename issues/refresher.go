package issues

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/streetsight/streetsight/models"
)

// Lister fetches the current set of issue records from the reports API
type Lister interface {
	ListReports(ctx context.Context) ([]models.RawIssue, error)
}

// Refresher periodically replaces the collection contents with a fresh
// snapshot from the source of truth. Removal of issues only ever happens
// through this full refresh.
type Refresher struct {
	cron       *cron.Cron
	source     Lister
	collection *Collection
	schedule   string
}

// NewRefresher wires a cron-driven re-sync of collection from source
func NewRefresher(source Lister, collection *Collection, schedule string) *Refresher {
	return &Refresher{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		source:     source,
		collection: collection,
		schedule:   schedule,
	}
}

// Start registers and begins the refresh job
func (r *Refresher) Start() error {
	_, err := r.cron.AddFunc(r.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := r.Refresh(ctx); err != nil {
			zap.S().Errorw("scheduled refresh failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	r.cron.Start()
	zap.S().Infow("issue refresher started", "schedule", r.schedule)
	return nil
}

// Stop halts the refresh job and waits for a running one to finish
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	zap.S().Info("issue refresher stopped")
}

// Refresh pulls the report list once and replaces the collection. Records
// that fail shape validation are dropped with a warning rather than
// poisoning the snapshot.
func (r *Refresher) Refresh(ctx context.Context) error {
	raws, err := r.source.ListReports(ctx)
	if err != nil {
		return err
	}

	issues := make([]models.Issue, 0, len(raws))
	for _, raw := range raws {
		if err := raw.Validate(); err != nil {
			zap.S().Warnw("dropping malformed issue record", "id", raw.ID, "error", err)
			continue
		}
		issues = append(issues, raw.ToIssue())
	}
	r.collection.ReplaceAll(issues)
	zap.S().Debugw("collection refreshed", "issues", len(issues))
	return nil
}
