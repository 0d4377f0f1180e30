package issues

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/streetsight/streetsight/models"
)

// Collection is the process-wide authoritative set of known issues. Issues
// enter it only through a successful submission or a refresh from the
// reports API; they are never deleted one by one.
type Collection struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]models.Issue
	subs  []func()
}

// NewCollection initializes an empty issue collection
func NewCollection() *Collection {
	return &Collection{
		byID: make(map[string]models.Issue),
	}
}

// Subscribe registers a callback invoked after every mutation. Callers use
// it to know when to recompute derived map/list views.
func (c *Collection) Subscribe(fn func()) {
	c.mu.Lock()
	c.subs = append(c.subs, fn)
	c.mu.Unlock()
}

func (c *Collection) notify() {
	c.mu.RLock()
	subs := make([]func(), len(c.subs))
	copy(subs, c.subs)
	c.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

// Insert adds a new issue. The id must be unique within the collection.
func (c *Collection) Insert(issue models.Issue) error {
	c.mu.Lock()
	if _, exists := c.byID[issue.ID]; exists {
		c.mu.Unlock()
		return fmt.Errorf("%w: %v", models.ErrDuplicateID, issue.ID)
	}
	c.byID[issue.ID] = issue
	c.order = append(c.order, issue.ID)
	c.mu.Unlock()

	c.notify()
	return nil
}

// UpdateStatus moves an issue forward through its lifecycle. Backward moves
// fail with ErrInvalidTransition and leave the issue untouched.
func (c *Collection) UpdateStatus(id string, next models.IssueStatus) error {
	c.mu.Lock()
	issue, exists := c.byID[id]
	if !exists {
		c.mu.Unlock()
		return fmt.Errorf("%w: %v", models.ErrNotFound, id)
	}
	if !issue.Status.CanTransitionTo(next) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %v -> %v", models.ErrInvalidTransition, issue.Status, next)
	}
	issue.Status = next
	c.byID[id] = issue
	c.mu.Unlock()

	c.notify()
	return nil
}

// Get returns the issue with the given id
func (c *Collection) Get(id string) (models.Issue, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	issue, ok := c.byID[id]
	return issue, ok
}

// All returns every issue in insertion order
func (c *Collection) All() []models.Issue {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Issue, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// ByStatus returns the issues with the given status, preserving their
// insertion order
func (c *Collection) ByStatus(status models.IssueStatus) []models.Issue {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := []models.Issue{}
	for _, id := range c.order {
		if issue := c.byID[id]; issue.Status == status {
			out = append(out, issue)
		}
	}
	return out
}

// Len returns the number of known issues
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// ReplaceAll swaps the full contents for a fresh snapshot from the source of
// truth. Duplicate ids in the snapshot keep the first occurrence.
func (c *Collection) ReplaceAll(issues []models.Issue) {
	c.mu.Lock()
	c.order = c.order[:0]
	c.byID = make(map[string]models.Issue, len(issues))
	for _, issue := range issues {
		if _, exists := c.byID[issue.ID]; exists {
			zap.S().Warnw("dropping duplicate issue id in refresh snapshot", "id", issue.ID)
			continue
		}
		c.byID[issue.ID] = issue
		c.order = append(c.order, issue.ID)
	}
	c.mu.Unlock()

	c.notify()
}
