package issues_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/streetsight/streetsight/issues"
	"github.com/streetsight/streetsight/models"
)

func issueFixture(id string, status models.IssueStatus) models.Issue {
	return models.Issue{
		ID:        id,
		Category:  models.CategoryPothole,
		Status:    status,
		Latitude:  28.6139,
		Longitude: 77.2090,
		CreatedAt: time.Now(),
	}
}

func TestCollectionInsertPreservesOrder(t *testing.T) {
	c := issues.NewCollection()
	assert.NoError(t, c.Insert(issueFixture("a", models.StatusPending)))
	assert.NoError(t, c.Insert(issueFixture("b", models.StatusCompleted)))
	assert.NoError(t, c.Insert(issueFixture("c", models.StatusPending)))

	all := c.All()
	assert.Equal(t, 3, len(all))
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
	assert.Equal(t, "c", all[2].ID)
}

func TestCollectionInsertRejectsDuplicateID(t *testing.T) {
	c := issues.NewCollection()
	assert.NoError(t, c.Insert(issueFixture("a", models.StatusPending)))

	err := c.Insert(issueFixture("a", models.StatusCompleted))
	assert.ErrorIs(t, err, models.ErrDuplicateID)
	assert.Equal(t, 1, c.Len())

	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, models.StatusPending, got.Status)
}

func TestCollectionUpdateStatusForwardOnly(t *testing.T) {
	c := issues.NewCollection()
	assert.NoError(t, c.Insert(issueFixture("a", models.StatusPending)))

	assert.NoError(t, c.UpdateStatus("a", models.StatusInProgress))
	assert.NoError(t, c.UpdateStatus("a", models.StatusCompleted))

	err := c.UpdateStatus("a", models.StatusPending)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	got, _ := c.Get("a")
	assert.Equal(t, models.StatusCompleted, got.Status)
}

func TestCollectionUpdateStatusSkipsInProgress(t *testing.T) {
	c := issues.NewCollection()
	assert.NoError(t, c.Insert(issueFixture("a", models.StatusPending)))
	assert.NoError(t, c.UpdateStatus("a", models.StatusCompleted))

	got, _ := c.Get("a")
	assert.Equal(t, models.StatusCompleted, got.Status)
}

func TestCollectionUpdateStatusUnknownID(t *testing.T) {
	c := issues.NewCollection()
	err := c.UpdateStatus("ghost", models.StatusCompleted)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCollectionByStatus(t *testing.T) {
	c := issues.NewCollection()
	assert.NoError(t, c.Insert(issueFixture("a", models.StatusPending)))
	assert.NoError(t, c.Insert(issueFixture("b", models.StatusCompleted)))
	assert.NoError(t, c.Insert(issueFixture("c", models.StatusPending)))

	pending := c.ByStatus(models.StatusPending)
	assert.Equal(t, 2, len(pending))
	assert.Equal(t, "a", pending[0].ID)
	assert.Equal(t, "c", pending[1].ID)
}

func TestCollectionNotifiesSubscribersAfterMutation(t *testing.T) {
	c := issues.NewCollection()
	calls := 0
	c.Subscribe(func() { calls++ })

	assert.NoError(t, c.Insert(issueFixture("a", models.StatusPending)))
	assert.Equal(t, 1, calls)

	assert.NoError(t, c.UpdateStatus("a", models.StatusCompleted))
	assert.Equal(t, 2, calls)

	// failed mutations do not notify
	assert.Error(t, c.UpdateStatus("a", models.StatusPending))
	assert.Equal(t, 2, calls)
}

func TestCollectionReplaceAllDropsDuplicates(t *testing.T) {
	c := issues.NewCollection()
	assert.NoError(t, c.Insert(issueFixture("old", models.StatusPending)))

	c.ReplaceAll([]models.Issue{
		issueFixture("a", models.StatusPending),
		issueFixture("a", models.StatusCompleted),
		issueFixture("b", models.StatusInProgress),
	})

	all := c.All()
	assert.Equal(t, 2, len(all))
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, models.StatusPending, all[0].Status)
	assert.Equal(t, "b", all[1].ID)
}
