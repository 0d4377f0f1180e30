package issues_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streetsight/streetsight/issues"
	"github.com/streetsight/streetsight/models"
)

type prefixResolver struct{ base string }

func (p prefixResolver) Resolve(rawPath string) string { return p.base + rawPath }

func timedIssue(id string, created time.Time) models.Issue {
	issue := issueFixture(id, models.StatusPending)
	issue.CreatedAt = created
	return issue
}

func TestCatalogListNewestFirst(t *testing.T) {
	c := issues.NewCatalog(nil)
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	// inserted out of creation order on purpose
	rows := c.List([]models.Issue{
		timedIssue("t2", base.Add(2*time.Hour)),
		timedIssue("t1", base.Add(time.Hour)),
		timedIssue("t3", base.Add(3*time.Hour)),
	})

	require.Equal(t, 3, len(rows))
	assert.Equal(t, "t3", rows[0].ID)
	assert.Equal(t, "t2", rows[1].ID)
	assert.Equal(t, "t1", rows[2].ID)
}

func TestCatalogListEqualTimestampsKeepInsertionOrder(t *testing.T) {
	c := issues.NewCatalog(nil)
	created := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	rows := c.List([]models.Issue{
		timedIssue("first", created),
		timedIssue("second", created),
	})

	require.Equal(t, 2, len(rows))
	assert.Equal(t, "first", rows[0].ID)
	assert.Equal(t, "second", rows[1].ID)
}

func TestCatalogListResolvesImageURLs(t *testing.T) {
	c := issues.NewCatalog(prefixResolver{base: "http://localhost:8080"})

	issue := issueFixture("a", models.StatusPending)
	issue.ImagePath = "/uploads/a.jpg"

	rows := c.List([]models.Issue{issue})
	require.Equal(t, 1, len(rows))
	assert.Equal(t, "http://localhost:8080/uploads/a.jpg", rows[0].ImageURL)
}

func TestCatalogRowFields(t *testing.T) {
	c := issues.NewCatalog(nil)
	issue := models.Issue{
		ID:        "a",
		Category:  models.CategoryFlyTipping,
		Status:    models.StatusCompleted,
		Latitude:  28.6139,
		Longitude: 77.2090,
		CreatedAt: time.Date(2026, 3, 14, 21, 5, 0, 0, time.UTC),
	}

	rows := c.List([]models.Issue{issue})
	require.Equal(t, 1, len(rows))
	row := rows[0]
	assert.Equal(t, "Fly Tipping", row.Category)
	assert.Equal(t, models.StatusCompleted, row.Status)
	assert.Equal(t, "Anonymous", row.Reporter)
	assert.Equal(t, "Mar 14, 2026, 9:05 PM", row.Date)
	assert.Equal(t, "28.6139, 77.2090", row.Coordinates)
	assert.Equal(t, "https://www.google.com/maps?q=28.6139,77.209", row.MapLink)
}

func TestCatalogPage(t *testing.T) {
	c := issues.NewCatalog(nil)
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	var list []models.Issue
	for i := 0; i < 25; i++ {
		list = append(list, timedIssue(string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute)))
	}

	page := c.Page(list, 2, 10)
	assert.Equal(t, 25, page.TotalRows)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	require.Equal(t, 10, len(page.Rows))

	// deterministic: the same inputs produce the same page
	again := c.Page(list, 2, 10)
	assert.Equal(t, page, again)
}

func TestCatalogPageClampsInputs(t *testing.T) {
	c := issues.NewCatalog(nil)
	list := []models.Issue{issueFixture("a", models.StatusPending)}

	page := c.Page(list, 0, -5)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 1, len(page.Rows))

	beyond := c.Page(list, 99, 10)
	assert.Equal(t, 0, len(beyond.Rows))
	assert.Equal(t, 1, beyond.TotalRows)
}
