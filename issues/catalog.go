package issues

import (
	"sort"

	"github.com/streetsight/streetsight/models"
)

// ImageURLResolver turns a stored image path into an absolute URL
type ImageURLResolver interface {
	Resolve(rawPath string) string
}

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Catalog derives the tabular report view from an issue sequence, newest
// first. Like the projector it is a pure read-derivation.
type Catalog struct {
	resolver ImageURLResolver
}

// NewCatalog builds a catalog using resolver for image links
func NewCatalog(resolver ImageURLResolver) *Catalog {
	return &Catalog{resolver: resolver}
}

// List returns every issue as a report row sorted by creation time
// descending. Rows with equal timestamps keep their insertion order.
func (c *Catalog) List(issues []models.Issue) []models.ReportRow {
	sorted := make([]models.Issue, len(issues))
	copy(sorted, issues)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	rows := make([]models.ReportRow, 0, len(sorted))
	for _, issue := range sorted {
		rows = append(rows, models.ReportRow{
			ID:          issue.ID,
			Category:    issue.Category.Label(),
			Status:      issue.Status,
			Reporter:    issue.Reporter(),
			Date:        DisplayDate(issue.CreatedAt),
			Coordinates: CoordinateLabel(issue.Latitude, issue.Longitude),
			MapLink:     models.MapsLink(issue.Latitude, issue.Longitude),
			ImageURL:    c.resolveImage(issue.ImagePath),
		})
	}
	return rows
}

// Page returns one page of the sorted catalog. Pages are 1-based; size is
// clamped to [1, 100]. The same inputs always yield the same page.
func (c *Catalog) Page(issues []models.Issue, page, size int) models.ReportPage {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	rows := c.List(issues)
	total := len(rows)
	totalPages := (total + size - 1) / size

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return models.ReportPage{
		Rows:        rows[start:end],
		TotalRows:   total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}

func (c *Catalog) resolveImage(rawPath string) string {
	if rawPath == "" || c.resolver == nil {
		return rawPath
	}
	return c.resolver.Resolve(rawPath)
}
