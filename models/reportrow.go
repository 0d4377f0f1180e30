package models

// ReportRow is a tabular projection of an Issue for list display. It carries
// the same display payload as a Marker plus the resolved absolute image URL.
type ReportRow struct {
	ID          string      `json:"id"`
	Category    string      `json:"category"`
	Status      IssueStatus `json:"status"`
	Reporter    string      `json:"reporter"`
	Date        string      `json:"date"`
	Coordinates string      `json:"coordinates"`
	MapLink     string      `json:"mapLink"`
	ImageURL    string      `json:"imageUrl"`
}

// ReportPage is one page of the catalog with deterministic page semantics
type ReportPage struct {
	Rows        []ReportRow `json:"rows"`
	TotalRows   int         `json:"totalRows"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
}
