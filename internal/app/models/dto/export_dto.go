package dto

import "time"

// ExportQuery carries the raw query parameters of GET /reports/export.
// Filter values equal to "all" are treated as absent.
type ExportQuery struct {
	Type        string `form:"type"`
	Format      string `form:"format"`
	Class       string `form:"class"`
	Status      string `form:"status"`
	StaffType   string `form:"staffType"`
	Nationality string `form:"nationality"`
	DateFrom    string `form:"dateFrom"`
	DateTo      string `form:"dateTo"`
}

// ExportMetadata describes a JSON export alongside its rows.
type ExportMetadata struct {
	Total       int               `json:"total"`
	Type        string            `json:"type"`
	Filters     map[string]string `json:"filters"`
	GeneratedAt time.Time         `json:"generatedAt"`
	ExportedBy  string            `json:"exportedBy"`
}

// ExportResponse is the JSON export envelope.
type ExportResponse struct {
	Data     interface{}    `json:"data"`
	Metadata ExportMetadata `json:"metadata"`
}
