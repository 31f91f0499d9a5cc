package report

import (
	"strings"
	"time"
)

// CreateReportInput is the canonical submission shape: JSON with nested
// location and base64 image payloads. The multipart variant of the old
// API is not supported, and isImportant is derived-only.
type CreateReportInput struct {
	DisasterType string
	Description  string
	Importance   int
	Latitude     float64
	Longitude    float64
	Images       []string // base64, in submission order
	SubmittedAt  time.Time
}

// ValidationError names every violated field, not just the first.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}

type LocationDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ImageDTO is either inline data or an explicit unavailable marker for
// file-backed images whose content is gone.
type ImageDTO struct {
	Data        string `json:"data,omitempty"`
	Unavailable bool   `json:"unavailable,omitempty"`
}

type ReportDTO struct {
	ID           uint        `json:"id"`
	DisasterType string      `json:"disaster_type"`
	Description  string      `json:"description"`
	Importance   int         `json:"importance"`
	IsImportant  bool        `json:"is_important"`
	Location     LocationDTO `json:"location"`
	Images       []ImageDTO  `json:"images"`
	Status       int         `json:"status"`
	Comment      *string     `json:"comment"`
	CreatedAt    time.Time   `json:"created_at"`
}

// ReportLocationDTO is the map-pin projection.
type ReportLocationDTO struct {
	ReportID  uint    `json:"report_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
