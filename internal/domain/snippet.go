// Package domain contains domain models and input validation for the application.
package domain

import (
	"time"
)

// Field bounds, counted in Unicode code points.
const (
	MaxTextLength    = 50000
	MaxSummaryLength = 500
)

// TimeFormat is the wire format for timestamps: UTC ISO-8601 with milliseconds.
const TimeFormat = "2006-01-02T15:04:05.000Z"

// Snippet pairs submitted text with its generated summary.
type Snippet struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SnippetResponseDTO represents the response for a single snippet.
type SnippetResponseDTO struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Summary   string `json:"summary"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// NewSnippetResponse renders a Snippet for the wire.
func NewSnippetResponse(s Snippet) SnippetResponseDTO {
	return SnippetResponseDTO{
		ID:        s.ID,
		Text:      s.Text,
		Summary:   s.Summary,
		CreatedAt: s.CreatedAt.UTC().Format(TimeFormat),
		UpdatedAt: s.UpdatedAt.UTC().Format(TimeFormat),
	}
}

// HealthResponseDTO is the body of GET /health.
type HealthResponseDTO struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Equal reports whether two snippets hold the same values, comparing timestamps as instants.
func (s Snippet) Equal(o Snippet) bool {
	return s.ID == o.ID &&
		s.Text == o.Text &&
		s.Summary == o.Summary &&
		s.CreatedAt.Equal(o.CreatedAt) &&
		s.UpdatedAt.Equal(o.UpdatedAt)
}
