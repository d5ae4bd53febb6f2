// ABOUTME: Response shapes for the JSON API
// ABOUTME: Source listings never include store credentials

package api

import (
	"time"

	"github.com/harper/matchday/internal/models"
)

// SourceInfo describes one active source and its cache state.
type SourceInfo struct {
	Label            string             `json:"label"`
	Kind             models.SourceKind  `json:"kind"`
	Content          models.ContentKind `json:"content"`
	Endpoint         string             `json:"endpoint"`
	FreshnessSeconds int                `json:"freshness_seconds"`
	TimeoutMs        int                `json:"timeout_ms"`
	CachedAt         *time.Time         `json:"cached_at,omitempty"`
	Fresh            bool               `json:"fresh"`
}

// ErrorResponse is returned for 4xx and 5xx responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
