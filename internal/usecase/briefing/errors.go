// Package briefing implements the daily briefing pipeline: feeds are aggregated,
// ranked by category, summarized by a text generation provider, narrated by a
// TTS provider and persisted once per calendar day.
package briefing

import (
	"errors"

	"daily-briefing/internal/domain/entity"
)

// Sentinel errors for briefing use case operations.
var (
	// ErrNotConfigured indicates that no text generation provider has credentials.
	// Callers should prompt for setup rather than retry.
	ErrNotConfigured = errors.New("news service not configured")

	// ErrPersistenceFailed indicates the generated briefing could not be stored.
	// The briefing returned with it is valid but has not been cached.
	ErrPersistenceFailed = errors.New("failed to persist briefing")

	// ErrBriefingNotFound is returned by a Store when no briefing exists for a date.
	ErrBriefingNotFound = entity.ErrNotFound
)
