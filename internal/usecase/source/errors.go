// Package source provides use cases for managing briefing feed sources.
// It validates edits and delegates persistence to a repository.SourceRepository.
package source

import (
	"errors"

	"daily-briefing/internal/repository"
)

// Sentinel errors for source use case operations.
var (
	// ErrSourceNotFound indicates that no source has the requested ID.
	ErrSourceNotFound = errors.New("source not found")

	// ErrReadOnly indicates that the configured source list cannot be edited,
	// as with the built-in list.
	ErrReadOnly = repository.ErrReadOnly
)
