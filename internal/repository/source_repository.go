// Package repository declares the persistence contracts for configured feed sources.
package repository

import (
	"context"
	"errors"

	"daily-briefing/internal/domain/entity"
)

// ErrReadOnly is returned by repositories whose source list cannot be edited.
var ErrReadOnly = errors.New("source list is read-only")

type SourceRepository interface {
	// Get returns entity.ErrNotFound when no source has the id.
	Get(ctx context.Context, id string) (*entity.Source, error)
	List(ctx context.Context) ([]entity.Source, error)
	// Create assigns an ID when source.ID is empty.
	Create(ctx context.Context, source *entity.Source) error
	Update(ctx context.Context, source *entity.Source) error
	Delete(ctx context.Context, id string) error
	ReadOnly() bool
}
