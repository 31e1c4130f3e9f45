package source

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"daily-briefing/internal/domain/entity"
	"daily-briefing/internal/repository"
)

// CreateInput represents the input parameters for creating a new source.
// A nil Enabled creates an enabled source.
type CreateInput struct {
	Name     string
	URL      string
	Type     entity.SourceType
	Category string
	Enabled  *bool
}

// UpdateInput represents the input parameters for updating an existing source.
// Empty string fields and nil Enabled field will not be updated.
type UpdateInput struct {
	ID       string
	Name     string
	URL      string
	Type     entity.SourceType
	Category string
	Enabled  *bool
}

// Service provides source management use cases.
// It also satisfies the briefing pipeline's source provider.
type Service struct {
	Repo repository.SourceRepository
}

// ReadOnly reports whether edits are rejected.
func (s *Service) ReadOnly() bool {
	return s.Repo.ReadOnly()
}

// List retrieves all sources, enabled or not.
func (s *Service) List(ctx context.Context) ([]entity.Source, error) {
	sources, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	return sources, nil
}

// Create validates in and stores a new source. The repository assigns the ID.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Source, error) {
	if s.Repo.ReadOnly() {
		return nil, ErrReadOnly
	}

	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}
	src := &entity.Source{
		Name:     strings.TrimSpace(in.Name),
		URL:      strings.TrimSpace(in.URL),
		Type:     in.Type,
		Category: strings.TrimSpace(in.Category),
		Enabled:  enabled,
	}
	if err := src.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, src); err != nil {
		return nil, fmt.Errorf("create source: %w", err)
	}
	return src, nil
}

// Update modifies an existing source with the provided input.
// Returns ErrSourceNotFound if the source does not exist.
func (s *Service) Update(ctx context.Context, in UpdateInput) (*entity.Source, error) {
	if s.Repo.ReadOnly() {
		return nil, ErrReadOnly
	}
	if strings.TrimSpace(in.ID) == "" {
		return nil, &entity.ValidationError{Field: "id", Message: "is required"}
	}

	src, err := s.Repo.Get(ctx, in.ID)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, ErrSourceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get source: %w", err)
	}

	if in.Name != "" {
		src.Name = strings.TrimSpace(in.Name)
	}
	if in.URL != "" {
		src.URL = strings.TrimSpace(in.URL)
	}
	if in.Type != "" {
		src.Type = in.Type
	}
	if in.Category != "" {
		src.Category = strings.TrimSpace(in.Category)
	}
	if in.Enabled != nil {
		src.Enabled = *in.Enabled
	}
	// URL形式検証を含む
	if err := src.Validate(); err != nil {
		return nil, err
	}

	if err := s.Repo.Update(ctx, src); err != nil {
		return nil, fmt.Errorf("update source: %w", err)
	}
	return src, nil
}

// Delete removes a source by its ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.Repo.ReadOnly() {
		return ErrReadOnly
	}
	if strings.TrimSpace(id) == "" {
		return &entity.ValidationError{Field: "id", Message: "is required"}
	}

	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return ErrSourceNotFound
	}
	if err != nil {
		return fmt.Errorf("delete source: %w", err)
	}
	return nil
}
