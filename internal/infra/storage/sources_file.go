package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"daily-briefing/internal/domain/entity"
	"daily-briefing/internal/repository"
)

// SourcesFileName is the editable source list kept in the data directory.
const SourcesFileName = "news-sources.json"

// SourceFile is a repository.SourceRepository backed by news-sources.json.
// The file is seeded with DefaultSources the first time it is read.
type SourceFile struct {
	path   string
	logger *slog.Logger

	mu sync.Mutex
}

var _ repository.SourceRepository = (*SourceFile)(nil)

func NewSourceFile(dataDir string, logger *slog.Logger) (*SourceFile, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SourceFile{path: filepath.Join(dataDir, SourcesFileName), logger: logger}, nil
}

func (s *SourceFile) ReadOnly() bool { return false }

// List returns an empty list when the file cannot be parsed.
func (s *SourceFile) List(_ context.Context) ([]entity.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *SourceFile) Get(_ context.Context, id string) (*entity.Source, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sources, err := s.load()
	if err != nil {
		return nil, err
	}
	if i := indexOf(sources, id); i >= 0 {
		src := sources[i]
		return &src, nil
	}
	return nil, entity.ErrNotFound
}

func (s *SourceFile) Create(_ context.Context, src *entity.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sources, err := s.load()
	if err != nil {
		return err
	}
	if src.ID == "" {
		src.ID = uuid.NewString()
	}
	if indexOf(sources, src.ID) >= 0 {
		return fmt.Errorf("%w: duplicate id %q", entity.ErrInvalidInput, src.ID)
	}
	return s.save(append(sources, *src))
}

func (s *SourceFile) Update(_ context.Context, src *entity.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sources, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(sources, src.ID)
	if i < 0 {
		return entity.ErrNotFound
	}
	sources[i] = *src
	return s.save(sources)
}

func (s *SourceFile) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sources, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(sources, id)
	if i < 0 {
		return entity.ErrNotFound
	}
	return s.save(append(sources[:i], sources[i+1:]...))
}

// load must be called with mu held.
func (s *SourceFile) load() ([]entity.Source, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		seed := append([]entity.Source(nil), DefaultSources...)
		if err := s.save(seed); err != nil {
			return nil, err
		}
		s.logger.Info("seeded source list", slog.String("path", s.path), slog.Int("count", len(seed)))
		return seed, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", SourcesFileName, err)
	}

	var sources []entity.Source
	if err := json.Unmarshal(data, &sources); err != nil {
		s.logger.Warn("source list unreadable, treating as empty",
			slog.String("path", s.path),
			slog.Any("error", err))
		return []entity.Source{}, nil
	}
	if sources == nil {
		sources = []entity.Source{}
	}
	return sources, nil
}

func (s *SourceFile) save(sources []entity.Source) error {
	data, err := json.MarshalIndent(sources, "", "  ")
	if err != nil {
		return fmt.Errorf("encode sources: %w", err)
	}
	return writeFileAtomic(s.path, data)
}

func indexOf(sources []entity.Source, id string) int {
	for i := range sources {
		if sources[i].ID == id {
			return i
		}
	}
	return -1
}

// Builtin serves BuiltinSources. Every write returns repository.ErrReadOnly.
type Builtin struct{}

var _ repository.SourceRepository = Builtin{}

func (Builtin) ReadOnly() bool { return true }

func (Builtin) List(context.Context) ([]entity.Source, error) {
	return append([]entity.Source(nil), BuiltinSources...), nil
}

func (Builtin) Get(_ context.Context, id string) (*entity.Source, error) {
	if i := indexOf(BuiltinSources, id); i >= 0 {
		src := BuiltinSources[i]
		return &src, nil
	}
	return nil, entity.ErrNotFound
}

func (Builtin) Create(context.Context, *entity.Source) error { return repository.ErrReadOnly }
func (Builtin) Update(context.Context, *entity.Source) error { return repository.ErrReadOnly }
func (Builtin) Delete(context.Context, string) error         { return repository.ErrReadOnly }
