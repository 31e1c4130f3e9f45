// Package storage persists briefings, narration audio and the editable source list on local disk.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"daily-briefing/internal/domain/entity"
)

// FileStore keeps one indented JSON document per date under <dataDir>/briefings.
type FileStore struct {
	dir string
}

// NewFileStore creates the briefings directory if it does not exist.
func NewFileStore(dataDir string) (*FileStore, error) {
	dir := filepath.Join(dataDir, "briefings")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create briefings dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(date string) string {
	return filepath.Join(s.dir, date+".json")
}

// Get returns entity.ErrNotFound when no file exists for date.
func (s *FileStore) Get(_ context.Context, date string) (*entity.DailyBriefing, error) {
	if err := entity.ValidateDate(date); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(date))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read briefing %s: %w", date, err)
	}
	var b entity.DailyBriefing
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode briefing %s: %w", date, err)
	}
	return &b, nil
}

// Put replaces the file for b.Date. Readers never observe a partial write.
func (s *FileStore) Put(_ context.Context, b *entity.DailyBriefing) error {
	if b == nil {
		return fmt.Errorf("%w: nil briefing", entity.ErrInvalidInput)
	}
	if err := entity.ValidateDate(b.Date); err != nil {
		return err
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encode briefing %s: %w", b.Date, err)
	}
	return writeFileAtomic(s.path(b.Date), data)
}

// writeFileAtomic writes to a temp file in the same directory and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
