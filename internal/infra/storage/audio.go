package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"daily-briefing/internal/domain/entity"
)

// ErrInvalidAudioName is returned for names that could escape the audio directory.
var ErrInvalidAudioName = errors.New("invalid audio file name")

// AudioDir stores narration files under <dataDir>/audio.
type AudioDir struct {
	dir string
	now func() time.Time
}

func NewAudioDir(dataDir string) (*AudioDir, error) {
	dir := filepath.Join(dataDir, "audio")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio dir: %w", err)
	}
	return &AudioDir{dir: dir, now: time.Now}, nil
}

// Save writes data as <prefix>-<unix millis>.<ext>. A numeric suffix is added
// when two files land in the same millisecond.
func (a *AudioDir) Save(prefix, ext string, data []byte) (string, error) {
	base := fmt.Sprintf("%s-%d", prefix, a.now().UnixMilli())
	if err := validAudioName(base + "." + ext); err != nil {
		return "", err
	}
	for i := 0; i < 100; i++ {
		name := base + "." + ext
		if i > 0 {
			name = fmt.Sprintf("%s-%d.%s", base, i, ext)
		}
		f, err := os.OpenFile(filepath.Join(a.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create audio file: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
			return "", fmt.Errorf("write audio file: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close audio file: %w", err)
		}
		return name, nil
	}
	return "", fmt.Errorf("create audio file: too many collisions for %s", base)
}

// Open returns entity.ErrNotFound for unknown or unsafe names.
func (a *AudioDir) Open(name string) (io.ReadSeekCloser, time.Time, error) {
	if err := validAudioName(name); err != nil {
		return nil, time.Time{}, entity.ErrNotFound
	}
	f, err := os.Open(filepath.Join(a.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, time.Time{}, entity.ErrNotFound
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("open audio file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, time.Time{}, fmt.Errorf("stat audio file: %w", err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, time.Time{}, entity.ErrNotFound
	}
	return f, info.ModTime(), nil
}

func validAudioName(name string) error {
	switch {
	case name == "", strings.HasPrefix(name, "."),
		strings.ContainsAny(name, `/\`+"\x00"),
		strings.Contains(name, ".."):
		return fmt.Errorf("%w: %q", ErrInvalidAudioName, name)
	}
	return nil
}
