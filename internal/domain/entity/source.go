package entity

import "strings"

// SourceType distinguishes plain news feeds from podcast feeds.
type SourceType string

const (
	SourceTypeNews    SourceType = "news"
	SourceTypePodcast SourceType = "podcast"
)

// Source is a configured RSS feed. The briefing pipeline only ever reads it.
type Source struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	URL      string     `json:"url"`
	Type     SourceType `json:"type"`
	Category string     `json:"category"`
	Enabled  bool       `json:"enabled"`
}

// IsPodcast reports whether audio enclosures from this source become playlist tracks.
func (s *Source) IsPodcast() bool {
	return s.Type == SourceTypePodcast
}

// Validate validates the Source entity fields.
// An empty type is treated as news for compatibility with older source files.
func (s *Source) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if err := ValidateURL(s.URL); err != nil {
		return err
	}

	if s.Type == "" {
		s.Type = SourceTypeNews
	}
	if s.Type != SourceTypeNews && s.Type != SourceTypePodcast {
		return &ValidationError{Field: "type", Message: "type must be news or podcast"}
	}
	return nil
}

// EnabledSources returns the enabled subset, preserving order.
func EnabledSources(sources []Source) []Source {
	out := make([]Source, 0, len(sources))
	for _, s := range sources {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}
