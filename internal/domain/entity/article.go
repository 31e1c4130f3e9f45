package entity

import "strings"

// Enclosure is the media attachment of a feed item.
type Enclosure struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// IsAudio reports whether the enclosure MIME type is audio/*.
func (e *Enclosure) IsAudio() bool {
	return e != nil && strings.HasPrefix(strings.ToLower(e.Type), "audio")
}

// Article is one normalized feed item. PubDate is kept as the feed wrote it.
type Article struct {
	Title      string     `json:"title"`
	Link       string     `json:"link"`
	Snippet    string     `json:"snippet"`
	SourceName string     `json:"sourceName"`
	Category   string     `json:"category"`
	Enclosure  *Enclosure `json:"enclosure,omitempty"`
	PubDate    string     `json:"pubDate"`
}
