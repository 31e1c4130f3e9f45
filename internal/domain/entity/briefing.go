package entity

import "time"

// TrackType identifies what an AudioTrack carries.
type TrackType string

const (
	TrackTypeSummary TrackType = "summary"
	TrackTypePodcast TrackType = "podcast"
)

// Sentinel summary texts stored in place of a digest.
const (
	SummaryNotGenerated = "No summary generated."
	SummaryError        = "Error generating summary."
	SummaryFailed       = "Summary failed."
)

// Default track titles.
const (
	SummaryTrackTitle   = "Daily Summary"
	PodcastEpisodeTitle = "Podcast Episode"
)

// AudioTrack is one entry of the briefing playlist.
type AudioTrack struct {
	Title string    `json:"title"`
	URL   string    `json:"url"`
	Type  TrackType `json:"type"`
}

// DailyBriefing is the persisted output of one generation run.
// At most one exists per Date.
type DailyBriefing struct {
	Date          string       `json:"date"`
	GeneratedAt   time.Time    `json:"generatedAt"`
	SummaryText   string       `json:"summaryText"`
	AudioPlaylist []AudioTrack `json:"audioPlaylist"`
	Articles      []Article    `json:"articles"`
}

// HasNarration reports whether the playlist starts with a summary track.
func (b *DailyBriefing) HasNarration() bool {
	return len(b.AudioPlaylist) > 0 && b.AudioPlaylist[0].Type == TrackTypeSummary
}

// VoicePersonality pairs a TTS voice with a narrator persona.
type VoicePersonality struct {
	VoiceID     string `json:"voiceId" yaml:"voiceId"`
	Name        string `json:"name" yaml:"name"`
	Personality string `json:"personality" yaml:"personality"`
}
