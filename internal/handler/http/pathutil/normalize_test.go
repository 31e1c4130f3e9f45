package pathutil

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/news", "/api/news"},
		{"/api/news?force=true", "/api/news"},
		{"/api/news/refresh", "/api/news/refresh"},
		{"/api/news/generate", "/api/news/generate"},
		{"/api/news/sources", "/api/news/sources"},
		{"/api/news/sources/", "/api/news/sources"},
		{"/api/news/2026-03-01", "/api/news/:date"},
		{"/api/news/2026-03-01/", "/api/news/:date"},
		{"/api/news/sources/L1", "/api/news/sources/:id"},
		{"/api/news/sources/0f8fad5b-d9cb-469f-a165-70867728950e", "/api/news/sources/:id"},
		{"/api/audio/inworld-1767225600000.mp3", "/api/audio/:file"},
		{"/api/audio/elevenlabs-1767225600000-1.mp3?t=1", "/api/audio/:file"},
		{"/health", "/health"},
		{"/metrics", "/metrics"},
		{"/", "/"},
		{"/api/audio/a/b", "/api/audio/a/b"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := NormalizePath(tt.path); got != tt.want {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestNormalizePath_BoundedCardinality(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 500; i++ {
		seen[NormalizePath("/api/audio/inworld-"+string(rune('a'+i%26))+".mp3")] = struct{}{}
		seen[NormalizePath("/api/news/2026-01-"+string(rune('0'+i%3))+string(rune('0'+i%10)))] = struct{}{}
	}
	if len(seen) != 2 {
		t.Errorf("want 2 labels, got %d: %v", len(seen), seen)
	}
}
