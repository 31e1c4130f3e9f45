package briefing

import (
	"sort"
	"strings"

	"daily-briefing/internal/domain/entity"
)

// RankByCategory returns a copy of articles stably ordered by the position of
// their category in priorities. Unlisted categories sort last, keeping their
// relative order. Comparison ignores case and surrounding space.
func RankByCategory(articles []entity.Article, priorities []string) []entity.Article {
	index := make(map[string]int, len(priorities))
	for i, p := range priorities {
		key := normalizeCategory(p)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	rank := func(a entity.Article) int {
		if i, ok := index[normalizeCategory(a.Category)]; ok {
			return i
		}
		return len(priorities)
	}

	ranked := make([]entity.Article, len(articles))
	copy(ranked, articles)
	sort.SliceStable(ranked, func(i, j int) bool {
		return rank(ranked[i]) < rank(ranked[j])
	})
	return ranked
}

func normalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}
