// Package text provides rune-aware helpers shared by the feed parser,
// the prompt builder and the TTS providers.
package text

import "strings"

// CountRunes counts the number of Unicode characters (runes) in the given text.
//
//	CountRunes("hello")     // 5
//	CountRunes("こんにちは") // 5
func CountRunes(text string) int {
	return len([]rune(text))
}

// Truncate returns at most limit runes of s. It never splits a multi-byte character.
// A non-positive limit yields "".
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

// CollapseSpace replaces every run of whitespace with a single space and trims the ends.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
