package util

import "unicode/utf8"

const ellipsis = "…"

// TruncateChars shortens s to at most limit runes, ellipsis included.
func TruncateChars(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + ellipsis
}
