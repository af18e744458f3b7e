package strings

import (
	"strings"
)

// MinTruncateLen is the smallest useful maxLen for the truncation helpers.
// Shorter limits leave no room for content plus an ellipsis.
const MinTruncateLen = 5

const ellipsis = "..."

// SingleLine collapses every run of whitespace, including newlines, into one
// space and trims the ends.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate shortens s to at most maxLen runes, replacing the tail with "...".
// The input is first reduced to a single line.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	runes := []rune(SingleLine(s))
	if len(runes) <= maxLen {
		return string(runes)
	}
	return string(runes[:maxLen-len(ellipsis)]) + ellipsis
}

// TruncateMiddle shortens s to at most maxLen runes by replacing the middle
// with "...". More of the start than of the end is kept, so names that share
// a prefix or a suffix stay distinguishable.
func TruncateMiddle(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	runes := []rune(SingleLine(s))
	if len(runes) <= maxLen {
		return string(runes)
	}

	available := maxLen - len(ellipsis)
	head := (available * 3) / 5
	tail := available - head
	return string(runes[:head]) + ellipsis + string(runes[len(runes)-tail:])
}
