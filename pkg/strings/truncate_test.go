package strings

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSingleLine(t *testing.T) {
	assert.Equal(t, "Main Office", SingleLine("  Main\n\tOffice  "))
	assert.Equal(t, "", SingleLine(" \n "))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{name: "short string unchanged", input: "Corp", maxLen: 10, expected: "Corp"},
		{name: "exact length unchanged", input: "Guest", maxLen: 5, expected: "Guest"},
		{name: "long string truncated", input: "Warehouse Second Floor", maxLen: 12, expected: "Warehouse..."},
		{name: "newlines collapsed", input: "Office\nPrinter", maxLen: 20, expected: "Office Printer"},
		{name: "limit clamped", input: "abcdefgh", maxLen: 1, expected: "ab..."},
		{name: "unicode", input: "Büro Erdgeschoss", maxLen: 8, expected: "Büro ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.maxLen))
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{name: "short string unchanged", input: "Main Office", maxLen: 24, expected: "Main Office"},
		{name: "keeps start and end", input: "production-us-east-1-cluster", maxLen: 20, expected: "production...cluster"},
		{name: "limit clamped", input: "abcdefgh", maxLen: 0, expected: "a...h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateMiddle(tt.input, tt.maxLen)
			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, utf8.RuneCountInString(got), max(tt.maxLen, MinTruncateLen))
		})
	}
}
