package util

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestTruncateChars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{name: "empty", input: "", limit: 30, expected: ""},
		{name: "short", input: "Team sync", limit: 30, expected: "Team sync"},
		{name: "exact", input: strings.Repeat("a", 30), limit: 30, expected: strings.Repeat("a", 30)},
		{name: "long", input: strings.Repeat("a", 31), limit: 30, expected: strings.Repeat("a", 29) + "…"},
		{name: "runes", input: "ééééé", limit: 3, expected: "éé…"},
		{name: "zero limit", input: "abc", limit: 0, expected: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			result := TruncateChars(tt.input, tt.limit)
			require.Equal(t, tt.expected, result)
			require.LessOrEqual(t, utf8.RuneCountInString(result), tt.limit)
		})
	}
}
