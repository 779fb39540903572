package normalize

import (
	"strings"
	"unicode/utf8"
)

// CollapseWhitespace trims the input and replaces every internal whitespace run
// with a single space.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitNames splits a comma-separated client list and trims each name.
// An empty input yields a single empty name.
func SplitNames(s string) []string {
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// SplitAligned splits a comma-separated per-client value and fits it to n
// entries: blank input has no entries, short lists are padded with "" and long
// lists are truncated.
func SplitAligned(s string, n int) []string {
	out := make([]string, n)
	if strings.TrimSpace(s) == "" {
		return out
	}
	for i, p := range strings.Split(s, ",") {
		if i >= n {
			break
		}
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// Abbreviate returns the uppercased first character of each whitespace-separated word.
func Abbreviate(s string) string {
	var b strings.Builder
	for _, word := range strings.Fields(s) {
		_, size := utf8.DecodeRuneInString(word)
		b.WriteString(strings.ToUpper(word[:size]))
	}
	return b.String()
}

// IsBlank reports whether s is empty after trimming.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
