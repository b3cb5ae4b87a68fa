// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize turns raw example sources into comparable text: line
// slicing, header stripping for display, and comment removal for counting.
// Everything here is a pure function over strings.
package normalize

import "strings"

// ExtractLines returns lines start..end (1-indexed, inclusive) of code
// joined by newlines. An end of 0 selects the single line at start. The
// upper bound is clamped to the text; ok is false when start is outside it.
func ExtractLines(code string, start, end int) (string, bool) {
	lines := strings.Split(code, "\n")
	startIdx := start - 1
	if startIdx < 0 || startIdx >= len(lines) {
		return "", false
	}
	if end == 0 {
		return lines[startIdx], true
	}
	endIdx := min(end, len(lines))
	if endIdx < startIdx {
		endIdx = startIdx
	}
	return strings.Join(lines[startIdx:endIdx], "\n"), true
}

// SplitLines splits text into display lines. A trailing newline does not
// produce a final empty line and "\r\n" endings are treated as "\n".
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
