// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	blockCommentPattern = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentPattern  = regexp.MustCompile(`(?m)//.*$`)
)

// StripComments removes /* */ spans (which may cross lines) and then //
// suffixes. Block removal repeats until nothing changes, so the result is a
// fixed point: StripComments(StripComments(s)) == StripComments(s).
func StripComments(code string) string {
	for {
		next := lineCommentPattern.ReplaceAllString(blockCommentPattern.ReplaceAllString(code, ""), "")
		if next == code {
			return code
		}
		code = next
	}
}

// CountCodeLines counts the lines that are non-blank once comments are
// stripped. It measures size only; the display text keeps its comments.
func CountCodeLines(code string) int {
	if code == "" {
		return 0
	}
	n := 0
	for _, line := range strings.Split(StripComments(code), "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

// Ratio returns numerator/denominator rounded to one decimal place. The
// rounding is applied to the exact binary quotient, so 23/20 (stored just
// below 1.15) gives 1.1. ok is false when either count is zero.
func Ratio(numerator, denominator int) (float64, bool) {
	if numerator <= 0 || denominator <= 0 {
		return 0, false
	}
	r := float64(numerator) / float64(denominator)
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(r, 'f', 1, 64), 64)
	if err != nil {
		return 0, false
	}
	return rounded, true
}
