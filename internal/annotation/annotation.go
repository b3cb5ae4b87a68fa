// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package annotation parses the source-reference comments embedded in
// real-world "after" examples:
//
//	// https://github.com/{owner}/{repo}/blob/{commit}/{path}#L{start_line}
//	// to {end_line}
//
// The second line is optional.
package annotation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/example-docs/pkg/types"
)

const (
	commentPrefix = "//"
	hostMarker    = "github.com"
	hostPrefix    = "https://github.com/"
	linePrefix    = "#L"
	blobSegment   = "blob"
	rangeToken    = "to"
)

var (
	// ErrMissingAnnotation marks a file that must carry an annotation but
	// has none. Parse itself reports a missing annotation as (nil, nil).
	ErrMissingAnnotation = errors.New("no source reference annotation")

	// ErrMalformedAnnotation marks a file whose reference comments could
	// not be decomposed into a descriptor.
	ErrMalformedAnnotation = errors.New("malformed source reference annotation")
)

// IsMarker reports whether a comment body (the text after "//") names a
// remote reference.
func IsMarker(body string) bool {
	return strings.Contains(body, hostMarker)
}

// IsRangeLine reports whether a comment body starts with the "to"
// continuation token.
func IsRangeLine(body string) bool {
	fields := strings.Fields(body)
	return len(fields) > 0 && strings.EqualFold(fields[0], rangeToken)
}

// commentBody returns the text after "//" for a trimmed single-line comment.
func commentBody(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, commentPrefix) {
		return "", false
	}
	return strings.TrimSpace(trimmed[len(commentPrefix):]), true
}

// Parse scans code for the first reference annotation. It returns (nil, nil)
// when the code carries no marker comment at all, which is normal for
// standalone examples. When marker comments exist but none decomposes into
// a descriptor, the error wraps ErrMalformedAnnotation.
func Parse(code string) (*types.ReferenceDescriptor, error) {
	lines := strings.Split(code, "\n")

	var firstErr error
	for i, line := range lines {
		body, ok := commentBody(line)
		if !ok || !IsMarker(body) {
			continue
		}

		endLine := 0
		if i+1 < len(lines) {
			endLine = parseRangeLine(lines[i+1])
		}

		d, err := parseURL(body, endLine)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("line %d: %w", i+1, err)
			}
			continue
		}
		return d, nil
	}
	return nil, firstErr
}

// parseRangeLine returns the end line from a "// to N" comment, or 0.
func parseRangeLine(line string) int {
	body, ok := commentBody(line)
	if !ok {
		return 0
	}
	parts := strings.Fields(body)
	if len(parts) < 2 || !strings.EqualFold(parts[0], rangeToken) {
		return 0
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	return n
}

func parseURL(url string, endLine int) (*types.ReferenceDescriptor, error) {
	base, lineNum, found := strings.Cut(url, linePrefix)
	if !found {
		return nil, fmt.Errorf("%w: %q has no %s suffix", ErrMalformedAnnotation, url, linePrefix)
	}
	startLine, err := strconv.Atoi(lineNum)
	if err != nil {
		return nil, fmt.Errorf("%w: start line %q: %v", ErrMalformedAnnotation, lineNum, err)
	}
	if startLine < 1 {
		return nil, fmt.Errorf("%w: start line %d", ErrMalformedAnnotation, startLine)
	}
	if endLine != 0 && endLine < startLine {
		return nil, fmt.Errorf("%w: end line %d before start line %d", ErrMalformedAnnotation, endLine, startLine)
	}

	_, rest, found := strings.Cut(base, hostMarker+"/")
	if !found {
		return nil, fmt.Errorf("%w: %q is not a repository URL", ErrMalformedAnnotation, base)
	}
	parts := strings.Split(rest, "/")
	if len(parts) < 4 || parts[2] != blobSegment {
		return nil, fmt.Errorf("%w: %q is not an owner/repo/blob/commit path", ErrMalformedAnnotation, rest)
	}

	return &types.ReferenceDescriptor{
		URL:       url,
		Owner:     parts[0],
		Repo:      parts[1],
		Commit:    parts[3],
		Path:      strings.Join(parts[4:], "/"),
		StartLine: startLine,
		EndLine:   endLine,
	}, nil
}

// URL builds the annotation URL for the given coordinates.
func URL(owner, repo, commit, path string, startLine int) string {
	return fmt.Sprintf("%s%s/%s/%s/%s/%s%s%d", hostPrefix, owner, repo, blobSegment, commit, path, linePrefix, startLine)
}

// Format renders a descriptor as the comment lines Parse accepts.
func Format(d types.ReferenceDescriptor) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", commentPrefix, URL(d.Owner, d.Repo, d.Commit, d.Path, d.StartLine))
	if d.HasEndLine() {
		fmt.Fprintf(&b, "%s %s %d\n", commentPrefix, rangeToken, d.EndLine)
	}
	return b.String()
}
