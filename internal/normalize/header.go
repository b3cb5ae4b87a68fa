// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"

	"github.com/pdiddy/example-docs/internal/annotation"
)

const (
	blockOpen   = "/*"
	blockClose  = "*/"
	lineComment = "//"
)

// headerState is the position of StripHeader within a source file.
type headerState int

const (
	stateBeforeCode headerState = iota
	stateInLicenseBlock
	stateInCode
)

func (s headerState) String() string {
	switch s {
	case stateBeforeCode:
		return "before_code"
	case stateInLicenseBlock:
		return "in_license_block"
	case stateInCode:
		return "in_code"
	default:
		return "unknown"
	}
}

// StripHeader removes the leading license block, reference annotation
// comments, and blank lines that precede the first line of code. From the
// first retained line on, every line is kept verbatim.
func StripHeader(code string) string {
	if code == "" {
		return code
	}

	var kept []string
	state := stateBeforeCode
	for _, line := range strings.Split(code, "\n") {
		var keep bool
		state, keep = stepHeader(state, line)
		if keep {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// stepHeader advances the header state machine by one line and reports
// whether the line is retained.
func stepHeader(state headerState, line string) (headerState, bool) {
	trimmed := strings.TrimSpace(line)

	switch state {
	case stateInCode:
		return stateInCode, true

	case stateInLicenseBlock:
		if strings.Contains(line, blockClose) {
			return stateBeforeCode, false
		}
		return stateInLicenseBlock, false
	}

	// stateBeforeCode
	switch {
	case strings.HasPrefix(trimmed, blockOpen):
		if strings.Contains(trimmed[len(blockOpen):], blockClose) {
			return stateBeforeCode, false
		}
		return stateInLicenseBlock, false
	case strings.HasPrefix(trimmed, lineComment):
		body := strings.TrimSpace(trimmed[len(lineComment):])
		if annotation.IsMarker(body) || annotation.IsRangeLine(body) {
			return stateBeforeCode, false
		}
	case trimmed == "":
		return stateBeforeCode, false
	}
	return stateInCode, true
}
