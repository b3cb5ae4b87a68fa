// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"errors"
	"fmt"

	"github.com/pdiddy/example-docs/internal/annotation"
	"github.com/pdiddy/example-docs/internal/fetch"
	"github.com/pdiddy/example-docs/internal/format"
	"github.com/pdiddy/example-docs/internal/render"
)

// ErrLocalRead marks a local example file that could not be read or was empty.
var ErrLocalRead = errors.New("local example unreadable")

// Kind classifies a per-file problem. None of them stop the run.
type Kind int

const (
	KindUnknown Kind = iota
	MissingAnnotation
	MalformedAnnotation
	RemoteUnavailable
	FormatterUnavailable
	LocalReadFailure
	OutputWriteFailure
)

var kindNames = map[Kind]string{
	KindUnknown:          "unknown",
	MissingAnnotation:    "missing_annotation",
	MalformedAnnotation:  "malformed_annotation",
	RemoteUnavailable:    "remote_unavailable",
	FormatterUnavailable: "formatter_unavailable",
	LocalReadFailure:     "local_read_failure",
	OutputWriteFailure:   "output_write_failure",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Kinds lists every known kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		MissingAnnotation,
		MalformedAnnotation,
		RemoteUnavailable,
		FormatterUnavailable,
		LocalReadFailure,
		OutputWriteFailure,
	}
}

// Classify maps an error to its Kind by the sentinel it wraps.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, annotation.ErrMissingAnnotation):
		return MissingAnnotation
	case errors.Is(err, annotation.ErrMalformedAnnotation):
		return MalformedAnnotation
	case errors.Is(err, fetch.ErrRemoteUnavailable):
		return RemoteUnavailable
	case errors.Is(err, format.ErrFormatterUnavailable):
		return FormatterUnavailable
	case errors.Is(err, ErrLocalRead):
		return LocalReadFailure
	case errors.Is(err, render.ErrOutputWrite):
		return OutputWriteFailure
	default:
		return KindUnknown
	}
}

// Warning is one non-fatal problem reported during a run.
type Warning struct {
	Kind     Kind
	Category string
	File     string
	Err      error
}

func (w Warning) String() string {
	if w.File == "" {
		return fmt.Sprintf("%s: %s: %v", w.Category, w.Kind, w.Err)
	}
	return fmt.Sprintf("%s: %s: %s: %v", w.Category, w.File, w.Kind, w.Err)
}
