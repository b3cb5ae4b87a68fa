// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render serializes harvested example records into documents. A
// Renderer knows one markup dialect; the package also handles writing the
// result to disk and exporting the raw records as a manifest.
//
// Records missing a required body are left out of the rendered document
// even though the harvester keeps them.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/example-docs/internal/normalize"
	"github.com/pdiddy/example-docs/pkg/types"
)

// ErrOutputWrite is matched by every error that comes from writing a
// document or manifest.
var ErrOutputWrite = errors.New("output write failed")

const (
	markComplete   = "✅"
	markIncomplete = "🟡"

	// todoBody replaces the library side of an incomplete comparison.
	todoBody = "// TODO"
)

// ComparisonDocument is the input for the library comparison page.
type ComparisonDocument struct {
	ProjectName string
	LibraryName string

	// Intro is appended to the opening sentence. Empty selects a generic line.
	Intro string

	// BrowseURL is the browsable remote example directory. When set, each
	// complete record links to BrowseURL/<ComparisonFilename><Extension>.
	BrowseURL string
	Extension string

	Language string
	Examples []types.ComparisonExample
}

// ExamplesDocument is the input for the standalone and real-world page.
type ExamplesDocument struct {
	ProjectName string
	Language    string
	Standalone  []types.StandaloneExample
	RealWorld   []types.RealWorldExample
}

// Renderer writes documents in one markup dialect.
type Renderer interface {
	RenderComparisons(w io.Writer, doc ComparisonDocument) error
	RenderExamples(w io.Writer, doc ExamplesDocument) error

	// Ext returns the file extension for the dialect, including the dot.
	Ext() string
}

// New returns the renderer for format.
func New(format types.OutputFormat) (Renderer, error) {
	switch format {
	case types.OutputRST, "":
		return RST{}, nil
	case types.OutputMarkdown:
		return Markdown{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// ComparisonRenderable reports whether a comparison has both bodies.
func ComparisonRenderable(e types.ComparisonExample) bool {
	return e.ProjectCode != "" && e.ComparisonCode != ""
}

// RealWorldRenderable reports whether a real-world record has both bodies.
func RealWorldRenderable(e types.RealWorldExample) bool {
	return e.OriginalCode != "" && e.DisplayedCode != ""
}

// comparisonHeading is the section title of a comparison: a status marker,
// the title, and the ratio when the record is complete.
func comparisonHeading(e types.ComparisonExample) string {
	mark := markIncomplete
	if e.Status == types.StatusComplete {
		mark = markComplete
	}
	heading := mark + " " + e.Title
	if e.HasRatio() && e.Status == types.StatusComplete {
		heading += fmt.Sprintf(" (%.1fx less code)", e.CodeRatio)
	}
	return heading
}

func realWorldHeading(e types.RealWorldExample) string {
	if e.HasRatio() {
		return fmt.Sprintf("%s (%.1fx code reduction)", e.Title, e.CodeRatio)
	}
	return e.Title
}

func comparisonIntro(doc ComparisonDocument) string {
	s := fmt.Sprintf("This page provides comparisons between %s code and equivalent %s code for common operations. ",
		doc.ProjectName, doc.LibraryName)
	if doc.Intro != "" {
		return s + doc.Intro
	}
	return s + fmt.Sprintf("This comparison demonstrates how %s's API compares to %s's API.",
		doc.ProjectName, doc.LibraryName)
}

func browseLink(doc ComparisonDocument, e types.ComparisonExample) string {
	if doc.BrowseURL == "" {
		return ""
	}
	return strings.TrimSuffix(doc.BrowseURL, "/") + "/" + e.ComparisonFilename + doc.Extension
}

func examplesIntro(project string) string {
	return fmt.Sprintf("This page provides standalone %s examples demonstrating common operations and patterns, "+
		"as well as real world examples showing before and after code transformations.", project)
}

func gettingStartedIntro(project string) string {
	return fmt.Sprintf("These examples demonstrate basic %s functionality and common patterns.", project)
}

func realWorldIntro(project string) string {
	return fmt.Sprintf("These examples show real world code transformations using %s. "+
		"Each example demonstrates the before and after code, highlighting how %s simplifies complex operations.",
		project, project)
}

func language(lang string) string {
	if lang == "" {
		return "cpp"
	}
	return lang
}

// codeLines splits a body into display lines.
func codeLines(code string) []string {
	return normalize.SplitLines(code)
}

// flush writes the built document to w.
func flush(w io.Writer, b *strings.Builder) error {
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputWrite, err)
	}
	return nil
}
