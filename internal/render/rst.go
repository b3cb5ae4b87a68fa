// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/example-docs/pkg/types"
)

// RST renders reStructuredText for Sphinx.
type RST struct{}

// Ext implements Renderer.
func (RST) Ext() string { return ".rst" }

// RenderComparisons implements Renderer.
func (RST) RenderComparisons(w io.Writer, doc ComparisonDocument) error {
	var b strings.Builder
	lang := language(doc.Language)

	title := fmt.Sprintf("%s vs %s", doc.ProjectName, doc.LibraryName)
	rstHeading(&b, title, '=', 1)
	b.WriteString(comparisonIntro(doc) + "\n\n")
	rstContents(&b)

	b.WriteString("Examples\n--------\n\n|\n\n")

	for _, e := range doc.Examples {
		if !ComparisonRenderable(e) {
			continue
		}
		rstHeading(&b, comparisonHeading(e), '~', 1)

		fmt.Fprintf(&b, "**%s Code**\n\n", doc.ProjectName)
		rstCodeBlock(&b, lang, e.ProjectCode)
		b.WriteString("\n")

		fmt.Fprintf(&b, "**%s Code**\n\n", doc.LibraryName)
		if e.Status == types.StatusComplete {
			if link := browseLink(doc, e); link != "" {
				fmt.Fprintf(&b, "Link: %s\n\n", link)
			}
			rstCodeBlock(&b, lang, e.ComparisonCode)
		} else {
			rstCodeBlock(&b, lang, todoBody)
		}
		b.WriteString("\n")
	}
	return flush(w, &b)
}

// RenderExamples implements Renderer.
func (RST) RenderExamples(w io.Writer, doc ExamplesDocument) error {
	var b strings.Builder
	lang := language(doc.Language)

	rstHeading(&b, "Examples", '=', 0)
	b.WriteString(examplesIntro(doc.ProjectName) + "\n\n")
	rstContents(&b)

	if len(doc.Standalone) > 0 {
		rstHeading(&b, "Getting Started Examples", '-', 0)
		b.WriteString(gettingStartedIntro(doc.ProjectName) + "\n\n")

		for _, e := range doc.Standalone {
			if e.Code == "" {
				continue
			}
			rstHeading(&b, e.Title, '~', 0)
			rstCodeBlock(&b, lang, e.Code)
			b.WriteString("\n")
		}
	}

	if len(doc.RealWorld) > 0 {
		rstHeading(&b, "Real World Examples", '-', 0)
		b.WriteString(realWorldIntro(doc.ProjectName) + "\n\n")

		for _, e := range doc.RealWorld {
			if !RealWorldRenderable(e) {
				continue
			}
			rstHeading(&b, realWorldHeading(e), '~', 0)
			if e.SourceURL != "" {
				fmt.Fprintf(&b, "**Source:** `Original Code <%s>`_\n\n", e.SourceURL)
			}

			b.WriteString("**Before (Original)**\n\n")
			rstCodeBlock(&b, lang, e.OriginalCode)
			b.WriteString("\n")

			fmt.Fprintf(&b, "**After (%s)**\n\n", doc.ProjectName)
			rstCodeBlock(&b, lang, e.DisplayedCode)
			b.WriteString("\n")
		}
	}
	return flush(w, &b)
}

// rstHeading writes text underlined with ch. The underline is extra runes
// longer than the text.
func rstHeading(b *strings.Builder, text string, ch rune, extra int) {
	b.WriteString(text + "\n")
	b.WriteString(strings.Repeat(string(ch), utf8.RuneCountInString(text)+extra) + "\n\n")
}

func rstContents(b *strings.Builder) {
	b.WriteString(".. contents:: Examples\n")
	b.WriteString("   :local:\n")
	b.WriteString("   :depth: 1\n\n")
}

// rstCodeBlock writes a code-block directive with code indented by four
// spaces, one output line per input line.
func rstCodeBlock(b *strings.Builder, lang, code string) {
	fmt.Fprintf(b, ".. code-block:: %s\n\n", lang)
	for _, line := range codeLines(code) {
		b.WriteString("    " + line + "\n")
	}
}
