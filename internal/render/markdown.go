// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/example-docs/pkg/types"
)

// Markdown renders GitHub-flavored Markdown. It mirrors the RST layout with
// headings in place of underlines and fenced blocks in place of directives.
type Markdown struct{}

// Ext implements Renderer.
func (Markdown) Ext() string { return ".md" }

// RenderComparisons implements Renderer.
func (Markdown) RenderComparisons(w io.Writer, doc ComparisonDocument) error {
	var b strings.Builder
	lang := language(doc.Language)

	fmt.Fprintf(&b, "# %s vs %s\n\n", doc.ProjectName, doc.LibraryName)
	b.WriteString(comparisonIntro(doc) + "\n\n")

	var shown []types.ComparisonExample
	for _, e := range doc.Examples {
		if ComparisonRenderable(e) {
			shown = append(shown, e)
		}
	}

	b.WriteString("## Examples\n\n")
	for _, e := range shown {
		fmt.Fprintf(&b, "- %s\n", comparisonHeading(e))
	}
	if len(shown) > 0 {
		b.WriteString("\n")
	}

	for _, e := range shown {
		fmt.Fprintf(&b, "### %s\n\n", comparisonHeading(e))

		fmt.Fprintf(&b, "**%s Code**\n\n", doc.ProjectName)
		mdCodeBlock(&b, lang, e.ProjectCode)

		fmt.Fprintf(&b, "**%s Code**\n\n", doc.LibraryName)
		if e.Status == types.StatusComplete {
			if link := browseLink(doc, e); link != "" {
				fmt.Fprintf(&b, "Link: <%s>\n\n", link)
			}
			mdCodeBlock(&b, lang, e.ComparisonCode)
		} else {
			mdCodeBlock(&b, lang, todoBody)
		}
	}
	return flush(w, &b)
}

// RenderExamples implements Renderer.
func (Markdown) RenderExamples(w io.Writer, doc ExamplesDocument) error {
	var b strings.Builder
	lang := language(doc.Language)

	b.WriteString("# Examples\n\n")
	b.WriteString(examplesIntro(doc.ProjectName) + "\n\n")

	if len(doc.Standalone) > 0 {
		b.WriteString("## Getting Started Examples\n\n")
		b.WriteString(gettingStartedIntro(doc.ProjectName) + "\n\n")
		for _, e := range doc.Standalone {
			if e.Code == "" {
				continue
			}
			fmt.Fprintf(&b, "### %s\n\n", e.Title)
			mdCodeBlock(&b, lang, e.Code)
		}
	}

	if len(doc.RealWorld) > 0 {
		b.WriteString("## Real World Examples\n\n")
		b.WriteString(realWorldIntro(doc.ProjectName) + "\n\n")
		for _, e := range doc.RealWorld {
			if !RealWorldRenderable(e) {
				continue
			}
			fmt.Fprintf(&b, "### %s\n\n", realWorldHeading(e))
			if e.SourceURL != "" {
				fmt.Fprintf(&b, "**Source:** [Original Code](%s)\n\n", e.SourceURL)
			}
			b.WriteString("**Before (Original)**\n\n")
			mdCodeBlock(&b, lang, e.OriginalCode)
			fmt.Fprintf(&b, "**After (%s)**\n\n", doc.ProjectName)
			mdCodeBlock(&b, lang, e.DisplayedCode)
		}
	}
	return flush(w, &b)
}

func mdCodeBlock(b *strings.Builder, lang, code string) {
	fmt.Fprintf(b, "```%s\n", lang)
	for _, line := range codeLines(code) {
		b.WriteString(line + "\n")
	}
	b.WriteString("```\n\n")
}
