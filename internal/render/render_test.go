// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/example-docs/pkg/types"
)

func comparisonDoc() ComparisonDocument {
	return ComparisonDocument{
		ProjectName: "Parrot",
		LibraryName: "Thrust",
		Intro:       "Parrot is built on top of Thrust but provides a more concise and expressive API.",
		BrowseURL:   "https://github.com/NVIDIA/cccl/blob/main/thrust/examples",
		Extension:   ".cu",
		Language:    "cpp",
		Examples: []types.ComparisonExample{
			{
				Title:              "Reduce",
				ComparisonFilename: "reduce",
				Status:             types.StatusComplete,
				ProjectCode:        "auto s = v.sum();\n",
				ComparisonCode:     "int s = 0;\n\nreturn s;\n",
				CodeRatio:          2.0,
			},
			{
				Title:              "Scan",
				ComparisonFilename: "scan",
				Status:             types.StatusIncomplete,
				ProjectCode:        "auto s = v.scan();",
				ComparisonCode:     "// TODO",
			},
			{
				Title:              "Sort",
				ComparisonFilename: "sort",
				Status:             types.StatusIncomplete,
				ComparisonCode:     "thrust::sort(b, e);",
			},
		},
	}
}

func examplesDoc() ExamplesDocument {
	return ExamplesDocument{
		ProjectName: "Parrot",
		Language:    "cpp",
		Standalone: []types.StandaloneExample{
			{Title: "Hello World", Filename: "hello_world", Code: "int main() {}\n"},
			{Title: "Blank", Filename: "blank"},
		},
		RealWorld: []types.RealWorldExample{
			{
				Title:         "Gone",
				Status:        types.StatusIncomplete,
				DisplayedCode: "int x;\n",
				SourceURL:     "https://github.com/acme/lib/blob/abc123/missing.cu#L1",
			},
			{
				Title:         "Matrix Ops",
				Status:        types.StatusComplete,
				OriginalCode:  "int a = 1;\nint b = 2;\nint c = 3;",
				DisplayedCode: "auto v = parrot::seq(3);\n",
				SourceURL:     "https://github.com/acme/lib/blob/abc123/src/foo.cu#L2",
				CodeRatio:     3.0,
			},
		},
	}
}

func TestRST_RenderComparisons(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RST{}.RenderComparisons(&buf, comparisonDoc()))

	want := "Parrot vs Thrust\n" +
		strings.Repeat("=", 17) + "\n\n" +
		"This page provides comparisons between Parrot code and equivalent Thrust code for common operations. " +
		"Parrot is built on top of Thrust but provides a more concise and expressive API.\n\n" +
		".. contents:: Examples\n" +
		"   :local:\n" +
		"   :depth: 1\n\n" +
		"Examples\n" +
		"--------\n\n" +
		"|\n\n" +
		"✅ Reduce (2.0x less code)\n" +
		strings.Repeat("~", 26) + "\n\n" +
		"**Parrot Code**\n\n" +
		".. code-block:: cpp\n\n" +
		"    auto s = v.sum();\n" +
		"\n" +
		"**Thrust Code**\n\n" +
		"Link: https://github.com/NVIDIA/cccl/blob/main/thrust/examples/reduce.cu\n\n" +
		".. code-block:: cpp\n\n" +
		"    int s = 0;\n" +
		"    \n" +
		"    return s;\n" +
		"\n" +
		"🟡 Scan\n" +
		strings.Repeat("~", 7) + "\n\n" +
		"**Parrot Code**\n\n" +
		".. code-block:: cpp\n\n" +
		"    auto s = v.scan();\n" +
		"\n" +
		"**Thrust Code**\n\n" +
		".. code-block:: cpp\n\n" +
		"    // TODO\n" +
		"\n"

	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("RenderComparisons mismatch (-want +got):\n%s", diff)
	}
}

func TestRST_RenderComparisons_GenericIntroAndNoLink(t *testing.T) {
	doc := comparisonDoc()
	doc.Intro = ""
	doc.BrowseURL = ""

	var buf bytes.Buffer
	require.NoError(t, RST{}.RenderComparisons(&buf, doc))
	out := buf.String()
	assert.Contains(t, out, "This comparison demonstrates how Parrot's API compares to Thrust's API.\n\n")
	assert.NotContains(t, out, "Link:")
}

func TestRST_RenderExamples(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RST{}.RenderExamples(&buf, examplesDoc()))

	want := "Examples\n" +
		"========\n\n" +
		"This page provides standalone Parrot examples demonstrating common operations and patterns, " +
		"as well as real world examples showing before and after code transformations.\n\n" +
		".. contents:: Examples\n" +
		"   :local:\n" +
		"   :depth: 1\n\n" +
		"Getting Started Examples\n" +
		"------------------------\n\n" +
		"These examples demonstrate basic Parrot functionality and common patterns.\n\n" +
		"Hello World\n" +
		"~~~~~~~~~~~\n\n" +
		".. code-block:: cpp\n\n" +
		"    int main() {}\n" +
		"\n" +
		"Real World Examples\n" +
		"-------------------\n\n" +
		"These examples show real world code transformations using Parrot. " +
		"Each example demonstrates the before and after code, highlighting how Parrot simplifies complex operations.\n\n" +
		"Matrix Ops (3.0x code reduction)\n" +
		strings.Repeat("~", 32) + "\n\n" +
		"**Source:** `Original Code <https://github.com/acme/lib/blob/abc123/src/foo.cu#L2>`_\n\n" +
		"**Before (Original)**\n\n" +
		".. code-block:: cpp\n\n" +
		"    int a = 1;\n" +
		"    int b = 2;\n" +
		"    int c = 3;\n" +
		"\n" +
		"**After (Parrot)**\n\n" +
		".. code-block:: cpp\n\n" +
		"    auto v = parrot::seq(3);\n" +
		"\n"

	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("RenderExamples mismatch (-want +got):\n%s", diff)
	}
}

func TestRST_RenderExamples_EmptySections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RST{}.RenderExamples(&buf, ExamplesDocument{ProjectName: "Parrot"}))
	out := buf.String()
	assert.NotContains(t, out, "Getting Started Examples")
	assert.NotContains(t, out, "Real World Examples")
}

func TestMarkdown_RenderComparisons(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown{}.RenderComparisons(&buf, comparisonDoc()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# Parrot vs Thrust\n\n"))
	assert.Contains(t, out, "- ✅ Reduce (2.0x less code)\n- 🟡 Scan\n")
	assert.Contains(t, out, "### ✅ Reduce (2.0x less code)\n\n**Parrot Code**\n\n```cpp\nauto s = v.sum();\n```\n\n")
	assert.Contains(t, out, "Link: <https://github.com/NVIDIA/cccl/blob/main/thrust/examples/reduce.cu>\n\n")
	assert.Contains(t, out, "**Thrust Code**\n\n```cpp\n// TODO\n```\n\n")
	assert.NotContains(t, out, "Sort")
}

func TestMarkdown_RenderExamples(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Markdown{}.RenderExamples(&buf, examplesDoc()))
	out := buf.String()

	assert.Contains(t, out, "### Hello World\n\n```cpp\nint main() {}\n```\n\n")
	assert.Contains(t, out, "### Matrix Ops (3.0x code reduction)\n\n**Source:** [Original Code](https://github.com/acme/lib/blob/abc123/src/foo.cu#L2)\n\n")
	assert.NotContains(t, out, "Blank")
	assert.NotContains(t, out, "Gone")
}

func TestNew(t *testing.T) {
	tests := []struct {
		format  types.OutputFormat
		wantExt string
		wantErr bool
	}{
		{types.OutputRST, ".rst", false},
		{"", ".rst", false},
		{types.OutputMarkdown, ".md", false},
		{"html", "", true},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			r, err := New(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, r.Ext())
		})
	}
}

// failingWriter rejects every write.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRender_WriteFailure(t *testing.T) {
	err := RST{}.RenderComparisons(failingWriter{}, comparisonDoc())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutputWrite))
}

func TestWriteDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docs", "nested", "out.rst")

	require.NoError(t, WriteDocument(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "first\n")
		return err
	}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(data))

	// A failed render leaves the previous document in place.
	err = WriteDocument(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "partial")
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutputWrite))

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must be cleaned up")
}

func TestWriteDocument_UnwritableParent(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := WriteDocument(filepath.Join(blocker, "out.rst"), func(io.Writer) error { return nil })
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutputWrite))
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	m := Manifest{
		Comparisons: comparisonDoc().Examples,
		Standalone:  examplesDoc().Standalone,
		RealWorld:   examplesDoc().RealWorld,
		Warnings:    []string{"comparison: scan.cu: remote_unavailable: HTTP 404"},
	}

	yamlPath := filepath.Join(dir, "manifest.yaml")
	require.NoError(t, WriteManifest(yamlPath, m))
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	var fromYAML Manifest
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	assert.Len(t, fromYAML.Comparisons, 3)
	assert.Equal(t, 2.0, fromYAML.Comparisons[0].CodeRatio)
	assert.Equal(t, m.Warnings, fromYAML.Warnings)

	jsonPath := filepath.Join(dir, "manifest.json")
	require.NoError(t, WriteManifest(jsonPath, m))
	data, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	var fromJSON Manifest
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.Equal(t, "Matrix Ops", fromJSON.RealWorld[1].Title)

	err = WriteManifest(filepath.Join(dir, "manifest.toml"), m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported extension")
}
