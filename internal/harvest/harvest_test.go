// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/example-docs/internal/fetch"
	"github.com/pdiddy/example-docs/internal/format"
	"github.com/pdiddy/example-docs/pkg/types"
)

// --- test doubles ---

type fakeFetcher struct {
	listing  []string
	listErr  error
	examples map[string]string // stem -> body
	files    map[string]string // owner/repo/commit/path -> body
}

func (f *fakeFetcher) ListExamples(_ context.Context, url string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listing, nil
}

func (f *fakeFetcher) FetchExample(_ context.Context, name string) (string, error) {
	if body, ok := f.examples[name]; ok {
		return body, nil
	}
	return "", &fetch.Error{Op: "fetch", URL: "raw/" + name + ".cu", Reason: fetch.ReasonStatus, StatusCode: 404}
}

func (f *fakeFetcher) FetchByCoordinates(_ context.Context, owner, repo, commit, path string) (string, error) {
	key := owner + "/" + repo + "/" + commit + "/" + path
	if body, ok := f.files[key]; ok {
		return body, nil
	}
	return "", &fetch.Error{Op: "fetch", URL: key, Reason: fetch.ReasonStatus, StatusCode: 404}
}

type recordingFormatter struct {
	files []string
}

func (r *recordingFormatter) Format(_ context.Context, code, filename string) (string, error) {
	r.files = append(r.files, filename)
	return code, nil
}

type failingFormatter struct{}

func (failingFormatter) Format(context.Context, string, string) (string, error) {
	return "", fmt.Errorf("%w: exit status 1", format.ErrFormatterUnavailable)
}

// --- fixtures ---

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func testConfig(root string) types.Config {
	return types.Config{
		Remote: types.RemoteConfig{
			ListingURL: "https://api.example.test/contents/examples",
			Extension:  ".cu",
		},
		Comparison: types.ComparisonConfig{
			LocalDir:    filepath.Join(root, "examples", "thrust"),
			ProjectName: "Parrot",
			LibraryName: "Thrust",
		},
		Examples: types.ExamplesConfig{
			GettingStartedDir:   filepath.Join(root, "examples", "getting_started"),
			RealWorldDir:        filepath.Join(root, "examples", "real_world"),
			RealWorldExtensions: []string{".cu", ".h"},
		},
		Titles: map[string]string{"minmax": "Min Max"},
	}
}

const reduceLocal = `/*
 * SPDX-License-Identifier: Apache-2.0
 */

#include <parrot.hpp>
auto x = parrot::range(10).sum();
`

const reduceRemote = `#include <thrust/reduce.h>
// sum the range
int main() {
  int s = 0;
  return s;
}
`

func comparisonFixture(t *testing.T) (types.Config, *fakeFetcher) {
	t.Helper()
	root := t.TempDir()
	cfg := testConfig(root)
	dir := cfg.Comparison.LocalDir

	writeFile(t, filepath.Join(dir, "reduce.cu"), reduceLocal)
	writeFile(t, filepath.Join(dir, "minmax.cu"), "auto [lo, hi] = v.minmax();\n")
	writeFile(t, filepath.Join(dir, "sort.cu"), "// TODO: port the comparator\nauto s = v.sort();\n")
	writeFile(t, filepath.Join(dir, "scan.cu"), "auto s = v.scan();\n")
	writeFile(t, filepath.Join(dir, "_empty.cu"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not an example\n")

	ff := &fakeFetcher{
		listing: []string{"reduce", "sort", "minmax"},
		examples: map[string]string{
			"reduce": reduceRemote,
			"minmax": "auto lo = *thrust::min_element(b, e);\nauto hi = *thrust::max_element(b, e);\nprint(lo, hi);\n",
			"sort":   "thrust::sort(b, e);\n",
		},
	}
	return cfg, ff
}

func comparisonTitles(exs []types.ComparisonExample) []string {
	var titles []string
	for _, e := range exs {
		titles = append(titles, e.Title)
	}
	return titles
}

func findComparison(t *testing.T, exs []types.ComparisonExample, stem string) types.ComparisonExample {
	t.Helper()
	for _, e := range exs {
		if e.ComparisonFilename == stem {
			return e
		}
	}
	t.Fatalf("no comparison record for %s", stem)
	return types.ComparisonExample{}
}

// --- comparison category ---

func TestComparisons(t *testing.T) {
	cfg, ff := comparisonFixture(t)
	rf := &recordingFormatter{}
	var buf bytes.Buffer
	h := New(cfg, ff, rf, &buf, nil)

	exs, err := h.Comparisons(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Min Max", "Reduce", "Scan", "Sort"}, comparisonTitles(exs))

	reduce := findComparison(t, exs, "reduce")
	assert.Equal(t, types.StatusComplete, reduce.Status)
	assert.Equal(t, "#include <parrot.hpp>\nauto x = parrot::range(10).sum();\n", reduce.ProjectCode)
	assert.Equal(t, reduceRemote, reduce.ComparisonCode)
	assert.Equal(t, 2.5, reduce.CodeRatio)

	minmax := findComparison(t, exs, "minmax")
	assert.Equal(t, types.StatusComplete, minmax.Status)
	assert.Equal(t, 3.0, minmax.CodeRatio)

	sortEx := findComparison(t, exs, "sort")
	assert.Equal(t, types.StatusIncomplete, sortEx.Status)
	assert.False(t, sortEx.HasRatio())

	assert.ElementsMatch(t, []string{"minmax.cu", "reduce.cu", "sort.cu"}, rf.files)

	rep := h.Report()
	assert.Equal(t, 2, rep.Comparisons.Complete)
	assert.Equal(t, 2, rep.Comparisons.Incomplete)
	assert.Equal(t, 1, rep.Comparisons.Skipped)
	assert.Equal(t, 1, rep.Count(RemoteUnavailable))
	assert.Equal(t, 1, rep.Count(LocalReadFailure))
	assert.Contains(t, buf.String(), "code ratio for Reduce: 2.5x")
}

func TestComparisons_RemoteFailureKeepsIncompleteRecord(t *testing.T) {
	cfg, ff := comparisonFixture(t)
	h := New(cfg, ff, nil, nil, nil)

	exs, err := h.Comparisons(context.Background())
	require.NoError(t, err)

	scan := findComparison(t, exs, "scan")
	assert.Equal(t, types.StatusIncomplete, scan.Status)
	assert.Equal(t, Placeholder, scan.ComparisonCode)
	assert.Equal(t, "// TODO", scan.ComparisonCode)
	assert.Equal(t, "auto s = v.scan();\n", scan.ProjectCode)
	assert.False(t, scan.HasRatio())

	var remote []Warning
	for _, w := range h.Report().Warnings {
		if w.Kind == RemoteUnavailable {
			remote = append(remote, w)
		}
	}
	require.Len(t, remote, 1)
	assert.Equal(t, "scan.cu", remote[0].File)
	assert.True(t, errors.Is(remote[0].Err, fetch.ErrRemoteUnavailable))
}

func TestComparisons_ListingUnavailable(t *testing.T) {
	cfg, ff := comparisonFixture(t)
	ff.listErr = &fetch.Error{Op: "list", URL: cfg.Remote.ListingURL, Reason: fetch.ReasonStatus, StatusCode: 403}
	h := New(cfg, ff, nil, nil, nil)

	exs, err := h.Comparisons(context.Background())
	require.NoError(t, err)
	assert.Len(t, exs, 4)

	rep := h.Report()
	assert.Equal(t, 2, rep.Count(RemoteUnavailable))
	assert.Equal(t, "", rep.Warnings[0].File)
}

func TestComparisons_FormatterFailureKeepsInput(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)
	writeFile(t, filepath.Join(cfg.Comparison.LocalDir, "reduce.cu"), reduceLocal)
	ff := &fakeFetcher{listing: []string{"reduce"}, examples: map[string]string{"reduce": reduceRemote}}

	h := New(cfg, ff, failingFormatter{}, nil, nil)
	exs, err := h.Comparisons(context.Background())
	require.NoError(t, err)
	require.Len(t, exs, 1)
	assert.Equal(t, reduceRemote, exs[0].ComparisonCode)
	assert.Equal(t, types.StatusComplete, exs[0].Status)
	rep := h.Report()
	assert.Equal(t, 1, rep.Count(FormatterUnavailable))
}

func TestComparisons_EmptyRemoteBodyUsesPlaceholder(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)
	writeFile(t, filepath.Join(cfg.Comparison.LocalDir, "reduce.cu"), reduceLocal)
	ff := &fakeFetcher{listing: []string{"reduce"}, examples: map[string]string{"reduce": ""}}
	rf := &recordingFormatter{}

	h := New(cfg, ff, rf, nil, nil)
	exs, err := h.Comparisons(context.Background())
	require.NoError(t, err)
	require.Len(t, exs, 1)
	assert.Equal(t, Placeholder, exs[0].ComparisonCode)
	assert.Equal(t, types.StatusIncomplete, exs[0].Status)
	assert.Zero(t, exs[0].CodeRatio)
	assert.Empty(t, rf.files, "empty body is not formatted")

	rep := h.Report()
	assert.Equal(t, 1, rep.Count(RemoteUnavailable))
	assert.Equal(t, "reduce.cu", rep.Warnings[0].File)
}

func TestComparisons_HeaderOnlyLocalIsIncomplete(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)
	writeFile(t, filepath.Join(cfg.Comparison.LocalDir, "reduce.cu"), "/*\n * license\n */\n")
	ff := &fakeFetcher{examples: map[string]string{"reduce": reduceRemote}}

	h := New(cfg, ff, nil, nil, nil)
	exs, err := h.Comparisons(context.Background())
	require.NoError(t, err)
	require.Len(t, exs, 1)
	assert.Equal(t, types.StatusIncomplete, exs[0].Status)
	assert.Empty(t, exs[0].ProjectCode)
}

func TestComparisons_MissingDirectory(t *testing.T) {
	cfg := testConfig(t.TempDir())
	h := New(cfg, &fakeFetcher{}, nil, nil, nil)

	exs, err := h.Comparisons(context.Background())
	assert.Nil(t, exs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

// --- standalone category ---

func TestStandalone(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)
	dir := cfg.Examples.GettingStartedDir
	writeFile(t, filepath.Join(dir, "hello_world.cu"), "/* SPDX */\n\nint main() {}\n")
	writeFile(t, filepath.Join(dir, "basic_ops.cu"), "auto y = x + 1;\n")
	writeFile(t, filepath.Join(dir, "broken.cu"), "")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.cu"), 0o755))

	h := New(cfg, &fakeFetcher{}, nil, nil, nil)
	exs, err := h.Standalone(context.Background())
	require.NoError(t, err)
	require.Len(t, exs, 2)

	assert.Equal(t, types.StandaloneExample{Title: "Basic Ops", Filename: "basic_ops", Code: "auto y = x + 1;\n"}, exs[0])
	assert.Equal(t, types.StandaloneExample{Title: "Hello World", Filename: "hello_world", Code: "int main() {}\n"}, exs[1])
	assert.Equal(t, 1, h.Report().Standalone.Skipped)
}

// --- real-world category ---

const matrixOpsLocal = `/*
 * SPDX-License-Identifier: Apache-2.0
 */

// https://github.com/acme/lib/blob/abc123/src/foo.cu#L2
// to 4

auto v = parrot::seq(3);
`

func realWorldFixture(t *testing.T) (types.Config, *fakeFetcher) {
	t.Helper()
	root := t.TempDir()
	cfg := testConfig(root)
	rw := cfg.Examples.RealWorldDir

	writeFile(t, filepath.Join(rw, "matrix_ops", "kernel.cu"), matrixOpsLocal)
	writeFile(t, filepath.Join(rw, "matrix_ops", "README.md"), "// https://github.com/x/y/blob/z/w.md#L1\n")
	writeFile(t, filepath.Join(rw, "gone", "a.cu"), "// https://github.com/acme/lib/blob/abc123/missing.cu#L1\nint x;\n")
	writeFile(t, filepath.Join(rw, "single_line", "a.h"), "// https://github.com/acme/lib/blob/def456/include/one.h#L1\n#pragma once\nint y;\n")
	writeFile(t, filepath.Join(rw, "broken_link", "a.cu"), "// https://github.com/acme/lib/tree/main/x.cu#L3\nint q;\n")
	writeFile(t, filepath.Join(rw, "no_ref", "a.cu"), "int q;\n")
	writeFile(t, filepath.Join(rw, "stray.cu"), "int stray;\n")

	ff := &fakeFetcher{
		files: map[string]string{
			"acme/lib/abc123/src/foo.cu":    "// header\nint a = 1;\nint b = 2;\nint c = 3;\nint d = 4;\n",
			"acme/lib/def456/include/one.h": "#pragma once\nint y = 0;\nint z = 1;\nint w = 2;\n",
		},
	}
	return cfg, ff
}

func TestRealWorld(t *testing.T) {
	cfg, ff := realWorldFixture(t)
	h := New(cfg, ff, nil, nil, nil)

	exs, err := h.RealWorld(context.Background())
	require.NoError(t, err)
	require.Len(t, exs, 3)
	assert.Equal(t, "Gone", exs[0].Title)
	assert.Equal(t, "Matrix Ops", exs[1].Title)
	assert.Equal(t, "Single Line", exs[2].Title)

	gone := exs[0]
	assert.Equal(t, types.StatusIncomplete, gone.Status)
	assert.Empty(t, gone.OriginalCode)
	assert.Equal(t, "int x;\n", gone.DisplayedCode)

	matrix := exs[1]
	assert.Equal(t, types.StatusComplete, matrix.Status)
	assert.Equal(t, "matrix_ops", matrix.Subdir)
	assert.Equal(t, "kernel.cu", matrix.Filename)
	assert.Equal(t, "int a = 1;\nint b = 2;\nint c = 3;", matrix.OriginalCode)
	assert.Equal(t, "auto v = parrot::seq(3);\n", matrix.DisplayedCode)
	assert.Equal(t, "https://github.com/acme/lib/blob/abc123/src/foo.cu#L2", matrix.SourceURL)
	assert.Equal(t, 4, matrix.Reference.EndLine)
	assert.Equal(t, 3.0, matrix.CodeRatio)

	single := exs[2]
	assert.Equal(t, "#pragma once\nint y = 0;\nint z = 1;\nint w = 2;\n", single.OriginalCode)
	assert.Equal(t, 2.0, single.CodeRatio)

	rep := h.Report()
	assert.Equal(t, 2, rep.RealWorld.Complete)
	assert.Equal(t, 1, rep.RealWorld.Incomplete)
	assert.Equal(t, 2, rep.RealWorld.Skipped)
	assert.Equal(t, 1, rep.Count(RemoteUnavailable))
	assert.Equal(t, 1, rep.Count(MalformedAnnotation))
	assert.Equal(t, 1, rep.Count(MissingAnnotation))
}

func TestRealWorld_RangeOutsideFile(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)
	writeFile(t, filepath.Join(cfg.Examples.RealWorldDir, "far", "a.cu"),
		"// https://github.com/acme/lib/blob/abc123/short.cu#L50\n// to 60\nint x;\n")
	ff := &fakeFetcher{files: map[string]string{"acme/lib/abc123/short.cu": "int a;\n"}}

	h := New(cfg, ff, nil, nil, nil)
	exs, err := h.RealWorld(context.Background())
	require.NoError(t, err)
	require.Len(t, exs, 1)
	assert.Equal(t, types.StatusIncomplete, exs[0].Status)
	assert.Empty(t, exs[0].OriginalCode)
	rep := h.Report()
	assert.Equal(t, 1, rep.Count(MalformedAnnotation))
}

// --- run ---

func TestRun_CategoryFailureDoesNotStopOthers(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)
	writeFile(t, filepath.Join(cfg.Examples.GettingStartedDir, "hello.cu"), "int main() {}\n")

	var buf bytes.Buffer
	h := New(cfg, &fakeFetcher{}, nil, &buf, nil)
	res := h.Run(context.Background())

	assert.Empty(t, res.Comparisons)
	assert.Len(t, res.Standalone, 1)
	assert.Empty(t, res.RealWorld)
	assert.True(t, res.Report.Comparisons.Failed())
	assert.False(t, res.Report.Standalone.Failed())
	assert.True(t, res.Report.RealWorld.Failed())
	assert.True(t, res.Report.HasFailures())
	assert.Contains(t, buf.String(), "failed:  comparison")
}

func TestRun_Summary(t *testing.T) {
	cfg, ff := comparisonFixture(t)
	var buf bytes.Buffer
	h := New(cfg, ff, nil, &buf, nil)
	res := h.Run(context.Background())

	var out bytes.Buffer
	res.Report.WriteSummary(&out)
	assert.Contains(t, out.String(), "Harvest summary: 4 comparisons (2 complete, 2 incomplete, 1 skipped)")
	assert.Contains(t, out.String(), "remote_unavailable=1")
	assert.Contains(t, out.String(), "local_read_failure=1")
}

func TestRun_SortedByTitle(t *testing.T) {
	root := t.TempDir()
	cfg := testConfig(root)
	names := []string{"zip", "alpha_beta", "Zeta", "mid", "alpha", "beta_2", "a_z", "omega"}
	for _, n := range names {
		writeFile(t, filepath.Join(cfg.Comparison.LocalDir, n+".cu"), "int "+n+";\n")
		writeFile(t, filepath.Join(cfg.Examples.GettingStartedDir, n+".cu"), "int "+n+";\n")
		writeFile(t, filepath.Join(cfg.Examples.RealWorldDir, n, "a.cu"),
			"// https://github.com/o/r/blob/c/"+n+".cu#L1\nint "+n+";\n")
	}
	h := New(cfg, &fakeFetcher{}, nil, nil, nil)
	res := h.Run(context.Background())

	require.Len(t, res.Comparisons, len(names))
	require.Len(t, res.Standalone, len(names))
	require.Len(t, res.RealWorld, len(names))
	assert.True(t, sort.SliceIsSorted(res.Comparisons, func(i, j int) bool {
		return res.Comparisons[i].Title < res.Comparisons[j].Title
	}))
	assert.True(t, sort.SliceIsSorted(res.Standalone, func(i, j int) bool {
		return res.Standalone[i].Title < res.Standalone[j].Title
	}))
	assert.True(t, sort.SliceIsSorted(res.RealWorld, func(i, j int) bool {
		return res.RealWorld[i].Title < res.RealWorld[j].Title
	}))
}

// --- annotations ---

func TestScanAnnotations(t *testing.T) {
	cfg, _ := realWorldFixture(t)
	files, err := ScanAnnotations(cfg.Examples.RealWorldDir, cfg.Examples.RealWorldExtensions)
	require.NoError(t, err)
	require.Len(t, files, 5)

	kinds := map[string]Kind{}
	for _, f := range files {
		kinds[f.Subdir] = f.Kind()
	}
	assert.Equal(t, map[string]Kind{
		"broken_link": MalformedAnnotation,
		"gone":        KindUnknown,
		"matrix_ops":  KindUnknown,
		"no_ref":      MissingAnnotation,
		"single_line": KindUnknown,
	}, kinds)

	assert.Equal(t, "matrix_ops", files[2].Subdir)
	require.NotNil(t, files[2].Reference)
	assert.Equal(t, "src/foo.cu", files[2].Reference.Path)
}

func TestScanAnnotations_MissingRoot(t *testing.T) {
	_, err := ScanAnnotations(filepath.Join(t.TempDir(), "nope"), []string{".cu"})
	assert.Error(t, err)
}
