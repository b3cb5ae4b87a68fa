// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package harvest aggregates example records for the three document
// categories: library comparisons, standalone examples, and real-world
// before/after transformations. Each pipeline discovers local files, pulls
// the remote side through a Fetcher, normalizes both, computes size ratios,
// and returns its records sorted by title.
//
// Problems with a single file are reported as warnings on the progress
// writer and in the Report; only a category root that cannot be listed
// stops that category.
package harvest

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/example-docs/internal/format"
	"github.com/pdiddy/example-docs/pkg/types"
)

// Placeholder stands in for a comparison body that could not be fetched.
const Placeholder = "// TODO"

// todoMarker in either body marks a comparison as incomplete.
const todoMarker = "TODO"

// Fetcher retrieves the remote side of examples. *fetch.Client implements it.
type Fetcher interface {
	ListExamples(ctx context.Context, directoryURL string) ([]string, error)
	FetchExample(ctx context.Context, name string) (string, error)
	FetchByCoordinates(ctx context.Context, owner, repo, commit, path string) (string, error)
}

// Result is everything one run produced.
type Result struct {
	Comparisons []types.ComparisonExample
	Standalone  []types.StandaloneExample
	RealWorld   []types.RealWorldExample
	Report      Report

	StartedAt time.Time
	Elapsed   time.Duration
}

// Harvester runs the category pipelines. It is not safe for concurrent use.
type Harvester struct {
	cfg       types.Config
	fetcher   Fetcher
	formatter format.Formatter
	w         io.Writer
	log       *zap.Logger

	report Report
}

// New creates a Harvester. Progress lines go to w. A nil formatter disables
// formatting and a nil logger disables debug tracing.
func New(cfg types.Config, fetcher Fetcher, formatter format.Formatter, w io.Writer, log *zap.Logger) *Harvester {
	if formatter == nil {
		formatter = format.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	if w == nil {
		w = io.Discard
	}
	return &Harvester{cfg: cfg, fetcher: fetcher, formatter: formatter, w: w, log: log}
}

// Report returns the warnings and counts gathered since the last Run.
func (h *Harvester) Report() Report {
	return h.report
}

// Run executes the three pipelines in order and returns their records. It
// never fails as a whole: category failures are recorded in the Report.
func (h *Harvester) Run(ctx context.Context) *Result {
	h.report = Report{}
	res := &Result{StartedAt: time.Now()}

	var err error
	if res.Comparisons, err = h.Comparisons(ctx); err != nil {
		h.categoryFailed(CategoryComparison, err)
	}
	if res.Standalone, err = h.Standalone(ctx); err != nil {
		h.categoryFailed(CategoryStandalone, err)
	}
	if res.RealWorld, err = h.RealWorld(ctx); err != nil {
		h.categoryFailed(CategoryRealWorld, err)
	}

	res.Elapsed = time.Since(res.StartedAt)
	res.Report = h.report
	h.log.Debug("harvest finished",
		zap.Int("comparisons", len(res.Comparisons)),
		zap.Int("standalone", len(res.Standalone)),
		zap.Int("real_world", len(res.RealWorld)),
		zap.Int("warnings", len(res.Report.Warnings)),
		zap.Duration("elapsed", res.Elapsed))
	return res
}

func (h *Harvester) categoryFailed(category string, err error) {
	h.report.Category(category).Err = err
	fmt.Fprintf(h.w, "failed:  %s (%v)\n", category, err)
}

// warn records a per-file problem and prints it.
func (h *Harvester) warn(category, file string, err error) {
	w := Warning{Kind: Classify(err), Category: category, File: file, Err: err}
	h.report.Warnings = append(h.report.Warnings, w)
	fmt.Fprintf(h.w, "warning: %s\n", w)
}

// skip records a per-file problem that drops the file from its category.
func (h *Harvester) skip(category, file string, err error) {
	h.warn(category, file, err)
	h.report.Category(category).Skipped++
}

// count tallies a produced record.
func (h *Harvester) count(category string, status types.Status) {
	r := h.report.Category(category)
	if status == types.StatusComplete {
		r.Complete++
	} else {
		r.Incomplete++
	}
}

// formatCode runs code through the formatter and keeps the input on failure.
func (h *Harvester) formatCode(ctx context.Context, category, filename, code string) string {
	out, err := format.Apply(ctx, h.formatter, code, filename)
	if err != nil {
		h.warn(category, filename, err)
	}
	return out
}

// readLocal reads an example file. Empty files count as unreadable.
func readLocal(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLocalRead, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: %s is empty", ErrLocalRead, path)
	}
	return string(data), nil
}

// listFiles returns the names of the regular files in dir ending in one of
// exts, in lexical order.
func listFiles(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		for _, ext := range exts {
			if strings.HasSuffix(e.Name(), ext) {
				names = append(names, e.Name())
				break
			}
		}
	}
	return names, nil
}

// listDirs returns the names of the subdirectories of dir in lexical order.
func listDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func sortByTitle[T any](records []T, title func(T) string) {
	sort.SliceStable(records, func(i, j int) bool {
		return title(records[i]) < title(records[j])
	})
}
