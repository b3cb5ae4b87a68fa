// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"fmt"
	"io"
)

// Category names used in warnings, reports, and history rows.
const (
	CategoryComparison = "comparison"
	CategoryStandalone = "standalone"
	CategoryRealWorld  = "real_world"
)

// CategoryReport holds the outcome of one category pipeline.
type CategoryReport struct {
	Complete   int
	Incomplete int
	Skipped    int

	// Err is set when the category root could not be enumerated; no
	// document is produced for the category then.
	Err error
}

// Records returns the number of records the category produced.
func (r CategoryReport) Records() int {
	return r.Complete + r.Incomplete
}

// Total returns the number of files the category looked at.
func (r CategoryReport) Total() int {
	return r.Records() + r.Skipped
}

// Failed reports whether the category could not run at all.
func (r CategoryReport) Failed() bool {
	return r.Err != nil
}

// Report summarizes one run across all categories.
type Report struct {
	Comparisons CategoryReport
	Standalone  CategoryReport
	RealWorld   CategoryReport
	Warnings    []Warning
}

// Count returns the number of warnings of the given kind.
func (r *Report) Count(k Kind) int {
	n := 0
	for _, w := range r.Warnings {
		if w.Kind == k {
			n++
		}
	}
	return n
}

// HasFailures reports whether any category failed to run.
func (r *Report) HasFailures() bool {
	return r.Comparisons.Failed() || r.Standalone.Failed() || r.RealWorld.Failed()
}

// Category returns the report for the named category.
func (r *Report) Category(name string) *CategoryReport {
	switch name {
	case CategoryComparison:
		return &r.Comparisons
	case CategoryStandalone:
		return &r.Standalone
	case CategoryRealWorld:
		return &r.RealWorld
	default:
		return nil
	}
}

// WriteSummary prints the batch summary lines to w.
func (r *Report) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "\nHarvest summary: %d comparisons (%d complete, %d incomplete, %d skipped)\n",
		r.Comparisons.Records(), r.Comparisons.Complete, r.Comparisons.Incomplete, r.Comparisons.Skipped)
	fmt.Fprintf(w, "                 %d standalone (%d skipped)\n",
		r.Standalone.Records(), r.Standalone.Skipped)
	fmt.Fprintf(w, "                 %d real-world (%d complete, %d incomplete, %d skipped)\n",
		r.RealWorld.Records(), r.RealWorld.Complete, r.RealWorld.Incomplete, r.RealWorld.Skipped)
	if len(r.Warnings) == 0 {
		return
	}
	fmt.Fprintf(w, "Warnings: %d", len(r.Warnings))
	for _, k := range Kinds() {
		if n := r.Count(k); n > 0 {
			fmt.Fprintf(w, ", %s=%d", k, n)
		}
	}
	fmt.Fprintln(w)
}
