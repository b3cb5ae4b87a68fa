// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics exposes the outcome of a generation run as Prometheus
// gauges written to a node_exporter textfile.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdiddy/example-docs/internal/harvest"
	"github.com/pdiddy/example-docs/pkg/types"
)

const namespace = "example_docs"

// Recorder holds the gauges for one run on a private registry.
type Recorder struct {
	reg *prometheus.Registry

	records  *prometheus.GaugeVec
	skipped  *prometheus.GaugeVec
	warnings *prometheus.GaugeVec
	ratio    *prometheus.GaugeVec
	duration prometheus.Gauge
	lastRun  prometheus.Gauge
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		records: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "records",
			Help:      "Example records produced by the last run.",
		}, []string{"category", "status"}),
		skipped: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "skipped_files",
			Help:      "Example files skipped by the last run.",
		}, []string{"category"}),
		warnings: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "warnings",
			Help:      "Warnings reported by the last run, by kind.",
		}, []string{"kind"}),
		ratio: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "code_ratio",
			Help:      "Code size ratio of each example with a computed ratio.",
		}, []string{"category", "title"}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run started.",
		}),
	}
	r.reg.MustRegister(r.records, r.skipped, r.warnings, r.ratio, r.duration, r.lastRun)
	return r
}

// Registry returns the registry the gauges live on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// Observe sets every gauge from res, replacing earlier values.
func (r *Recorder) Observe(res *harvest.Result) {
	r.records.Reset()
	r.skipped.Reset()
	r.warnings.Reset()
	r.ratio.Reset()

	for _, category := range []string{harvest.CategoryComparison, harvest.CategoryStandalone, harvest.CategoryRealWorld} {
		cr := res.Report.Category(category)
		r.records.WithLabelValues(category, string(types.StatusComplete)).Set(float64(cr.Complete))
		r.records.WithLabelValues(category, string(types.StatusIncomplete)).Set(float64(cr.Incomplete))
		r.skipped.WithLabelValues(category).Set(float64(cr.Skipped))
	}

	for _, k := range harvest.Kinds() {
		r.warnings.WithLabelValues(k.String()).Set(float64(res.Report.Count(k)))
	}

	for _, e := range res.Comparisons {
		if e.HasRatio() {
			r.ratio.WithLabelValues(harvest.CategoryComparison, e.Title).Set(e.CodeRatio)
		}
	}
	for _, e := range res.RealWorld {
		if e.HasRatio() {
			r.ratio.WithLabelValues(harvest.CategoryRealWorld, e.Title).Set(e.CodeRatio)
		}
	}

	r.duration.Set(res.Elapsed.Seconds())
	r.lastRun.Set(float64(res.StartedAt.Unix()))
}

// WriteTextfile writes the registry to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}
