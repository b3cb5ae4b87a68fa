// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/example-docs/internal/fetch"
	"github.com/pdiddy/example-docs/internal/format"
	"github.com/pdiddy/example-docs/internal/harvest"
	"github.com/pdiddy/example-docs/internal/history"
	"github.com/pdiddy/example-docs/internal/metrics"
	"github.com/pdiddy/example-docs/internal/render"
	"github.com/pdiddy/example-docs/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Harvest examples and write the documentation pages",
	Long: `Generate scans the three example roots, fetches the reference side of
each comparison and real-world example, formats the code, and writes the
comparison page and the examples page.

Files that cannot be processed are reported as warnings and left out of the
output. The command fails only when a whole category could not run or a
document could not be written.`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())
	return generate(cmd.Context(), cfg, os.Stdout, logger)
}

// generate performs one full run and writes every configured output.
func generate(ctx context.Context, cfg types.Config, w io.Writer, log *zap.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	renderer, err := render.New(cfg.Output.Format)
	if err != nil {
		return err
	}

	formatter, ferr := format.New(cfg.Formatter, log)
	if ferr != nil {
		if !errors.Is(ferr, format.ErrFormatterUnavailable) {
			return ferr
		}
		fmt.Fprintf(w, "warning: code will not be formatted (%v)\n", ferr)
	}

	timeout := cfg.Remote.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	client := fetch.NewClient(&http.Client{Timeout: timeout}, cfg.Remote, log)

	res := harvest.New(cfg, client, formatter, w, log).Run(ctx)
	if ferr != nil {
		res.Report.Warnings = append(res.Report.Warnings, harvest.Warning{
			Kind: harvest.FormatterUnavailable, Category: "formatter", Err: ferr,
		})
	}

	writeDocuments(cfg, renderer, res, w)
	writeSinks(ctx, cfg, res, w, log)

	res.Report.WriteSummary(w)

	if res.Report.HasFailures() {
		return fmt.Errorf("one or more example categories failed")
	}
	if n := res.Report.Count(harvest.OutputWriteFailure); n > 0 {
		return fmt.Errorf("%d document(s) could not be written", n)
	}
	return nil
}

// writeDocuments renders both pages. A failure on one page does not stop
// the other.
func writeDocuments(cfg types.Config, r render.Renderer, res *harvest.Result, w io.Writer) {
	rep := &res.Report

	if rep.Comparisons.Failed() {
		fmt.Fprintf(w, "skipped: %s (comparison examples unavailable)\n", cfg.Comparison.OutputFile)
	} else {
		path := outputPath(cfg.Comparison.OutputFile, r)
		doc := render.ComparisonDocument{
			ProjectName: cfg.Comparison.ProjectName,
			LibraryName: cfg.Comparison.LibraryName,
			Intro:       cfg.Comparison.Intro,
			BrowseURL:   cfg.Remote.BrowseURL,
			Extension:   cfg.Remote.Extension,
			Language:    cfg.Output.Language,
			Examples:    res.Comparisons,
		}
		writeDocument(path, harvest.CategoryComparison, rep, w, func(out io.Writer) error {
			return r.RenderComparisons(out, doc)
		})
	}

	if rep.Standalone.Failed() && rep.RealWorld.Failed() {
		fmt.Fprintf(w, "skipped: %s (standalone and real world examples unavailable)\n", cfg.Examples.OutputFile)
	} else {
		path := outputPath(cfg.Examples.OutputFile, r)
		doc := render.ExamplesDocument{
			ProjectName: cfg.Comparison.ProjectName,
			Language:    cfg.Output.Language,
			Standalone:  res.Standalone,
			RealWorld:   res.RealWorld,
		}
		writeDocument(path, "examples", rep, w, func(out io.Writer) error {
			return r.RenderExamples(out, doc)
		})
	}
}

func writeDocument(path, category string, rep *harvest.Report, w io.Writer, fn func(io.Writer) error) {
	if err := render.WriteDocument(path, fn); err != nil {
		rep.Warnings = append(rep.Warnings, harvest.Warning{
			Kind: harvest.Classify(err), Category: category, File: path, Err: err,
		})
		fmt.Fprintf(w, "failed:  %s (%v)\n", path, err)
		return
	}
	fmt.Fprintf(w, "wrote:   %s\n", path)
}

// outputPath swaps the configured extension for the renderer's, so the
// default .rst paths become .md under the markdown format.
func outputPath(path string, r render.Renderer) string {
	ext := filepath.Ext(path)
	if ext == r.Ext() {
		return path
	}
	return strings.TrimSuffix(path, ext) + r.Ext()
}

// writeSinks writes the optional manifest, history record, and metrics
// textfile. Their failures are printed but do not fail the run.
func writeSinks(ctx context.Context, cfg types.Config, res *harvest.Result, w io.Writer, log *zap.Logger) {
	if cfg.Output.Manifest != "" {
		m := render.Manifest{
			GeneratedAt: res.StartedAt.UTC().Truncate(time.Second),
			Comparisons: res.Comparisons,
			Standalone:  res.Standalone,
			RealWorld:   res.RealWorld,
		}
		for _, warn := range res.Report.Warnings {
			m.Warnings = append(m.Warnings, warn.String())
		}
		if err := render.WriteManifest(cfg.Output.Manifest, m); err != nil {
			fmt.Fprintf(w, "warning: manifest %s: %v\n", cfg.Output.Manifest, err)
		} else {
			fmt.Fprintf(w, "wrote:   %s\n", cfg.Output.Manifest)
		}
	}

	if cfg.HistoryDB != "" {
		if id, err := recordHistory(ctx, cfg.HistoryDB, res); err != nil {
			fmt.Fprintf(w, "warning: history %s: %v\n", cfg.HistoryDB, err)
		} else {
			log.Debug("run recorded", zap.String("db", cfg.HistoryDB), zap.String("run", id))
			fmt.Fprintf(w, "recorded run %s\n", id)
		}
	}

	if cfg.MetricsFile != "" {
		rec := metrics.New()
		rec.Observe(res)
		if err := rec.WriteTextfile(cfg.MetricsFile); err != nil {
			fmt.Fprintf(w, "warning: metrics %s: %v\n", cfg.MetricsFile, err)
		} else {
			fmt.Fprintf(w, "wrote:   %s\n", cfg.MetricsFile)
		}
	}
}

func recordHistory(ctx context.Context, path string, res *harvest.Result) (string, error) {
	store, err := history.Open(path)
	if err != nil {
		return "", err
	}
	defer store.Close()
	return store.Save(ctx, res)
}
