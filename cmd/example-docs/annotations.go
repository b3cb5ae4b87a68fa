// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/example-docs/internal/fetch"
	"github.com/pdiddy/example-docs/internal/harvest"
	"github.com/pdiddy/example-docs/pkg/types"
)

var annotationsCmd = &cobra.Command{
	Use:   "annotations",
	Short: "List the source annotations of the real world examples",
	Long: `Annotations parses the source annotation of every real world example
without touching the network and prints where each one points. Files with a
missing or malformed annotation are listed with the problem.

Use --strict in CI to fail when any file has an annotation problem.`,
	RunE: runAnnotations,
}

func init() {
	annotationsCmd.Flags().Bool("json", false, "output results as JSON")
	annotationsCmd.Flags().Bool("strict", false, "fail if any file has an annotation problem")

	rootCmd.AddCommand(annotationsCmd)
}

// annotationRow is one line of annotations output.
type annotationRow struct {
	File      string                     `json:"file"`
	Reference *types.ReferenceDescriptor `json:"reference,omitempty"`
	RawURL    string                     `json:"raw_url,omitempty"`
	Problem   string                     `json:"problem,omitempty"`
	Error     string                     `json:"error,omitempty"`
}

func runAnnotations(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())
	jsonOutput, _ := cmd.Flags().GetBool("json")
	strict, _ := cmd.Flags().GetBool("strict")

	files, err := harvest.ScanAnnotations(cfg.Examples.RealWorldDir, cfg.Examples.RealWorldExtensions)
	if err != nil {
		return err
	}

	rows := annotationRows(files, cfg.Remote.RawBaseURL)
	if err := writeAnnotations(os.Stdout, rows, jsonOutput); err != nil {
		return err
	}

	if strict {
		problems := 0
		for _, r := range rows {
			if r.Problem != "" {
				problems++
			}
		}
		if problems > 0 {
			return fmt.Errorf("%d file(s) with annotation problems", problems)
		}
	}
	return nil
}

func annotationRows(files []harvest.AnnotatedFile, rawBase string) []annotationRow {
	rows := make([]annotationRow, 0, len(files))
	for _, f := range files {
		r := annotationRow{File: filepath.Join(f.Subdir, f.Filename), Reference: f.Reference}
		if f.Reference != nil {
			d := f.Reference
			r.RawURL = fetch.RawURL(rawBase, d.Owner, d.Repo, d.Commit, d.Path)
		}
		if f.Err != nil {
			r.Problem = f.Kind().String()
			r.Error = f.Err.Error()
		}
		rows = append(rows, r)
	}
	return rows
}

func writeAnnotations(w io.Writer, rows []annotationRow, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, "No real world examples found.")
		return nil
	}

	fmt.Fprintf(w, "%-40s  %-30s  %-12s  %s\n", "File", "Repository", "Lines", "Path")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, r := range rows {
		if r.Reference == nil {
			fmt.Fprintf(w, "%-40s  %s: %s\n", r.File, r.Problem, r.Error)
			continue
		}
		d := r.Reference
		lines := fmt.Sprintf("%d", d.StartLine)
		if d.HasEndLine() {
			lines = fmt.Sprintf("%d-%d", d.StartLine, d.EndLine)
		}
		repo := d.Owner + "/" + d.Repo + "@" + shortCommit(d.Commit)
		fmt.Fprintf(w, "%-40s  %-30s  %-12s  %s\n", r.File, repo, lines, d.Path)
	}

	fmt.Fprintf(w, "\n%d files\n", len(rows))
	return nil
}

func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
