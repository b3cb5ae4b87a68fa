// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/example-docs/internal/render"
)

var previewCmd = &cobra.Command{
	Use:   "preview [file]",
	Short: "Render a generated Markdown page in the terminal",
	Long: `Preview renders a Markdown document produced by generate --format markdown.
Without an argument it previews the comparison page at its configured path.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("width", 100, "word wrap width")
	previewCmd.Flags().Bool("light", false, "use the light style instead of detecting the terminal background")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		cfg := loadConfig(viper.GetViper())
		path = outputPath(cfg.Comparison.OutputFile, render.Markdown{})
	}

	width, _ := cmd.Flags().GetInt("width")
	light, _ := cmd.Flags().GetBool("light")
	return preview(os.Stdout, path, width, light)
}

func preview(w io.Writer, path string, width int, light bool) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".md" && ext != ".markdown" {
		return fmt.Errorf("%s: preview supports Markdown output only; generate with --format markdown", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	style := glamour.WithAutoStyle()
	if light {
		style = glamour.WithStylePath("light")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	out, err := r.Render(string(data))
	if err != nil {
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	_, err = io.WriteString(w, out)
	return err
}
