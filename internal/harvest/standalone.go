// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdiddy/example-docs/internal/normalize"
	"github.com/pdiddy/example-docs/pkg/types"
)

// Standalone collects the getting-started examples. They have no remote
// counterpart and carry no ratio.
func (h *Harvester) Standalone(_ context.Context) ([]types.StandaloneExample, error) {
	dir := h.cfg.Examples.GettingStartedDir
	ext := h.cfg.Remote.Extension
	fmt.Fprintln(h.w, "Processing getting started examples...")

	files, err := listFiles(dir, []string{ext})
	if err != nil {
		return nil, fmt.Errorf("listing getting started examples in %s: %w", dir, err)
	}

	var out []types.StandaloneExample
	for _, name := range files {
		fmt.Fprintf(h.w, "processing: %s\n", name)
		code, err := readLocal(filepath.Join(dir, name))
		if err != nil {
			h.skip(CategoryStandalone, name, err)
			continue
		}
		out = append(out, types.StandaloneExample{
			Title:    Title(name, h.cfg.Titles),
			Filename: strings.TrimSuffix(name, ext),
			Code:     normalize.StripHeader(code),
		})
		h.count(CategoryStandalone, types.StatusComplete)
	}

	sortByTitle(out, func(e types.StandaloneExample) string { return e.Title })
	return out, nil
}
