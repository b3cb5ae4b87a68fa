// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/example-docs/internal/fetch"
	"github.com/pdiddy/example-docs/internal/normalize"
	"github.com/pdiddy/example-docs/pkg/types"
)

// Comparisons pairs every local example in the comparison directory with
// the same-named remote example. A remote body that cannot be fetched, or
// comes back empty, is replaced by Placeholder and the record is kept as
// incomplete.
func (h *Harvester) Comparisons(ctx context.Context) ([]types.ComparisonExample, error) {
	cfg := h.cfg.Comparison
	ext := h.cfg.Remote.Extension
	fmt.Fprintf(h.w, "Processing %s examples...\n", cfg.LibraryName)

	files, err := listFiles(cfg.LocalDir, []string{ext})
	if err != nil {
		return nil, fmt.Errorf("listing comparison examples in %s: %w", cfg.LocalDir, err)
	}

	remote := h.remoteListing(ctx)

	var out []types.ComparisonExample
	for _, name := range files {
		fmt.Fprintf(h.w, "processing: %s\n", name)
		ex, err := h.comparison(ctx, filepath.Join(cfg.LocalDir, name), name, ext, remote)
		if err != nil {
			h.skip(CategoryComparison, name, err)
			continue
		}
		h.count(CategoryComparison, ex.Status)
		out = append(out, ex)
	}

	sortByTitle(out, func(e types.ComparisonExample) string { return e.Title })
	return out, nil
}

// remoteListing returns the set of remote example stems, or nil when the
// listing is unavailable. It is used for diagnostics only: every local file
// is still fetched by name.
func (h *Harvester) remoteListing(ctx context.Context) map[string]bool {
	url := h.cfg.Remote.ListingURL
	if url == "" {
		return nil
	}
	names, err := h.fetcher.ListExamples(ctx, url)
	if err != nil {
		h.warn(CategoryComparison, "", fmt.Errorf("could not list %s examples, using local filenames only: %w",
			h.cfg.Comparison.LibraryName, err))
		return nil
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	h.log.Debug("remote listing", zap.String("url", url), zap.Int("examples", len(set)))
	return set
}

func (h *Harvester) comparison(ctx context.Context, path, name, ext string, remote map[string]bool) (types.ComparisonExample, error) {
	code, err := readLocal(path)
	if err != nil {
		return types.ComparisonExample{}, err
	}

	stem := strings.TrimSuffix(name, ext)
	ex := types.ComparisonExample{
		Title:              Title(name, h.cfg.Titles),
		ComparisonFilename: stem,
		Status:             types.StatusComplete,
		ProjectCode:        normalize.StripHeader(code),
	}

	if remote != nil && !remote[stem] {
		h.log.Debug("example not in remote listing", zap.String("example", stem))
	}

	body, err := h.fetcher.FetchExample(ctx, stem)
	if err == nil && body == "" {
		err = fmt.Errorf("%w: empty response for %s%s", fetch.ErrRemoteUnavailable, stem, ext)
	}
	if err != nil {
		h.warn(CategoryComparison, name, err)
		ex.Status = types.StatusIncomplete
		ex.ComparisonCode = Placeholder
	} else {
		ex.ComparisonCode = h.formatCode(ctx, CategoryComparison, name, body)
	}

	if ex.ProjectCode == "" || ex.ComparisonCode == "" {
		ex.Status = types.StatusIncomplete
		return ex, nil
	}
	if strings.Contains(ex.ProjectCode, todoMarker) || strings.Contains(ex.ComparisonCode, todoMarker) {
		ex.Status = types.StatusIncomplete
	}
	if ex.Status != types.StatusComplete {
		return ex, nil
	}

	projectLines := normalize.CountCodeLines(ex.ProjectCode)
	comparisonLines := normalize.CountCodeLines(ex.ComparisonCode)
	if ratio, ok := normalize.Ratio(comparisonLines, projectLines); ok {
		ex.CodeRatio = ratio
		fmt.Fprintf(h.w, "  code ratio for %s: %.1fx\n", ex.Title, ratio)
	}
	return ex, nil
}
