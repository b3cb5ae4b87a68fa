// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pdiddy/example-docs/internal/annotation"
	"github.com/pdiddy/example-docs/internal/normalize"
	"github.com/pdiddy/example-docs/pkg/types"
)

// RealWorld collects before/after transformations. Every file in each
// subdirectory of the real-world root must carry a reference annotation;
// the referenced remote code is fetched, sliced to the annotated range, and
// formatted. Files without a usable annotation are skipped.
func (h *Harvester) RealWorld(ctx context.Context) ([]types.RealWorldExample, error) {
	root := h.cfg.Examples.RealWorldDir
	fmt.Fprintln(h.w, "Processing real world examples...")

	subdirs, err := listDirs(root)
	if err != nil {
		return nil, fmt.Errorf("listing real world examples in %s: %w", root, err)
	}

	var out []types.RealWorldExample
	for _, subdir := range subdirs {
		fmt.Fprintf(h.w, "processing: %s\n", subdir)
		dir := filepath.Join(root, subdir)
		files, err := listFiles(dir, h.cfg.Examples.RealWorldExtensions)
		if err != nil {
			h.skip(CategoryRealWorld, subdir, fmt.Errorf("%w: %v", ErrLocalRead, err))
			continue
		}
		for _, name := range files {
			file := filepath.Join(subdir, name)
			ex, err := h.realWorld(ctx, subdir, name, filepath.Join(dir, name))
			if err != nil {
				h.skip(CategoryRealWorld, file, err)
				continue
			}
			h.count(CategoryRealWorld, ex.Status)
			out = append(out, ex)
		}
	}

	sortByTitle(out, func(e types.RealWorldExample) string { return e.Title })
	return out, nil
}

// realWorld builds one record. An error means the file is skipped; a
// remote problem instead yields an incomplete record with no original code.
func (h *Harvester) realWorld(ctx context.Context, subdir, name, path string) (types.RealWorldExample, error) {
	code, err := readLocal(path)
	if err != nil {
		return types.RealWorldExample{}, err
	}

	ref, err := annotation.Parse(code)
	if err != nil {
		return types.RealWorldExample{}, err
	}
	if ref == nil {
		return types.RealWorldExample{}, fmt.Errorf("%w in %s", annotation.ErrMissingAnnotation, path)
	}
	fmt.Fprintf(h.w, "  found reference: %s\n", ref.URL)

	file := filepath.Join(subdir, name)
	ex := types.RealWorldExample{
		Title:         SubdirTitle(subdir),
		Subdir:        subdir,
		Filename:      name,
		Status:        types.StatusIncomplete,
		DisplayedCode: normalize.StripHeader(code),
		SourceURL:     ref.URL,
		Reference:     *ref,
	}

	original, err := h.fetcher.FetchByCoordinates(ctx, ref.Owner, ref.Repo, ref.Commit, ref.Path)
	if err != nil {
		h.warn(CategoryRealWorld, file, err)
		return ex, nil
	}

	if ref.HasEndLine() {
		h.log.Debug("extracting lines",
			zap.String("file", file), zap.Int("start", ref.StartLine), zap.Int("end", ref.EndLine))
		sliced, ok := normalize.ExtractLines(original, ref.StartLine, ref.EndLine)
		if !ok {
			h.warn(CategoryRealWorld, file, fmt.Errorf("%w: lines %d-%d outside %s",
				annotation.ErrMalformedAnnotation, ref.StartLine, ref.EndLine, ref.Path))
			return ex, nil
		}
		original = sliced
	}
	if original == "" {
		h.warn(CategoryRealWorld, file, fmt.Errorf("%w: %s is empty", annotation.ErrMalformedAnnotation, ref.URL))
		return ex, nil
	}

	ex.OriginalCode = h.formatCode(ctx, CategoryRealWorld, name, original)
	ex.Status = types.StatusComplete

	originalLines := normalize.CountCodeLines(ex.OriginalCode)
	localLines := normalize.CountCodeLines(code)
	if ratio, ok := normalize.Ratio(originalLines, localLines); ok {
		ex.CodeRatio = ratio
		fmt.Fprintf(h.w, "  code ratio for %s: %.1fx reduction\n", ex.Title, ratio)
	}
	return ex, nil
}
