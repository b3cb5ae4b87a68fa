// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/example-docs/pkg/types"
)

// WriteDocument creates path's parent directories and writes the output of
// fn to path. The file is replaced atomically: readers see either the old
// document or the complete new one.
func WriteDocument(path string, fn func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrOutputWrite, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputWrite, path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	bw := bufio.NewWriter(tmp)
	if err := fn(bw); err != nil {
		tmp.Close()
		if errors.Is(err, ErrOutputWrite) {
			return fmt.Errorf("rendering %s: %w", path, err)
		}
		return fmt.Errorf("%w: rendering %s: %w", ErrOutputWrite, path, err)
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %s: %w", ErrOutputWrite, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputWrite, path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputWrite, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOutputWrite, path, err)
	}
	return nil
}

// Manifest is the machine-readable dump of one run's records.
type Manifest struct {
	GeneratedAt time.Time                 `json:"generated_at" yaml:"generated_at"`
	Comparisons []types.ComparisonExample `json:"comparisons" yaml:"comparisons"`
	Standalone  []types.StandaloneExample `json:"standalone" yaml:"standalone"`
	RealWorld   []types.RealWorldExample  `json:"real_world" yaml:"real_world"`
	Warnings    []string                  `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// WriteManifest writes m to path as YAML (.yaml, .yml) or JSON (.json).
func WriteManifest(path string, m Manifest) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(&m)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
	case ".json":
		data, err = json.MarshalIndent(&m, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		data = append(data, '\n')
	default:
		return fmt.Errorf("manifest %s: unsupported extension (want .yaml, .yml, or .json)", path)
	}

	return WriteDocument(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
